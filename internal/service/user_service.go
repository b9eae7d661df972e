package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"flutterlearn-service/internal/event"
	"flutterlearn-service/internal/models"
	"flutterlearn-service/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("email is already registered")
	ErrNotAdmin     = errors.New("role is not allowed to manage users")
	ErrUnknownRole  = errors.New("unknown role")
	ErrUserInactive = errors.New("account is deactivated")
)

type UserService struct {
	Repo      *repository.UserRepository
	Publisher *event.EventPublisher
}

func NewUserService(repo *repository.UserRepository, publisher *event.EventPublisher) *UserService {
	return &UserService{Repo: repo, Publisher: publisher}
}

// Register creates a new account. Email uniqueness is enforced here
// rather than by an index so the caller gets a typed error back.
func (s *UserService) Register(ctx context.Context, email, displayName string, role models.Role) (*models.Participant, error) {
	user, err := models.NewParticipant(email, displayName, role, time.Now())
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.FindByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.Publisher.Publish(event.UserCreated, map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.Participant, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.Participant, error) {
	return s.Repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// List returns all accounts. Admin only.
func (s *UserService) List(ctx context.Context, requesterRole models.Role) ([]models.Participant, error) {
	if !models.Can(requesterRole, models.ActionManageUsers) {
		return nil, ErrNotAdmin
	}
	return s.Repo.FindAll(ctx)
}

// ChangeRole reassigns a user's role. Admin only.
func (s *UserService) ChangeRole(ctx context.Context, requesterRole models.Role, userID string, newRole models.Role) (*models.Participant, error) {
	if !models.Can(requesterRole, models.ActionManageUsers) {
		return nil, ErrNotAdmin
	}
	if !newRole.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, newRole)
	}

	user, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == newRole {
		return user, nil
	}

	if err := s.Repo.Update(ctx, userID, bson.M{"role": newRole}); err != nil {
		return nil, err
	}
	s.Publisher.Publish(event.UserRoleChanged, map[string]interface{}{
		"user_id":  userID,
		"old_role": user.Role,
		"new_role": newRole,
	})
	user.Role = newRole
	return user, nil
}

// Deactivate disables an account without deleting its history. Admin
// only.
func (s *UserService) Deactivate(ctx context.Context, requesterRole models.Role, userID string) error {
	if !models.Can(requesterRole, models.ActionManageUsers) {
		return ErrNotAdmin
	}
	return s.Repo.Deactivate(ctx, userID)
}

// RecordLogin stamps the user's last login and rejects deactivated
// accounts.
func (s *UserService) RecordLogin(ctx context.Context, userID string) (*models.Participant, error) {
	user, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrUserInactive
	}
	now := time.Now()
	if err := s.Repo.TouchLogin(ctx, userID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	return user, nil
}
