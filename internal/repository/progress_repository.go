package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flutterlearn-service/internal/models"
)

// ProgressRepository stores the per-user progress documents, whole-record
// fetch and replace only (no partial queries).
type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("progress")}
}

// Get fetches a user's progress record. Returns mongo.ErrNoDocuments when
// the user has never synced.
func (r *ProgressRepository) Get(ctx context.Context, userID string) (*models.ParticipantProgress, error) {
	var progress models.ParticipantProgress
	err := r.Col.FindOne(ctx, bson.M{"_id": userID}).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Put replaces the whole record, creating it when absent.
func (r *ProgressRepository) Put(ctx context.Context, progress *models.ParticipantProgress) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": progress.UserID}, progress, opts)
	return err
}

func (r *ProgressRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}
