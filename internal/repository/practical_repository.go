package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flutterlearn-service/internal/models"
)

type PracticalWorkRepository struct {
	Works    *mongo.Collection
	Progress *mongo.Collection
}

func NewPracticalWorkRepository(db *mongo.Database) *PracticalWorkRepository {
	return &PracticalWorkRepository{
		Works:    db.Collection("practical_works"),
		Progress: db.Collection("practical_progress"),
	}
}

func (r *PracticalWorkRepository) FindWorkByID(ctx context.Context, id string) (*models.PracticalWork, error) {
	var work models.PracticalWork
	err := r.Works.FindOne(ctx, bson.M{"_id": id}).Decode(&work)
	if err != nil {
		return nil, err
	}
	return &work, nil
}

func (r *PracticalWorkRepository) FindWorksByCourse(ctx context.Context, courseID string) ([]models.PracticalWork, error) {
	cur, err := r.Works.Find(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var works []models.PracticalWork
	for cur.Next(ctx) {
		var w models.PracticalWork
		if err := cur.Decode(&w); err != nil {
			return nil, err
		}
		works = append(works, w)
	}
	return works, cur.Err()
}

func (r *PracticalWorkRepository) CreateWork(ctx context.Context, work *models.PracticalWork) error {
	_, err := r.Works.InsertOne(ctx, work)
	return err
}

func (r *PracticalWorkRepository) UpdateWork(ctx context.Context, id string, update bson.M) error {
	_, err := r.Works.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

// FindProgress returns one user's submission cycle for one work.
func (r *PracticalWorkRepository) FindProgress(ctx context.Context, userID, workID string) (*models.PracticalWorkProgress, error) {
	var progress models.PracticalWorkProgress
	err := r.Progress.FindOne(ctx, bson.M{"user_id": userID, "work_id": workID}).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// SaveProgress upserts the submission cycle keyed by (user, work).
func (r *PracticalWorkRepository) SaveProgress(ctx context.Context, progress *models.PracticalWorkProgress) error {
	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"user_id": progress.UserID, "work_id": progress.WorkID}
	progress.ID = ""
	_, err := r.Progress.ReplaceOne(ctx, filter, progress, opts)
	return err
}

// FindPendingReview lists submission cycles awaiting evaluation for a
// work, oldest submission first.
func (r *PracticalWorkRepository) FindPendingReview(ctx context.Context, workID string) ([]models.PracticalWorkProgress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}})
	cur, err := r.Progress.Find(ctx, bson.M{
		"work_id": workID,
		"status":  models.PracticalSubmitted,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pending []models.PracticalWorkProgress
	for cur.Next(ctx) {
		var p models.PracticalWorkProgress
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, cur.Err()
}
