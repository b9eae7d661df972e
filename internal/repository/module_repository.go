package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flutterlearn-service/internal/models"
)

type ModuleRepository struct {
	Col *mongo.Collection
}

func NewModuleRepository(db *mongo.Database) *ModuleRepository {
	return &ModuleRepository{Col: db.Collection("modules")}
}

func (r *ModuleRepository) FindByCourse(ctx context.Context, courseID string) ([]models.CourseModule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var modules []models.CourseModule
	for cur.Next(ctx) {
		var m models.CourseModule
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, cur.Err()
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*models.CourseModule, error) {
	var module models.CourseModule
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&module)
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ModuleRepository) Create(ctx context.Context, module *models.CourseModule) error {
	_, err := r.Col.InsertOne(ctx, module)
	return err
}

func (r *ModuleRepository) Update(ctx context.Context, id string, update bson.M) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
