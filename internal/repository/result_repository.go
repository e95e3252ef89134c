package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learning-service/internal/models"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("diagnostic_results")}
}

func (r *ResultRepository) Create(ctx context.Context, result *models.DiagnosticResult) error {
	res, err := r.Col.InsertOne(ctx, result)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid
	}
	return nil
}

func (r *ResultRepository) FindByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]models.DiagnosticResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"quiz": quizID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.DiagnosticResult
	for cur.Next(ctx) {
		var result models.DiagnosticResult
		if err := cur.Decode(&result); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, cur.Err()
}

func (r *ResultRepository) FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.DiagnosticResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"student": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.DiagnosticResult
	for cur.Next(ctx) {
		var result models.DiagnosticResult
		if err := cur.Decode(&result); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, cur.Err()
}

// DeleteByQuiz removes every result for a quiz; used when the quiz itself
// is deleted.
func (r *ResultRepository) DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"quiz": quizID})
	return err
}
