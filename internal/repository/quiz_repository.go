package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
)

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("diagnostic_quizzes")}
}

// FindAll lists every diagnostic quiz ordered by category, newest first
// within a category.
func (r *QuizRepository) FindAll(ctx context.Context) ([]models.DiagnosticQuiz, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var quizzes []models.DiagnosticQuiz
	for cur.Next(ctx) {
		var quiz models.DiagnosticQuiz
		if err := cur.Decode(&quiz); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, cur.Err()
}

func (r *QuizRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DiagnosticQuiz, error) {
	var quiz models.DiagnosticQuiz
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("diagnostic quiz %s", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.DiagnosticQuiz, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"teacher": teacherID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var quizzes []models.DiagnosticQuiz
	for cur.Next(ctx) {
		var quiz models.DiagnosticQuiz
		if err := cur.Decode(&quiz); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, cur.Err()
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.DiagnosticQuiz) error {
	res, err := r.Col.InsertOne(ctx, quiz)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = oid
	}
	return nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz *models.DiagnosticQuiz) error {
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": quiz.ID}, quiz)
	return err
}

func (r *QuizRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
