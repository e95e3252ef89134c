package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
)

type CourseRepository struct {
	Col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{Col: db.Collection("courses")}
}

// Find lists courses, optionally filtered by level and category.
func (r *CourseRepository) Find(ctx context.Context, level models.Level, category string) ([]models.Course, error) {
	filter := bson.M{}
	if level != "" {
		filter["level"] = level
	}
	if category != "" {
		filter["category"] = category
	}

	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courses []models.Course
	for cur.Next(ctx) {
		var course models.Course
		if err := cur.Decode(&course); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, cur.Err()
}

func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("course %s", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	res, err := r.Col.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		course.ID = oid
	}
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	return err
}

func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
