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

type EnrollmentRepository struct {
	Col *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{Col: db.Collection("enrollments")}
}

// Create inserts the enrollment. The unique (student, course) index rejects
// a duplicate pair; that is surfaced as a Conflict.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	res, err := r.Col.InsertOne(ctx, enrollment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflictf("already enrolled in course %s", enrollment.Course.Hex())
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		enrollment.ID = oid
	}
	return nil
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&enrollment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("enrollment %s", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Enrollment, error) {
	cur, err := r.Col.Find(ctx, bson.M{"student": studentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var enrollments []models.Enrollment
	for cur.Next(ctx) {
		var enrollment models.Enrollment
		if err := cur.Decode(&enrollment); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, cur.Err()
}

func (r *EnrollmentRepository) FindByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Enrollment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "enrolled_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"course": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var enrollments []models.Enrollment
	for cur.Next(ctx) {
		var enrollment models.Enrollment
		if err := cur.Decode(&enrollment); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, cur.Err()
}

// UpdateProgress persists the lesson-completion state.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, progress models.Progress) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"progress": progress}})
	return err
}

// SaveAssessment persists the assessment outcome fields in one update.
func (r *EnrollmentRepository) SaveAssessment(ctx context.Context, enrollment *models.Enrollment) error {
	update := bson.M{
		"final_assessment_score":   enrollment.FinalAssessmentScore,
		"final_assessment_answers": enrollment.FinalAssessmentAnswers,
		"completed":                enrollment.Completed,
	}
	if enrollment.CompletedAt != nil {
		update["completed_at"] = enrollment.CompletedAt
	}
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": enrollment.ID}, bson.M{"$set": update})
	return err
}

// DeleteByCourse removes every enrollment of a course; used when the course
// is deleted.
func (r *EnrollmentRepository) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"course": courseID})
	return err
}
