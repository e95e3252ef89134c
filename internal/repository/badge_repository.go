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

type BadgeRepository struct {
	Col *mongo.Collection
}

func NewBadgeRepository(db *mongo.Database) *BadgeRepository {
	return &BadgeRepository{Col: db.Collection("badges")}
}

// Create inserts the badge. The unique (user, course) index makes issuance
// idempotent at the storage layer; a duplicate surfaces as a Conflict.
func (r *BadgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	res, err := r.Col.InsertOne(ctx, badge)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflictf("badge for course %s already issued", badge.Course.Hex())
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		badge.ID = oid
	}
	return nil
}

func (r *BadgeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Badge, error) {
	var badge models.Badge
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&badge)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("badge %s", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Badge, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var badges []models.Badge
	for cur.Next(ctx) {
		var badge models.Badge
		if err := cur.Decode(&badge); err != nil {
			return nil, err
		}
		badges = append(badges, badge)
	}
	return badges, cur.Err()
}

// DeleteByCourse removes every badge of a course; used when the course is
// deleted.
func (r *BadgeRepository) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"course": courseID})
	return err
}
