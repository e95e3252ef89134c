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

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.Col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflictf("user with email %s already exists", user.Email)
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("user %s", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("user with email %s", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetLevel records the level determined by a diagnostic submission.
func (r *UserRepository) SetLevel(ctx context.Context, id primitive.ObjectID, level models.Level) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"level": level}})
	return err
}

// AppendBadge links an issued badge to the user's badge list.
func (r *UserRepository) AppendBadge(ctx context.Context, id, badgeID primitive.ObjectID) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"badges": badgeID}})
	return err
}
