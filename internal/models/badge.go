package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge is an immutable completion credential, issued once per
// (user, course) pass. Uniqueness is backed by a compound index.
type Badge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Course      primitive.ObjectID `bson:"course" json:"course"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	IssuedAt    time.Time          `bson:"issued_at" json:"issued_at"`
}

// NewCompletionBadge builds the badge awarded for passing a course's final
// assessment. The description carries the score rounded to a whole percent.
func NewCompletionBadge(user primitive.ObjectID, course *Course, score float64, now time.Time) *Badge {
	return &Badge{
		User:        user,
		Course:      course.ID,
		Title:       fmt.Sprintf("%s Completion", course.Title),
		Description: fmt.Sprintf("Completed %s with %d%% score", course.Title, int(math.Round(score))),
		IssuedAt:    now,
	}
}
