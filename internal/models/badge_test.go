package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewCompletionBadge(t *testing.T) {
	user := primitive.NewObjectID()
	course := &Course{
		ID:    primitive.NewObjectID(),
		Title: "English for Beginners",
	}
	now := time.Now()

	badge := NewCompletionBadge(user, course, 80, now)

	if badge.Title != "English for Beginners Completion" {
		t.Errorf("unexpected title: %q", badge.Title)
	}
	if badge.Description != "Completed English for Beginners with 80% score" {
		t.Errorf("unexpected description: %q", badge.Description)
	}
	if badge.User != user || badge.Course != course.ID {
		t.Error("badge references wrong user or course")
	}
	if !badge.IssuedAt.Equal(now) {
		t.Errorf("unexpected issuedAt: %v", badge.IssuedAt)
	}
}

func TestNewCompletionBadgeRoundsScore(t *testing.T) {
	course := &Course{Title: "Algebra"}

	badge := NewCompletionBadge(primitive.NewObjectID(), course, 66.666666, time.Now())
	if badge.Description != "Completed Algebra with 67% score" {
		t.Errorf("unexpected description: %q", badge.Description)
	}

	badge = NewCompletionBadge(primitive.NewObjectID(), course, 83.333333, time.Now())
	if badge.Description != "Completed Algebra with 83% score" {
		t.Errorf("unexpected description: %q", badge.Description)
	}
}
