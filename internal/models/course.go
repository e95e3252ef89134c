package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lesson identity is positional: lessons have no id of their own, progress
// tracking and the API refer to a lesson by its index in Course.Lessons.
// The same holds for answer options inside assessment questions.
type Lesson struct {
	Title   string `bson:"title" json:"title"`
	Content string `bson:"content" json:"content"`
	Order   int    `bson:"order" json:"order"`
}

type AssessmentQuestion struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correct_answer" json:"correct_answer"`
}

type FinalAssessment struct {
	Questions    []AssessmentQuestion `bson:"questions" json:"questions"`
	PassingScore float64              `bson:"passing_score" json:"passing_score"`
}

const DefaultPassingScore = 70

type Course struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Level           Level              `bson:"level" json:"level"`
	Category        string             `bson:"category" json:"category"`
	Teacher         primitive.ObjectID `bson:"teacher" json:"teacher"`
	Lessons         []Lesson           `bson:"lessons" json:"lessons"`
	FinalAssessment FinalAssessment    `bson:"final_assessment" json:"final_assessment"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
