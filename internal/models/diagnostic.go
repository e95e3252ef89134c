package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiagnosticQuestion struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correct_answer" json:"correct_answer"`
	Difficulty    Level    `bson:"difficulty" json:"difficulty"`
}

// LevelThresholds are overall-percentage cut points for placement.
// By convention beginner <= intermediate <= advanced; not enforced.
type LevelThresholds struct {
	Beginner     float64 `bson:"beginner" json:"beginner"`
	Intermediate float64 `bson:"intermediate" json:"intermediate"`
	Advanced     float64 `bson:"advanced" json:"advanced"`
}

func DefaultLevelThresholds() LevelThresholds {
	return LevelThresholds{Beginner: 40, Intermediate: 65, Advanced: 85}
}

type DiagnosticQuiz struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title           string               `bson:"title" json:"title"`
	Category        string               `bson:"category" json:"category"`
	Description     string               `bson:"description" json:"description"`
	Teacher         primitive.ObjectID   `bson:"teacher" json:"teacher"`
	Questions       []DiagnosticQuestion `bson:"questions" json:"questions"`
	LevelThresholds LevelThresholds      `bson:"level_thresholds" json:"level_thresholds"`
	CreatedAt       time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updated_at"`
}

type SanitizedQuestion struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty Level    `json:"difficulty"`
}

type SanitizedQuiz struct {
	ID          primitive.ObjectID  `json:"id"`
	Title       string              `json:"title"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Teacher     primitive.ObjectID  `json:"teacher"`
	Questions   []SanitizedQuestion `json:"questions"`
}

// Sanitized returns the quiz as served to a student taking it: correct
// answers and thresholds are stripped.
func (q *DiagnosticQuiz) Sanitized() SanitizedQuiz {
	out := SanitizedQuiz{
		ID:          q.ID,
		Title:       q.Title,
		Category:    q.Category,
		Description: q.Description,
		Teacher:     q.Teacher,
		Questions:   make([]SanitizedQuestion, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		out.Questions = append(out.Questions, SanitizedQuestion{
			Question:   question.Question,
			Options:    question.Options,
			Difficulty: question.Difficulty,
		})
	}
	return out
}

// Tally counts correct answers inside one difficulty bucket.
type Tally struct {
	Correct int `bson:"correct" json:"correct"`
	Total   int `bson:"total" json:"total"`
}

type ScoreBreakdown struct {
	Beginner     Tally `bson:"beginner" json:"beginner"`
	Intermediate Tally `bson:"intermediate" json:"intermediate"`
	Advanced     Tally `bson:"advanced" json:"advanced"`
}

// DiagnosticResult is immutable once created; resubmissions create new results.
type DiagnosticResult struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Student           primitive.ObjectID `bson:"student" json:"student"`
	Quiz              primitive.ObjectID `bson:"quiz" json:"quiz"`
	Answers           []int              `bson:"answers" json:"answers"`
	Scores            ScoreBreakdown     `bson:"scores" json:"scores"`
	OverallPercentage float64            `bson:"overall_percentage" json:"overall_percentage"`
	DeterminedLevel   Level              `bson:"determined_level" json:"determined_level"`
	CompletedAt       time.Time          `bson:"completed_at" json:"completed_at"`
}
