package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Progress struct {
	CompletedLessons []int `bson:"completed_lessons" json:"completed_lessons"`
	CurrentLesson    int   `bson:"current_lesson" json:"current_lesson"`
}

// Enrollment joins one student to one course. The (student, course) pair is
// unique, enforced by a compound index on the collection.
type Enrollment struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Student                primitive.ObjectID `bson:"student" json:"student"`
	Course                 primitive.ObjectID `bson:"course" json:"course"`
	Progress               Progress           `bson:"progress" json:"progress"`
	FinalAssessmentScore   *float64           `bson:"final_assessment_score,omitempty" json:"final_assessment_score,omitempty"`
	FinalAssessmentAnswers []int              `bson:"final_assessment_answers,omitempty" json:"final_assessment_answers,omitempty"`
	Completed              bool               `bson:"completed" json:"completed"`
	EnrolledAt             time.Time          `bson:"enrolled_at" json:"enrolled_at"`
	CompletedAt            *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// MarkLessonComplete records the lesson as done and advances the current
// lesson pointer. Idempotent: a lesson already in the completed set leaves
// the progress untouched. Reports whether the progress changed.
// The lesson index is not range-checked against the course here.
func (e *Enrollment) MarkLessonComplete(lessonIndex int) bool {
	for _, done := range e.Progress.CompletedLessons {
		if done == lessonIndex {
			return false
		}
	}
	e.Progress.CompletedLessons = append(e.Progress.CompletedLessons, lessonIndex)
	e.Progress.CurrentLesson = lessonIndex + 1
	return true
}

// ApplyAssessment stores the graded score and raw answers, and on a passing
// score marks the enrollment complete. The completion transition fires at
// most once: a repeat passing submission updates the score but reports
// newlyCompleted=false, and a failing resubmission never clears a previous
// completion.
func (e *Enrollment) ApplyAssessment(score float64, answers []int, passingScore float64, now time.Time) (passed, newlyCompleted bool) {
	e.FinalAssessmentScore = &score
	e.FinalAssessmentAnswers = answers

	passed = score >= passingScore
	if passed && !e.Completed {
		e.Completed = true
		e.CompletedAt = &now
		newlyCompleted = true
	}
	return passed, newlyCompleted
}
