package models

import (
	"testing"
	"time"
)

func TestMarkLessonComplete(t *testing.T) {
	e := &Enrollment{Progress: Progress{CompletedLessons: []int{}, CurrentLesson: 0}}

	if !e.MarkLessonComplete(0) {
		t.Fatal("expected first completion to change progress")
	}
	if len(e.Progress.CompletedLessons) != 1 || e.Progress.CompletedLessons[0] != 0 {
		t.Errorf("unexpected completed lessons: %v", e.Progress.CompletedLessons)
	}
	if e.Progress.CurrentLesson != 1 {
		t.Errorf("expected current lesson 1, got %d", e.Progress.CurrentLesson)
	}

	// Completing the same lesson again is a no-op.
	if e.MarkLessonComplete(0) {
		t.Error("expected repeat completion to be a no-op")
	}
	if len(e.Progress.CompletedLessons) != 1 {
		t.Errorf("completed lessons grew on repeat: %v", e.Progress.CompletedLessons)
	}
	if e.Progress.CurrentLesson != 1 {
		t.Errorf("current lesson moved on repeat: %d", e.Progress.CurrentLesson)
	}

	if !e.MarkLessonComplete(1) {
		t.Fatal("expected next lesson completion to change progress")
	}
	if e.Progress.CurrentLesson != 2 {
		t.Errorf("expected current lesson 2, got %d", e.Progress.CurrentLesson)
	}
}

func TestMarkLessonCompleteOutOfOrder(t *testing.T) {
	// The pointer follows the last lesson marked, not the highest.
	e := &Enrollment{}

	e.MarkLessonComplete(2)
	if e.Progress.CurrentLesson != 3 {
		t.Errorf("expected current lesson 3, got %d", e.Progress.CurrentLesson)
	}

	e.MarkLessonComplete(0)
	if e.Progress.CurrentLesson != 1 {
		t.Errorf("expected current lesson 1, got %d", e.Progress.CurrentLesson)
	}
}

func TestApplyAssessmentPass(t *testing.T) {
	e := &Enrollment{}
	now := time.Now()

	passed, newlyCompleted := e.ApplyAssessment(80, []int{1, 0, 2, 3, 0}, 70, now)

	if !passed || !newlyCompleted {
		t.Fatalf("expected pass and completion, got passed=%v newlyCompleted=%v", passed, newlyCompleted)
	}
	if !e.Completed {
		t.Error("expected completed flag set")
	}
	if e.CompletedAt == nil || !e.CompletedAt.Equal(now) {
		t.Errorf("unexpected completedAt: %v", e.CompletedAt)
	}
	if e.FinalAssessmentScore == nil || *e.FinalAssessmentScore != 80 {
		t.Errorf("unexpected stored score: %v", e.FinalAssessmentScore)
	}
}

func TestApplyAssessmentFail(t *testing.T) {
	e := &Enrollment{}

	passed, newlyCompleted := e.ApplyAssessment(60, []int{0, 0, 0}, 70, time.Now())

	if passed || newlyCompleted {
		t.Fatalf("expected fail, got passed=%v newlyCompleted=%v", passed, newlyCompleted)
	}
	if e.Completed {
		t.Error("completed flag set on failing score")
	}
	if e.FinalAssessmentScore == nil || *e.FinalAssessmentScore != 60 {
		t.Error("failing score must still be stored")
	}
}

func TestApplyAssessmentExactPassingScore(t *testing.T) {
	e := &Enrollment{}

	passed, _ := e.ApplyAssessment(70, nil, 70, time.Now())
	if !passed {
		t.Error("score equal to the passing score must pass")
	}
}

func TestApplyAssessmentRepeatPassNoSecondCompletion(t *testing.T) {
	e := &Enrollment{}
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	e.ApplyAssessment(80, []int{1}, 70, first)
	passed, newlyCompleted := e.ApplyAssessment(90, []int{2}, 70, second)

	if !passed {
		t.Error("second passing submission should still report passed")
	}
	if newlyCompleted {
		t.Error("completion must fire at most once")
	}
	if !e.CompletedAt.Equal(first) {
		t.Errorf("completedAt moved on resubmission: %v", e.CompletedAt)
	}
	if *e.FinalAssessmentScore != 90 {
		t.Errorf("resubmission should update the score, got %v", *e.FinalAssessmentScore)
	}
}

func TestApplyAssessmentFailAfterPassKeepsCompletion(t *testing.T) {
	e := &Enrollment{}
	now := time.Now()

	e.ApplyAssessment(80, []int{1}, 70, now)
	passed, newlyCompleted := e.ApplyAssessment(50, []int{0}, 70, now.Add(time.Hour))

	if passed || newlyCompleted {
		t.Fatal("failing resubmission must not pass")
	}
	if !e.Completed {
		t.Error("a failing resubmission must not revoke completion")
	}
	if *e.FinalAssessmentScore != 50 {
		t.Errorf("failing resubmission still lowers the stored score, got %v", *e.FinalAssessmentScore)
	}
}
