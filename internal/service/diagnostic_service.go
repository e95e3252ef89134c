package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"learning-service/internal/apperr"
	"learning-service/internal/auth"
	"learning-service/internal/event"
	"learning-service/internal/grading"
	"learning-service/internal/models"
	"learning-service/internal/repository"
)

type DiagnosticService struct {
	Quizzes *repository.QuizRepository
	Results *repository.ResultRepository
	Users   *repository.UserRepository
	Events  event.Publisher
	Policy  grading.Policy
}

func NewDiagnosticService(quizzes *repository.QuizRepository, results *repository.ResultRepository, users *repository.UserRepository, events event.Publisher, policy grading.Policy) *DiagnosticService {
	return &DiagnosticService{Quizzes: quizzes, Results: results, Users: users, Events: events, Policy: policy}
}

type QuizInput struct {
	Title           string                      `json:"title"`
	Category        string                      `json:"category"`
	Description     string                      `json:"description"`
	Questions       []models.DiagnosticQuestion `json:"questions"`
	LevelThresholds *models.LevelThresholds     `json:"level_thresholds"`
}

// BucketSummary holds "correct/total" strings per difficulty, the shape the
// client renders after a submission.
type BucketSummary struct {
	Beginner     string `json:"beginner"`
	Intermediate string `json:"intermediate"`
	Advanced     string `json:"advanced"`
}

type DiagnosticReport struct {
	Level             models.Level           `json:"level"`
	OverallPercentage float64                `json:"overall_percentage"`
	Scores            BucketSummary          `json:"scores"`
	Thresholds        models.LevelThresholds `json:"thresholds"`
}

// ListGrouped returns every quiz grouped by category, with correct answers
// stripped.
func (s *DiagnosticService) ListGrouped(ctx context.Context) (map[string][]models.SanitizedQuiz, error) {
	quizzes, err := s.Quizzes.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.SanitizedQuiz)
	for i := range quizzes {
		quiz := &quizzes[i]
		grouped[quiz.Category] = append(grouped[quiz.Category], quiz.Sanitized())
	}
	return grouped, nil
}

// GetForTaking returns the quiz without correct answers, as served to a
// student about to take it.
func (s *DiagnosticService) GetForTaking(ctx context.Context, id primitive.ObjectID) (*models.SanitizedQuiz, error) {
	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sanitized := quiz.Sanitized()
	return &sanitized, nil
}

// GetFull returns the quiz including correct answers. Only the owning
// teacher or an admin may see it.
func (s *DiagnosticService) GetFull(ctx context.Context, actor auth.Actor, id primitive.ObjectID) (*models.DiagnosticQuiz, error) {
	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageQuiz(quiz, actor) {
		return nil, apperr.Forbiddenf("not authorized to view quiz %s", id.Hex())
	}
	return quiz, nil
}

func (s *DiagnosticService) Create(ctx context.Context, actor auth.Actor, input QuizInput) (*models.DiagnosticQuiz, error) {
	if input.Title == "" || input.Category == "" {
		return nil, apperr.Validationf("title and category are required")
	}

	thresholds := models.DefaultLevelThresholds()
	if input.LevelThresholds != nil {
		thresholds = *input.LevelThresholds
	}

	now := time.Now()
	quiz := &models.DiagnosticQuiz{
		Title:           input.Title,
		Category:        input.Category,
		Description:     input.Description,
		Teacher:         actor.ID,
		Questions:       input.Questions,
		LevelThresholds: thresholds,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *DiagnosticService) MyQuizzes(ctx context.Context, actor auth.Actor) ([]models.DiagnosticQuiz, error) {
	quizzes, err := s.Quizzes.FindByTeacher(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if quizzes == nil {
		quizzes = []models.DiagnosticQuiz{}
	}
	return quizzes, nil
}

func (s *DiagnosticService) Update(ctx context.Context, actor auth.Actor, id primitive.ObjectID, input QuizInput) (*models.DiagnosticQuiz, error) {
	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageQuiz(quiz, actor) {
		return nil, apperr.Forbiddenf("not authorized to update quiz %s", id.Hex())
	}

	if input.Title != "" {
		quiz.Title = input.Title
	}
	if input.Category != "" {
		quiz.Category = input.Category
	}
	if input.Description != "" {
		quiz.Description = input.Description
	}
	if input.Questions != nil {
		quiz.Questions = input.Questions
	}
	if input.LevelThresholds != nil {
		quiz.LevelThresholds = *input.LevelThresholds
	}
	quiz.UpdatedAt = time.Now()

	if err := s.Quizzes.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Delete removes the quiz and every result recorded against it.
func (s *DiagnosticService) Delete(ctx context.Context, actor auth.Actor, id primitive.ObjectID) error {
	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManageQuiz(quiz, actor) {
		return apperr.Forbiddenf("not authorized to delete quiz %s", id.Hex())
	}

	if err := s.Results.DeleteByQuiz(ctx, id); err != nil {
		return err
	}
	return s.Quizzes.Delete(ctx, id)
}

// ResultsForQuiz lists submissions for a quiz; owning teacher or admin only.
func (s *DiagnosticService) ResultsForQuiz(ctx context.Context, actor auth.Actor, id primitive.ObjectID) ([]models.DiagnosticResult, error) {
	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageQuiz(quiz, actor) {
		return nil, apperr.Forbiddenf("not authorized to view results of quiz %s", id.Hex())
	}

	results, err := s.Results.FindByQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.DiagnosticResult{}
	}
	return results, nil
}

// MyResults lists the student's own submissions, newest first.
func (s *DiagnosticService) MyResults(ctx context.Context, actor auth.Actor) ([]models.DiagnosticResult, error) {
	results, err := s.Results.FindByStudent(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.DiagnosticResult{}
	}
	return results, nil
}

// Submit grades the submission, stores an immutable result, records the
// determined level on the student, and returns the placement report.
func (s *DiagnosticService) Submit(ctx context.Context, studentID, quizID primitive.ObjectID, answers []int) (*DiagnosticReport, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	graded := grading.Grade(quiz.Questions, answers)
	level := grading.DetermineLevel(s.Policy, graded, quiz.LevelThresholds)

	result := &models.DiagnosticResult{
		Student:           studentID,
		Quiz:              quiz.ID,
		Answers:           answers,
		Scores:            graded.Scores,
		OverallPercentage: graded.OverallPercentage,
		DeterminedLevel:   level,
		CompletedAt:       time.Now(),
	}
	if err := s.Results.Create(ctx, result); err != nil {
		return nil, err
	}

	if err := s.Users.SetLevel(ctx, studentID, level); err != nil {
		return nil, err
	}

	s.Events.Publish(event.DiagnosticSubmitted, map[string]interface{}{
		"student": studentID.Hex(),
		"quiz":    quiz.ID.Hex(),
		"level":   level,
	})

	return &DiagnosticReport{
		Level:             level,
		OverallPercentage: graded.OverallPercentage,
		Scores: BucketSummary{
			Beginner:     formatTally(graded.Scores.Beginner),
			Intermediate: formatTally(graded.Scores.Intermediate),
			Advanced:     formatTally(graded.Scores.Advanced),
		},
		Thresholds: quiz.LevelThresholds,
	}, nil
}

func formatTally(t models.Tally) string {
	return fmt.Sprintf("%d/%d", t.Correct, t.Total)
}

func canManageQuiz(quiz *models.DiagnosticQuiz, actor auth.Actor) bool {
	return actor.IsAdmin() || quiz.Teacher == actor.ID
}
