package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"learning-service/internal/models"
)

func sixQuestionQuiz() []models.DiagnosticQuestion {
	return []models.DiagnosticQuestion{
		{Question: "b1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Difficulty: models.LevelBeginner},
		{Question: "i1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Difficulty: models.LevelIntermediate},
		{Question: "b2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Difficulty: models.LevelBeginner},
		{Question: "i2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Difficulty: models.LevelIntermediate},
		{Question: "a1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Difficulty: models.LevelAdvanced},
		{Question: "a2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Difficulty: models.LevelAdvanced},
	}
}

func TestGradePerfectScore(t *testing.T) {
	g := Grade(sixQuestionQuiz(), []int{1, 2, 1, 2, 1, 2})

	assert.Equal(t, 6, g.TotalCorrect)
	assert.Equal(t, 6, g.TotalQuestions)
	assert.Equal(t, 100.0, g.OverallPercentage)
	assert.Equal(t, models.Tally{Correct: 2, Total: 2}, g.Scores.Beginner)
	assert.Equal(t, models.Tally{Correct: 2, Total: 2}, g.Scores.Intermediate)
	assert.Equal(t, models.Tally{Correct: 2, Total: 2}, g.Scores.Advanced)
}

func TestGradePartialScore(t *testing.T) {
	// Both beginner questions right, one intermediate, no advanced.
	g := Grade(sixQuestionQuiz(), []int{1, 2, 1, 0, 0, 0})

	assert.Equal(t, 3, g.TotalCorrect)
	assert.Equal(t, 50.0, g.OverallPercentage)
	assert.Equal(t, models.Tally{Correct: 2, Total: 2}, g.Scores.Beginner)
	assert.Equal(t, models.Tally{Correct: 1, Total: 2}, g.Scores.Intermediate)
	assert.Equal(t, models.Tally{Correct: 0, Total: 2}, g.Scores.Advanced)
}

func TestGradeBucketSumsMatchTotals(t *testing.T) {
	cases := [][]int{
		{1, 2, 1, 2, 1, 2},
		{0, 0, 0, 0, 0, 0},
		{1, 0, 1, 0, 1, 0},
		{},
		{1},
	}
	for _, answers := range cases {
		g := Grade(sixQuestionQuiz(), answers)

		totalCorrect := g.Scores.Beginner.Correct + g.Scores.Intermediate.Correct + g.Scores.Advanced.Correct
		total := g.Scores.Beginner.Total + g.Scores.Intermediate.Total + g.Scores.Advanced.Total
		assert.Equal(t, g.TotalCorrect, totalCorrect)
		assert.Equal(t, g.TotalQuestions, total)
	}
}

func TestGradeShortAnswerArray(t *testing.T) {
	// Missing answers never match; grading must not panic.
	g := Grade(sixQuestionQuiz(), []int{1, 2})

	assert.Equal(t, 2, g.TotalCorrect)
	assert.Equal(t, 6, g.TotalQuestions)
	assert.InDelta(t, 100.0/3, g.OverallPercentage, 0.0001)
}

func TestGradeOutOfRangeAnswers(t *testing.T) {
	g := Grade(sixQuestionQuiz(), []int{17, -1, 99, -5, 42, 1000})

	assert.Equal(t, 0, g.TotalCorrect)
	assert.Equal(t, 0.0, g.OverallPercentage)
}

func TestGradeEmptyQuiz(t *testing.T) {
	g := Grade(nil, []int{1, 2, 3})

	assert.Equal(t, 0, g.TotalQuestions)
	assert.Equal(t, 0.0, g.OverallPercentage)
	assert.Equal(t, models.Tally{}, g.Scores.Beginner)
}

func TestGradeMissingDifficultyBucket(t *testing.T) {
	questions := []models.DiagnosticQuestion{
		{Question: "q1", CorrectAnswer: 0, Difficulty: models.LevelBeginner},
		{Question: "q2", CorrectAnswer: 0, Difficulty: models.LevelBeginner},
	}
	g := Grade(questions, []int{0, 1})

	assert.Equal(t, models.Tally{Correct: 1, Total: 2}, g.Scores.Beginner)
	assert.Equal(t, models.Tally{}, g.Scores.Intermediate)
	assert.Equal(t, models.Tally{}, g.Scores.Advanced)
	assert.Equal(t, 50.0, g.OverallPercentage)
}

func TestGradeFlat(t *testing.T) {
	questions := []models.AssessmentQuestion{
		{Question: "q1", CorrectAnswer: 1},
		{Question: "q2", CorrectAnswer: 0},
		{Question: "q3", CorrectAnswer: 2},
		{Question: "q4", CorrectAnswer: 3},
		{Question: "q5", CorrectAnswer: 1},
	}

	t.Run("four of five correct", func(t *testing.T) {
		score, correct := GradeFlat(questions, []int{1, 0, 2, 3, 0})
		assert.Equal(t, 4, correct)
		assert.Equal(t, 80.0, score)
	})

	t.Run("all wrong", func(t *testing.T) {
		score, correct := GradeFlat(questions, []int{0, 1, 0, 0, 0})
		assert.Equal(t, 0, correct)
		assert.Equal(t, 0.0, score)
	})

	t.Run("short answers", func(t *testing.T) {
		score, correct := GradeFlat(questions, []int{1})
		assert.Equal(t, 1, correct)
		assert.Equal(t, 20.0, score)
	})

	t.Run("no questions", func(t *testing.T) {
		score, correct := GradeFlat(nil, []int{1, 2})
		assert.Equal(t, 0, correct)
		assert.Equal(t, 0.0, score)
	})
}
