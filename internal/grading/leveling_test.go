package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"learning-service/internal/models"
)

func TestDetermineLevelOverall(t *testing.T) {
	thresholds := models.DefaultLevelThresholds() // 40/65/85

	testCases := []struct {
		name       string
		percentage float64
		expected   models.Level
	}{
		{"zero", 0, models.LevelBeginner},
		{"below beginner threshold", 39.9, models.LevelBeginner},
		{"exactly beginner threshold", 40, models.LevelBeginner},
		{"below intermediate", 64.9, models.LevelBeginner},
		{"exactly intermediate", 65, models.LevelIntermediate},
		{"between intermediate and advanced", 84.9, models.LevelIntermediate},
		{"exactly advanced", 85, models.LevelAdvanced},
		{"perfect", 100, models.LevelAdvanced},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := Graded{OverallPercentage: tc.percentage}
			level := DetermineLevel(PolicyOverall, g, thresholds)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestDetermineLevelOverallCustomThresholds(t *testing.T) {
	thresholds := models.LevelThresholds{Beginner: 10, Intermediate: 50, Advanced: 90}

	assert.Equal(t, models.LevelBeginner, DetermineLevel(PolicyOverall, Graded{OverallPercentage: 49}, thresholds))
	assert.Equal(t, models.LevelIntermediate, DetermineLevel(PolicyOverall, Graded{OverallPercentage: 50}, thresholds))
	assert.Equal(t, models.LevelAdvanced, DetermineLevel(PolicyOverall, Graded{OverallPercentage: 90}, thresholds))
}

// Increasing the percentage with thresholds fixed never lowers the level.
func TestDetermineLevelOverallMonotonic(t *testing.T) {
	thresholds := models.DefaultLevelThresholds()
	rank := map[models.Level]int{
		models.LevelBeginner:     0,
		models.LevelIntermediate: 1,
		models.LevelAdvanced:     2,
	}

	prev := models.LevelBeginner
	for p := 0.0; p <= 100; p += 0.5 {
		level := DetermineLevel(PolicyOverall, Graded{OverallPercentage: p}, thresholds)
		assert.GreaterOrEqual(t, rank[level], rank[prev], "level dropped at %.1f%%", p)
		prev = level
	}
}

func TestDetermineLevelBucket(t *testing.T) {
	testCases := []struct {
		name     string
		scores   models.ScoreBreakdown
		expected models.Level
	}{
		{
			"advanced bucket mastered",
			models.ScoreBreakdown{Advanced: models.Tally{Correct: 7, Total: 10}},
			models.LevelAdvanced,
		},
		{
			"advanced below cut, intermediate mastered",
			models.ScoreBreakdown{
				Intermediate: models.Tally{Correct: 8, Total: 10},
				Advanced:     models.Tally{Correct: 6, Total: 10},
			},
			models.LevelIntermediate,
		},
		{
			"nothing mastered",
			models.ScoreBreakdown{
				Beginner:     models.Tally{Correct: 10, Total: 10},
				Intermediate: models.Tally{Correct: 3, Total: 10},
				Advanced:     models.Tally{Correct: 1, Total: 10},
			},
			models.LevelBeginner,
		},
		{
			"empty buckets floor to beginner",
			models.ScoreBreakdown{},
			models.LevelBeginner,
		},
		{
			"exactly seventy percent counts as mastery",
			models.ScoreBreakdown{Advanced: models.Tally{Correct: 7, Total: 10}},
			models.LevelAdvanced,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level := DetermineLevel(PolicyBucket, Graded{Scores: tc.scores}, models.DefaultLevelThresholds())
			assert.Equal(t, tc.expected, level)
		})
	}
}

// The two policies disagree by design: a high overall score with a weak
// advanced bucket levels advanced under overall but not under bucket.
func TestPoliciesDiverge(t *testing.T) {
	g := Graded{
		Scores: models.ScoreBreakdown{
			Beginner:     models.Tally{Correct: 10, Total: 10},
			Intermediate: models.Tally{Correct: 10, Total: 10},
			Advanced:     models.Tally{Correct: 6, Total: 10},
		},
		TotalCorrect:      26,
		TotalQuestions:    30,
		OverallPercentage: 86.67,
	}
	thresholds := models.DefaultLevelThresholds()

	assert.Equal(t, models.LevelAdvanced, DetermineLevel(PolicyOverall, g, thresholds))
	assert.Equal(t, models.LevelIntermediate, DetermineLevel(PolicyBucket, g, thresholds))
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyBucket, ParsePolicy("bucket"))
	assert.Equal(t, PolicyOverall, ParsePolicy("overall"))
	assert.Equal(t, PolicyOverall, ParsePolicy(""))
	assert.Equal(t, PolicyOverall, ParsePolicy("unknown"))
}

func TestGradeThenLevelEndToEnd(t *testing.T) {
	// Six questions, two per bucket, all answered correctly.
	g := Grade(sixQuestionQuiz(), []int{1, 2, 1, 2, 1, 2})

	assert.Equal(t, models.LevelAdvanced, DetermineLevel(PolicyOverall, g, models.DefaultLevelThresholds()))
	assert.Equal(t, models.LevelAdvanced, DetermineLevel(PolicyBucket, g, models.DefaultLevelThresholds()))
}
