package grading

import (
	"learning-service/internal/models"
)

// Graded is the outcome of scoring a diagnostic quiz submission.
type Graded struct {
	Scores            models.ScoreBreakdown `json:"scores"`
	TotalCorrect      int                   `json:"total_correct"`
	TotalQuestions    int                   `json:"total_questions"`
	OverallPercentage float64               `json:"overall_percentage"`
}

// Grade scores a submission against the quiz questions. Every question
// counts toward its difficulty bucket's total; an answer counts as correct
// only when the submitted index equals the question's correct index. A
// missing answer (short array) or an out-of-range value simply never
// matches. A quiz with no questions grades to 0%.
func Grade(questions []models.DiagnosticQuestion, answers []int) Graded {
	g := Graded{TotalQuestions: len(questions)}

	for i, question := range questions {
		bucket := bucketFor(&g.Scores, question.Difficulty)
		bucket.Total++

		if i < len(answers) && answers[i] == question.CorrectAnswer {
			bucket.Correct++
			g.TotalCorrect++
		}
	}

	if g.TotalQuestions > 0 {
		g.OverallPercentage = float64(g.TotalCorrect) / float64(g.TotalQuestions) * 100
	}
	return g
}

// GradeFlat scores a final assessment: no difficulty buckets, same matching
// rule as Grade. Returns the percentage score and the correct count.
func GradeFlat(questions []models.AssessmentQuestion, answers []int) (score float64, correct int) {
	for i, question := range questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			correct++
		}
	}
	if len(questions) > 0 {
		score = float64(correct) / float64(len(questions)) * 100
	}
	return score, correct
}

func bucketFor(scores *models.ScoreBreakdown, difficulty models.Level) *models.Tally {
	switch difficulty {
	case models.LevelIntermediate:
		return &scores.Intermediate
	case models.LevelAdvanced:
		return &scores.Advanced
	default:
		return &scores.Beginner
	}
}
