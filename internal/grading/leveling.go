package grading

import (
	"learning-service/internal/models"
)

// Policy selects how a graded submission maps to a placement level. Both
// policies ship because both exist as the system's historical behaviors;
// the default is PolicyOverall.
type Policy string

const (
	// PolicyOverall levels on the overall percentage against the quiz's
	// configurable thresholds. Ties resolve to the higher level.
	PolicyOverall Policy = "overall"
	// PolicyBucket levels on per-bucket mastery: a level is reached when
	// that bucket's own percentage is at least 70, checked from advanced
	// down.
	PolicyBucket Policy = "bucket"
)

const bucketMasteryThreshold = 70.0

func ParsePolicy(s string) Policy {
	if Policy(s) == PolicyBucket {
		return PolicyBucket
	}
	return PolicyOverall
}

// DetermineLevel derives the placement level for a graded submission.
// Always returns exactly one of the three levels, with beginner as floor.
func DetermineLevel(policy Policy, g Graded, thresholds models.LevelThresholds) models.Level {
	if policy == PolicyBucket {
		return levelByBucket(g)
	}
	return levelByOverall(g.OverallPercentage, thresholds)
}

func levelByOverall(percentage float64, t models.LevelThresholds) models.Level {
	switch {
	case percentage >= t.Advanced:
		return models.LevelAdvanced
	case percentage >= t.Intermediate:
		return models.LevelIntermediate
	default:
		return models.LevelBeginner
	}
}

func levelByBucket(g Graded) models.Level {
	switch {
	case bucketPercentage(g.Scores.Advanced) >= bucketMasteryThreshold:
		return models.LevelAdvanced
	case bucketPercentage(g.Scores.Intermediate) >= bucketMasteryThreshold:
		return models.LevelIntermediate
	default:
		return models.LevelBeginner
	}
}

func bucketPercentage(t models.Tally) float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total) * 100
}
