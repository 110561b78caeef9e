// Package progress summarises a session's attempt history.
package progress

import (
	"interviewprep/domain/quiz"
	"interviewprep/models"

	"github.com/montanaflynn/stats"
)

// Summary describes how a session has scored so far
type Summary struct {
	Attempts int                `json:"attempts"`
	Mean     float64            `json:"mean"`
	Median   float64            `json:"median"`
	Best     float64            `json:"best"`
	Worst    float64            `json:"worst"`
	ByLevel  map[quiz.Level]int `json:"by_level"`
	Recent   []*models.Attempt  `json:"recent"`
}

// RecentLimit is how many attempts a summary lists
const RecentLimit = 10

// Summarize computes the summary of attempts, which are expected newest first
func Summarize(attempts []*models.Attempt) Summary {
	summary := Summary{ByLevel: make(map[quiz.Level]int, len(quiz.Levels))}
	for _, level := range quiz.Levels {
		summary.ByLevel[level] = 0
	}
	if len(attempts) == 0 {
		return summary
	}

	data := make(stats.Float64Data, 0, len(attempts))
	for _, a := range attempts {
		data = append(data, a.Similarity)
		summary.ByLevel[quiz.Level(a.Level)]++
	}

	summary.Attempts = len(attempts)
	// stats only errors on empty input, which is handled above
	summary.Mean, _ = stats.Mean(data)
	summary.Median, _ = stats.Median(data)
	summary.Best, _ = stats.Max(data)
	summary.Worst, _ = stats.Min(data)

	recent := attempts
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	summary.Recent = recent
	return summary
}

// LevelCounts returns the histogram in display order, best level first
func (s Summary) LevelCounts() []LevelCount {
	out := make([]LevelCount, 0, len(quiz.Levels))
	for _, level := range quiz.Levels {
		out = append(out, LevelCount{Level: level, Count: s.ByLevel[level]})
	}
	return out
}

// LevelCount is one histogram bar
type LevelCount struct {
	Level quiz.Level `json:"level"`
	Count int        `json:"count"`
}
