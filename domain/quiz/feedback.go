package quiz

import "math"

// Level is the feedback bucket a similarity score falls into.
type Level string

const (
	LevelOutstanding Level = "outstanding"
	LevelGood        Level = "good"
	LevelRefine      Level = "refine"
	LevelEmpty       Level = "empty"
	LevelDifferent   Level = "different"
)

// Levels lists every level from best to worst.
var Levels = []Level{LevelOutstanding, LevelGood, LevelRefine, LevelEmpty, LevelDifferent}

const (
	outstandingAbove = 0.95
	goodFrom         = 0.8
)

// Classify maps a similarity score onto a feedback level:
//
//	s > 0.95         outstanding
//	0.8 <= s <= 0.95 good
//	0 < s < 0.8      refine
//	s == 0           empty
//	s < 0 or NaN     different
func Classify(similarity float64) Level {
	switch {
	case math.IsNaN(similarity):
		return LevelDifferent
	case similarity > outstandingAbove:
		return LevelOutstanding
	case similarity >= goodFrom:
		return LevelGood
	case similarity > 0:
		return LevelRefine
	case similarity == 0:
		return LevelEmpty
	default:
		return LevelDifferent
	}
}
