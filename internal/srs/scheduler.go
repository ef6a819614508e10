// Package srs implements the fixed-stage review schedule used to decide when a
// word is due again.
package srs

import "time"

const (
	MinStage = 0
	MaxStage = 3
)

// stageIntervalDays maps a stage to the number of days until the next review.
// Stages beyond the table reuse the last entry.
var stageIntervalDays = []int{1, 3, 7}

// NextStage returns the stage after an answer.
// A correct answer moves one stage up, capped at MaxStage; a wrong answer
// resets to MinStage.
func NextStage(current int, correct bool) int {
	if !correct {
		return MinStage
	}
	return ClampStage(current + 1)
}

// IntervalDays returns the review interval for the given stage.
func IntervalDays(stage int) int {
	stage = ClampStage(stage)
	if stage >= len(stageIntervalDays) {
		return stageIntervalDays[len(stageIntervalDays)-1]
	}
	return stageIntervalDays[stage]
}

// NextReviewDate returns when a word at stage should be reviewed again.
// The interval is always added to now, so intervals never compound.
func NextReviewDate(stage int, now time.Time) time.Time {
	return now.AddDate(0, 0, IntervalDays(stage))
}

// ClampStage keeps a stored stage within [MinStage, MaxStage].
func ClampStage(stage int) int {
	if stage < MinStage {
		return MinStage
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}
