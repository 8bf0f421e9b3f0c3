package model

import "fmt"

var ErrPointsOutOfRange = fmt.Errorf("%w: points out of range", ErrValidation)

// Bounds of the daily score model. Each sub-metric is 0..10 and the derived
// score is 20 + (physical+mental)*4, so it always lands in 20..100.
const (
	PointsMin = 0
	PointsMax = 10
	ScoreMin  = 20
	ScoreMax  = 100
)

// ComputeScore derives the daily capacity score from the two sub-metrics.
// Inputs outside [PointsMin, PointsMax] are rejected before anything is
// stored; the schema enforces the same bound.
func ComputeScore(physical, mental int) (int, error) {
	if physical < PointsMin || physical > PointsMax {
		return 0, fmt.Errorf("%w: physical %d", ErrPointsOutOfRange, physical)
	}
	if mental < PointsMin || mental > PointsMax {
		return 0, fmt.Errorf("%w: mental %d", ErrPointsOutOfRange, mental)
	}
	return ScoreMin + (physical+mental)*4, nil
}

// ScoreCategory maps a score onto the display bands used by the monthly
// tracker.
func ScoreCategory(score int) string {
	switch {
	case score <= ScoreMin:
		return "None"
	case score <= 40:
		return "Very Low"
	case score <= 55:
		return "Low"
	case score <= 75:
		return "Moderate"
	case score <= 83:
		return "High"
	default:
		return "Maximum"
	}
}

// DailyPoints is the score snapshot for one day. At most one row exists per
// date and Score is always the value ComputeScore yields for Physical and
// Mental; the two are only ever written together.
type DailyPoints struct {
	Date     string
	Physical int
	Mental   int
	Score    int
}

func (p DailyPoints) Validate() error {
	if err := CheckDate("points date", p.Date); err != nil {
		return err
	}
	score, err := ComputeScore(p.Physical, p.Mental)
	if err != nil {
		return err
	}
	if p.Score != score {
		return fmt.Errorf("%w: score %d does not match inputs", ErrValidation, p.Score)
	}
	return nil
}
