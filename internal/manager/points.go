package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/storage"
)

// MonthSummary aggregates a month of daily points for the monthly tracker.
type MonthSummary struct {
	Year         int
	Month        int
	Days         int
	Recorded     int
	AverageScore float64
	ByDay        map[int]model.DailyPoints
}

type PointsManager struct {
	repo storage.Repository
}

func NewPointsManager(repo storage.Repository) *PointsManager {
	return &PointsManager{repo: repo}
}

// Set validates the sub-metrics, derives the score, and upserts the day's
// row. Score and inputs are written in one statement, so no reader ever sees
// a stale score.
func (m *PointsManager) Set(ctx context.Context, date string, physical, mental int) (model.DailyPoints, error) {
	if err := model.CheckDate("points date", date); err != nil {
		return model.DailyPoints{}, err
	}
	score, err := model.ComputeScore(physical, mental)
	if err != nil {
		return model.DailyPoints{}, err
	}
	now := time.Now()
	row := storage.DailyPoints{
		Date:      date,
		Physical:  physical,
		Mental:    mental,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.repo.UpsertDailyPoints(ctx, row); err != nil {
		return model.DailyPoints{}, fmt.Errorf("set daily points: %w", err)
	}
	return model.DailyPoints{Date: date, Physical: physical, Mental: mental, Score: score}, nil
}

func (m *PointsManager) ByDate(ctx context.Context, date string) (model.DailyPoints, error) {
	if err := model.CheckDate("points date", date); err != nil {
		return model.DailyPoints{}, err
	}
	row, err := m.repo.GetDailyPoints(ctx, date)
	if err != nil {
		return model.DailyPoints{}, fmt.Errorf("get daily points %s: %w", date, err)
	}
	return pointsFromStorage(row), nil
}

// Range returns the recorded points between two ISO dates, inclusive.
func (m *PointsManager) Range(ctx context.Context, from, to string) ([]model.DailyPoints, error) {
	if err := model.CheckDate("range start", from); err != nil {
		return nil, err
	}
	if err := model.CheckDate("range end", to); err != nil {
		return nil, err
	}
	rows, err := m.repo.ListDailyPoints(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily points: %w", err)
	}
	out := make([]model.DailyPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, pointsFromStorage(row))
	}
	return out, nil
}

func (m *PointsManager) Month(ctx context.Context, year, month int) ([]model.DailyPoints, error) {
	from, to, err := model.MonthBounds(year, month)
	if err != nil {
		return nil, err
	}
	rows, err := m.repo.ListDailyPoints(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily points: %w", err)
	}
	out := make([]model.DailyPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, pointsFromStorage(row))
	}
	return out, nil
}

func (m *PointsManager) MonthSummary(ctx context.Context, year, month int) (MonthSummary, error) {
	points, err := m.Month(ctx, year, month)
	if err != nil {
		return MonthSummary{}, err
	}
	summary := MonthSummary{
		Year:  year,
		Month: month,
		Days:  model.DaysInMonth(year, month),
		ByDay: make(map[int]model.DailyPoints, len(points)),
	}
	total := 0
	for _, p := range points {
		summary.ByDay[model.DayOfMonth(p.Date)] = p
		total += p.Score
	}
	summary.Recorded = len(points)
	if summary.Recorded > 0 {
		summary.AverageScore = float64(total) / float64(summary.Recorded)
	}
	return summary, nil
}

func pointsFromStorage(in storage.DailyPoints) model.DailyPoints {
	return model.DailyPoints{Date: in.Date, Physical: in.Physical, Mental: in.Mental, Score: in.Score}
}
