package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/ConnorXwolf/EnergyTracker/internal/model"
	"github.com/ConnorXwolf/EnergyTracker/internal/storage"
)

// EventFilter narrows List. Date selects one day, Year/Month a month, and
// From/To an inclusive range.
type EventFilter struct {
	Date  string
	Year  int
	Month int
	From  string
	To    string
}

type EventManager struct {
	repo storage.Repository
}

func NewEventManager(repo storage.Repository) *EventManager {
	return &EventManager{repo: repo}
}

func (m *EventManager) Create(ctx context.Context, in model.Event) (model.Event, error) {
	if err := in.Validate(); err != nil {
		return model.Event{}, err
	}
	id, err := m.repo.CreateEvent(ctx, eventToStorage(in, time.Now()))
	if err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	in.ID = id
	return in, nil
}

func (m *EventManager) GetByID(ctx context.Context, id int64) (model.Event, error) {
	row, err := m.repo.GetEvent(ctx, id)
	if err != nil {
		return model.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return eventFromStorage(row), nil
}

func (m *EventManager) List(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	sf := storage.EventListFilter{Date: filter.Date, From: filter.From, To: filter.To}
	if filter.Date != "" {
		if err := model.CheckDate("filter date", filter.Date); err != nil {
			return nil, err
		}
	}
	if filter.Month != 0 {
		from, to, err := model.MonthBounds(filter.Year, filter.Month)
		if err != nil {
			return nil, err
		}
		sf.From, sf.To = from, to
	}
	rows, err := m.repo.ListEvents(ctx, sf)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]model.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromStorage(row))
	}
	return out, nil
}

func (m *EventManager) Update(ctx context.Context, in model.Event) (model.Event, error) {
	if err := in.Validate(); err != nil {
		return model.Event{}, err
	}
	if err := m.repo.UpdateEvent(ctx, eventToStorage(in, time.Time{})); err != nil {
		return model.Event{}, fmt.Errorf("update event %d: %w", in.ID, err)
	}
	return in, nil
}

func (m *EventManager) Delete(ctx context.Context, id int64) error {
	if err := m.repo.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}

func eventToStorage(in model.Event, createdAt time.Time) storage.Event {
	return storage.Event{ID: in.ID, Title: in.Title, Date: in.Date, Description: in.Description, CreatedAt: createdAt}
}

func eventFromStorage(in storage.Event) model.Event {
	return model.Event{ID: in.ID, Title: in.Title, Date: in.Date, Description: in.Description}
}
