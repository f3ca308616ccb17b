package services

import (
	"context"
	"time"

	"grantsproject/aggregation"
	"grantsproject/models"
	repository "grantsproject/repositories"

	"golang.org/x/sync/errgroup"
)

// MonthView is the calendar payload for one month: the day grid, the events
// bucketed per day, and the filtered upcoming list.
type MonthView struct {
	Grid     aggregation.MonthGrid       `json:"grid"`
	Events   map[int][]aggregation.Event `json:"events"`
	Upcoming []aggregation.Event         `json:"upcoming"`
}

type CalendarService interface {
	MonthView(ctx context.Context, year int, month time.Month, filterType string) (*MonthView, error)
}

type calendarService struct {
	grants   repository.GrantRepository
	calendar repository.CalendarRepository
}

func NewCalendarService(grants repository.GrantRepository, calendar repository.CalendarRepository) CalendarService {
	return &calendarService{
		grants:   grants,
		calendar: calendar,
	}
}

// MonthView fetches grants and manual events in parallel, merges the two
// event sources, filters, and projects the requested month onto the grid.
func (s *calendarService) MonthView(ctx context.Context, year int, month time.Month, filterType string) (*MonthView, error) {
	var grants []models.Grant
	var manual []models.CalendarEvent

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		grants, err = s.grants.GetAll(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		manual, err = s.calendar.ListAll(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byGrant := make(map[string][]models.CalendarEvent, len(grants))
	for _, ev := range manual {
		byGrant[ev.GrantID] = append(byGrant[ev.GrantID], ev)
	}

	merged := aggregation.MergeEvents(grants, byGrant)
	filtered := aggregation.FilterEvents(merged, filterType)

	view := &MonthView{
		Grid:     aggregation.BuildMonthGrid(year, month),
		Events:   make(map[int][]aggregation.Event),
		Upcoming: aggregation.UpcomingEvents(filtered),
	}

	for d := 1; d <= view.Grid.Days; d++ {
		if dayEvents := aggregation.EventsOn(filtered, year, month, d); len(dayEvents) > 0 {
			view.Events[d] = dayEvents
		}
	}

	return view, nil
}
