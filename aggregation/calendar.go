package aggregation

import (
	"fmt"
	"sort"
	"time"

	"grantsproject/models"
)

// Event is a calendar entry ready for bucketing: either a deadline derived
// from a grant's own date fields, or a manually created event. DateValid is
// false when the stored date could not be parsed; such events stay in the
// merged list but never land in a day bucket.
type Event struct {
	ID        string    `json:"id"`
	GrantID   string    `json:"grant_id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Org       string    `json:"org"`
	Date      time.Time `json:"date"`
	DateValid bool      `json:"date_valid"`
	Derived   bool      `json:"derived"`
}

// MergeEvents unifies the two event sources. For each grant, in order: one
// synthetic Deadline event per populated date field (fixed field order), then
// the grant's manually created events. Grants are visited in slice order.
func MergeEvents(grants []models.Grant, manual map[string][]models.CalendarEvent) []Event {
	var events []Event
	for _, g := range grants {
		for _, df := range g.DateFields() {
			if df.Value == "" {
				continue
			}
			date, ok := models.ParseDate(df.Value)
			events = append(events, Event{
				ID:        fmt.Sprintf("GR-%s-%s", g.ID, df.Label),
				GrantID:   g.ID,
				Title:     fmt.Sprintf("%s: %s", g.Title, df.Label),
				Type:      models.EventDeadline,
				Org:       g.Organization,
				Date:      date,
				DateValid: ok,
				Derived:   true,
			})
		}
		for _, ev := range manual[g.ID] {
			date, ok := models.ParseDate(ev.Date)
			events = append(events, Event{
				ID:        ev.ID,
				GrantID:   ev.GrantID,
				Title:     ev.Title,
				Type:      ev.Type,
				Org:       ev.Org,
				Date:      date,
				DateValid: ok,
			})
		}
	}
	return events
}

// FilterEvents retains events matching the filter type; "All" passes
// everything through.
func FilterEvents(events []Event, filterType string) []Event {
	if filterType == "" || filterType == models.EventFilterAll {
		return events
	}
	filtered := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.Type == filterType {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// UpcomingEvents sorts the list ascending by date. The source order carried
// no guarantee, so the ascending sort is an explicit choice here; events with
// invalid dates sink to the end. The input is not mutated.
func UpcomingEvents(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DateValid != sorted[j].DateValid {
			return sorted[i].DateValid
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// MonthGrid projects a month onto a 7-column calendar. Cells holds
// LeadingEmpty zeros followed by 1..Days; Weeks partitions Cells into rows of
// seven with no trailing padding.
type MonthGrid struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	LeadingEmpty int     `json:"leading_empty"`
	Days         int     `json:"days"`
	Cells        []int   `json:"cells"`
	Weeks        [][]int `json:"weeks"`
}

// BuildMonthGrid computes the grid for a given year and month. The leading
// empty count is the weekday of day 1 (0 = Sunday).
func BuildMonthGrid(year int, month time.Month) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	grid := MonthGrid{
		Year:         year,
		Month:        int(month),
		LeadingEmpty: int(first.Weekday()),
		Days:         first.AddDate(0, 1, -1).Day(),
	}

	grid.Cells = make([]int, 0, grid.LeadingEmpty+grid.Days)
	for i := 0; i < grid.LeadingEmpty; i++ {
		grid.Cells = append(grid.Cells, 0)
	}
	for d := 1; d <= grid.Days; d++ {
		grid.Cells = append(grid.Cells, d)
	}

	for start := 0; start < len(grid.Cells); start += 7 {
		end := start + 7
		if end > len(grid.Cells) {
			end = len(grid.Cells)
		}
		grid.Weeks = append(grid.Weeks, grid.Cells[start:end])
	}
	return grid
}

// EventsOn returns the events whose date falls exactly on the given day.
// Events with invalid dates never match.
func EventsOn(events []Event, year int, month time.Month, day int) []Event {
	var matched []Event
	for _, ev := range events {
		if !ev.DateValid {
			continue
		}
		y, m, d := ev.Date.Date()
		if y == year && m == month && d == day {
			matched = append(matched, ev)
		}
	}
	return matched
}

// PrevMonth steps the reference month back by one, rolling the year at
// January.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth steps the reference month forward by one, rolling the year at
// December.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
