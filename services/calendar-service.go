package services

import (
	"context"
	"sort"
	"time"

	"teamboard/collab-core/models"
	"teamboard/collab-core/repositories"
)

// Recurring events are materialized across a fixed window around today:
// 30 days back, 60 days forward.
const (
	expandDaysBack    = 30
	expandDaysForward = 60
)

// CalendarService expands recurring events into concrete occurrences and
// answers the calendar and dashboard date queries.
type CalendarService struct {
	events *repositories.EventRepository
	now    func() time.Time
}

func NewCalendarService(events *repositories.EventRepository) *CalendarService {
	return &CalendarService{events: events, now: time.Now}
}

// CreateEvent appends a calendar event created by the user.
func (s *CalendarService) CreateEvent(ctx context.Context, event models.Event, creatorEmail string) (*models.Event, error) {
	now := s.now()
	event.ID = models.TimeID(now)
	event.CreatedBy = creatorEmail
	if err := s.events.Append(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}

// visibleCreators is whose events the user sees: their own, plus their
// leader's when the user is an assignee under one.
func visibleCreators(user models.User) []string {
	emails := []string{user.Email}
	if user.Role == "Assignee" && user.LeaderEmail != "" {
		emails = append(emails, user.LeaderEmail)
	}
	return emails
}

// EventsFor loads the raw (unexpanded) events visible to the user.
func (s *CalendarService) EventsFor(ctx context.Context, user models.User) ([]models.Event, error) {
	return s.events.CreatedBy(ctx, visibleCreators(user))
}

// Expand materializes each event's occurrences inside the window around
// today. Non-repeating events appear once, on their own date; repeating
// events appear on every window day their schedule matches. Occurrences
// keep the base event's time of day on the occurrence's date.
func Expand(events []models.Event, today time.Time) []models.Event {
	start := today.AddDate(0, 0, -expandDaysBack)
	end := today.AddDate(0, 0, expandDaysForward)

	var out []models.Event
	for _, event := range events {
		if !event.Repeat || event.RepeatOptions == nil {
			out = append(out, event)
			continue
		}

		baseDate := models.ParseISOTime(event.Date + "T00:00:00Z")
		baseTime := models.ParseISOTime(event.Time)
		opts := event.RepeatOptions

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if !occursOn(opts, baseDate, day) {
				continue
			}
			occurrence := event
			occurrence.Date = day.Format("2006-01-02")
			occurrence.Time = models.ISOTime(time.Date(
				day.Year(), day.Month(), day.Day(),
				baseTime.Hour(), baseTime.Minute(), 0, 0, time.UTC,
			))
			out = append(out, occurrence)
		}
	}
	return out
}

func occursOn(opts *models.RepeatOptions, baseDate, day time.Time) bool {
	switch opts.Frequency {
	case models.RepeatDaily:
		return opts.EveryDay
	case models.RepeatWeekly:
		abbrev := day.Format("Mon")
		for _, d := range opts.Days {
			if d == abbrev {
				return true
			}
		}
		return false
	case models.RepeatMonthly:
		return day.Day() == baseDate.Day()
	default:
		return false
	}
}

// EventsOn returns the user's occurrences falling on one calendar day
// ("2006-01-02").
func (s *CalendarService) EventsOn(ctx context.Context, user models.User, date string) ([]models.Event, error) {
	events, err := s.EventsFor(ctx, user)
	if err != nil {
		return nil, err
	}

	var onDate []models.Event
	for _, occurrence := range Expand(events, s.now()) {
		if occurrence.Date == date {
			onDate = append(onDate, occurrence)
		}
	}
	return onDate, nil
}

// Upcoming returns the user's future events sorted by time remaining,
// soonest first. Past events never appear.
func (s *CalendarService) Upcoming(ctx context.Context, user models.User) ([]models.Event, error) {
	events, err := s.EventsFor(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var future []models.Event
	for _, occurrence := range Expand(events, now) {
		at := models.ParseISOTime(occurrence.Time)
		if !at.IsZero() && at.After(now) {
			future = append(future, occurrence)
		}
	}
	sort.SliceStable(future, func(i, j int) bool {
		return models.ParseISOTime(future[i].Time).Before(models.ParseISOTime(future[j].Time))
	})
	return future, nil
}
