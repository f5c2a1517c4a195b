package models

type RepeatFrequency string

const (
	RepeatDaily   RepeatFrequency = "Daily"
	RepeatWeekly  RepeatFrequency = "Weekly"
	RepeatMonthly RepeatFrequency = "Monthly"
)

// RepeatOptions describe how a recurring event expands across the calendar.
// Days holds weekday abbreviations ("Mon".."Sun") for weekly repeats.
type RepeatOptions struct {
	Frequency RepeatFrequency `json:"frequency"`
	Days      []string        `json:"days,omitempty"`
	EveryDay  bool            `json:"everyDay,omitempty"`
	Time      string          `json:"time,omitempty"`
}

// Event is a calendar entry. Date is the day ("2006-01-02") the event was
// scheduled for; Time is the full RFC 3339 timestamp including the
// time of day, which recurring occurrences inherit.
type Event struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category,omitempty"`
	Priority      string         `json:"priority,omitempty"`
	Date          string         `json:"date"`
	Time          string         `json:"time"`
	Description   string         `json:"description,omitempty"`
	Repeat        bool           `json:"repeat,omitempty"`
	RepeatOptions *RepeatOptions `json:"repeatOptions,omitempty"`
	CreatedBy     string         `json:"createdBy"`
}
