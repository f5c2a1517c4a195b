package models

type RequestType string

const (
	RequestVacation     RequestType = "Vacation"
	RequestSickLeave    RequestType = "Sick Leave"
	RequestWorkRemotely RequestType = "Work remotely"
)

type RequestMode string

const (
	RequestModeDays  RequestMode = "Days"
	RequestModeHours RequestMode = "Hours"
)

// VacationRequest is one append-only entry of a user's requests list. The
// requests blob maps user email to their list; aggregate counts are always
// derived, never stored.
type VacationRequest struct {
	Type      RequestType `json:"type"`
	Mode      RequestMode `json:"mode"`
	Dates     []string    `json:"dates,omitempty"`
	Hours     float64     `json:"hours,omitempty"`
	Comment   string      `json:"comment,omitempty"`
	CreatedAt string      `json:"createdAt"`
}

// Amount is the request's contribution to its type tally: day-mode requests
// count one per date, hour-mode requests count once.
func (r VacationRequest) Amount() int {
	if r.Mode == RequestModeDays {
		return len(r.Dates)
	}
	return 1
}
