package services

import (
	"context"
	"fmt"
	"time"

	"teamboard/collab-core/logging"
	"teamboard/collab-core/models"
	"teamboard/collab-core/repositories"
)

// Tally is the per-user request summary shown on the vacations screen.
// Counts are always derived from the stored request lists.
type Tally struct {
	Vacation     int `json:"vacation"`
	SickLeave    int `json:"sickLeave"`
	WorkRemotely int `json:"workRemotely"`
}

// VacationService owns the append-only vacation request lists and their
// derived tallies.
type VacationService struct {
	requests *repositories.RequestRepository
	users    *repositories.UserRepository

	// defaultAllowance applies when the user profile has no override.
	defaultAllowance int
	now              func() time.Time
}

func NewVacationService(requests *repositories.RequestRepository, users *repositories.UserRepository, defaultAllowance int) *VacationService {
	if defaultAllowance <= 0 {
		defaultAllowance = 3
	}
	return &VacationService{
		requests:         requests,
		users:            users,
		defaultAllowance: defaultAllowance,
		now:              time.Now,
	}
}

// Tallies counts the user's requests per type: day-mode requests contribute
// one per date, hour-mode requests contribute one each.
func (s *VacationService) Tallies(ctx context.Context, email string) (Tally, error) {
	requests, err := s.requests.ForUser(ctx, email)
	if err != nil {
		return Tally{}, err
	}

	var t Tally
	for _, r := range requests {
		switch r.Type {
		case models.RequestVacation:
			t.Vacation += r.Amount()
		case models.RequestSickLeave:
			t.SickLeave += r.Amount()
		case models.RequestWorkRemotely:
			t.WorkRemotely += r.Amount()
		}
	}
	return t, nil
}

// RemainingVacationDays is the user's allowance minus every day-mode
// vacation day already requested, floored at zero.
func (s *VacationService) RemainingVacationDays(ctx context.Context, email string) (int, error) {
	allowance := s.defaultAllowance
	if user, ok, err := s.users.ByEmail(ctx, email); err != nil {
		return 0, err
	} else if ok && user.VacationDaysLeft > 0 {
		allowance = user.VacationDaysLeft
	}

	requests, err := s.requests.ForUser(ctx, email)
	if err != nil {
		return 0, err
	}

	used := 0
	for _, r := range requests {
		if r.Type == models.RequestVacation && r.Mode == models.RequestModeDays {
			used += len(r.Dates)
		}
	}

	remaining := allowance - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Submit appends a request to the user's list. Day-mode requests need at
// least one date, and a day-mode vacation may not exceed the remaining
// allowance.
func (s *VacationService) Submit(ctx context.Context, email string, request models.VacationRequest) error {
	if request.Mode == models.RequestModeDays && len(request.Dates) == 0 {
		return fmt.Errorf("%w: a day-mode request needs at least one date", models.ErrInvalidInput)
	}
	if request.Mode == models.RequestModeHours && request.Hours <= 0 {
		return fmt.Errorf("%w: an hour-mode request needs a positive hour count", models.ErrInvalidInput)
	}

	if request.Type == models.RequestVacation && request.Mode == models.RequestModeDays {
		remaining, err := s.RemainingVacationDays(ctx, email)
		if err != nil {
			return err
		}
		if len(request.Dates) > remaining {
			return fmt.Errorf("%w: only %d vacation day(s) left", models.ErrInvalidInput, remaining)
		}
	}

	request.CreatedAt = models.ISOTime(s.now())
	if err := s.requests.Append(ctx, email, request); err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: REQUEST_SUBMITTED, Description: %s request (%s) submitted by %s", request.Type, request.Mode, email)
	return nil
}
