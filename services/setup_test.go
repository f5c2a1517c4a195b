package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"teamboard/collab-core/repositories"
)

// fixture wires every repository and service against a miniredis instance.
type fixture struct {
	store         *repositories.Store
	projects      *repositories.ProjectRepository
	users         *repositories.UserRepository
	conversations *repositories.ConversationRepository
	events        *repositories.EventRepository
	requests      *repositories.RequestRepository
	members       *repositories.MemberRepository

	notifications *NotificationService
	tasks         *TaskService
	projectSvc    *ProjectService
	chat          *ConversationService
	calendar      *CalendarService
	vacations     *VacationService
	dashboard     *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	store, err := repositories.NewStore(&redis.Options{Addr: mr.Addr()}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &fixture{
		store:         store,
		projects:      repositories.NewProjectRepository(store),
		users:         repositories.NewUserRepository(store),
		conversations: repositories.NewConversationRepository(store),
		events:        repositories.NewEventRepository(store),
		requests:      repositories.NewRequestRepository(store),
		members:       repositories.NewMemberRepository(store),
	}
	f.notifications = NewNotificationService(repositories.NewNotificationRepository(store))
	f.tasks = NewTaskService(f.projects, f.users, f.notifications)
	f.projectSvc = NewProjectService(f.projects, f.users)
	f.chat = NewConversationService(f.conversations, f.users, f.notifications)
	f.calendar = NewCalendarService(f.events)
	f.vacations = NewVacationService(f.requests, f.users, 3)
	f.dashboard = NewDashboardService(f.projects, f.users, f.members, f.calendar)
	return f
}

var testBase = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// steppedClock hands out strictly increasing timestamps, one step apart.
func steppedClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		at := current
		current = current.Add(step)
		return at
	}
}
