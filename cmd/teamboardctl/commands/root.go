package commands

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"teamboard/collab-core/config"
	"teamboard/collab-core/logging"
	"teamboard/collab-core/models"
	"teamboard/collab-core/repositories"
	"teamboard/collab-core/services"
)

var configFile string

// app wires the store and every service together for the commands. It plays
// the part the screens play in the mobile app: an outside caller of the
// core operations.
type app struct {
	store *repositories.Store

	users         *repositories.UserRepository
	projects      *repositories.ProjectRepository
	tasks         *services.TaskService
	projectSvc    *services.ProjectService
	notifications *services.NotificationService
	conversations *services.ConversationService
	dashboard     *services.DashboardService
	calendar      *services.CalendarService
	vacations     *services.VacationService
}

var rootCmd = &cobra.Command{
	Use:   "teamboardctl",
	Short: "Teamboard - local-first team collaboration board",
	Long: `Teamboardctl drives the teamboard collaboration core from the command
line: projects and tasks with the approval workflow, notifications,
messaging, calendar and vacation queries, all against the local
key-value store.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "teamboard.yml", "Path to the config file")
}

// newApp connects to the store and builds the service graph.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	logging.InitLogger(cfg.LogPath)

	store, err := repositories.NewStore(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.Namespace)
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("store is not reachable at %s: %w", cfg.RedisAddr, err)
	}

	users := repositories.NewUserRepository(store)
	projects := repositories.NewProjectRepository(store)
	notificationRepo := repositories.NewNotificationRepository(store)
	conversationRepo := repositories.NewConversationRepository(store)
	eventRepo := repositories.NewEventRepository(store)
	requestRepo := repositories.NewRequestRepository(store)
	memberRepo := repositories.NewMemberRepository(store)

	notifications := services.NewNotificationService(notificationRepo)
	calendar := services.NewCalendarService(eventRepo)

	return &app{
		store:         store,
		users:         users,
		projects:      projects,
		tasks:         services.NewTaskService(projects, users, notifications),
		projectSvc:    services.NewProjectService(projects, users),
		notifications: notifications,
		conversations: services.NewConversationService(conversationRepo, users, notifications),
		dashboard:     services.NewDashboardService(projects, users, memberRepo, calendar),
		calendar:      calendar,
		vacations:     services.NewVacationService(requestRepo, users, cfg.VacationAllowance),
	}, nil
}

func (a *app) Close() {
	a.store.Close()
}

// currentUser resolves who is acting: the stored currentUser session record.
func (a *app) currentUser(ctx context.Context) (models.User, error) {
	user, ok, err := a.users.CurrentUser(ctx)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, fmt.Errorf("no signed-in user; store a currentUser record first")
	}
	return user, nil
}
