package services

import (
	"context"
	"sort"
	"strings"

	"teamboard/collab-core/models"
	"teamboard/collab-core/repositories"
)

// Summary is everything the dashboard shows for one user.
type Summary struct {
	Events     []models.Event       `json:"events"`
	Members    []models.Member      `json:"members"`
	Projects   []models.Project     `json:"projects"`
	Activities []models.ActivityLog `json:"activities"`
}

// DashboardService computes the read-only dashboard aggregation: soonest
// events, the user's team, their projects, and their recent activity.
type DashboardService struct {
	projects *repositories.ProjectRepository
	users    *repositories.UserRepository
	members  *repositories.MemberRepository
	calendar *CalendarService
}

func NewDashboardService(projects *repositories.ProjectRepository, users *repositories.UserRepository, members *repositories.MemberRepository, calendar *CalendarService) *DashboardService {
	return &DashboardService{
		projects: projects,
		users:    users,
		members:  members,
		calendar: calendar,
	}
}

// Summary assembles the dashboard for the user: up to 3 soonest future
// events, up to 6 enriched team members, up to 3 of the user's projects
// with enriched tasks, and the user's 5 most recent activity entries.
func (s *DashboardService) Summary(ctx context.Context, user models.User) (*Summary, error) {
	events, err := s.calendar.Upcoming(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(events) > 3 {
		events = events[:3]
	}

	members, err := s.teamMembers(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	projects, activities, err := s.projectsAndActivity(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Events:     events,
		Members:    members,
		Projects:   projects,
		Activities: activities,
	}, nil
}

// teamMembers enriches the user's team list against the users collection,
// capped at 6 entries.
func (s *DashboardService) teamMembers(ctx context.Context, email string) ([]models.Member, error) {
	team, err := s.members.ForUser(ctx, email)
	if err != nil {
		return nil, err
	}
	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	byEmail := make(map[string]models.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	enriched := make([]models.Member, 0, len(team))
	for _, member := range team {
		profile := byEmail[member.Email]
		if member.Name == "" {
			if name := profile.DisplayName(); name != "" && name != member.Email {
				member.Name = name
			} else {
				member.Name = strings.SplitN(member.Email, "@", 2)[0]
			}
		}
		if member.Avatar == "" {
			member.Avatar = profile.Avatar
		}
		if member.Position == "" {
			if profile.YouAre != "" {
				member.Position = profile.YouAre
			} else {
				member.Position = "Employee"
			}
		}
		if member.Level == "" {
			if profile.Level != "" {
				member.Level = profile.Level
			} else {
				member.Level = "Junior"
			}
		}
		enriched = append(enriched, member)
	}

	if len(enriched) > 6 {
		enriched = enriched[:6]
	}
	return enriched, nil
}

// projectsAndActivity walks the projects collection once: it keeps up to 3
// projects visible to the user (with enriched tasks) and collects the
// user's activity entries from every task log, newest first, capped at 5.
func (s *DashboardService) projectsAndActivity(ctx context.Context, email string) ([]models.Project, []models.ActivityLog, error) {
	projects, err := s.projects.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	var visible []models.Project
	var activities []models.ActivityLog
	for i := range projects {
		for _, task := range projects[i].Tasks {
			for _, entry := range task.Activity {
				if entry.UserEmail == email {
					activities = append(activities, entry)
				}
			}
		}
		if !projects[i].VisibleTo(email) {
			continue
		}
		project := projects[i]
		project.Tasks = enrichTasks(project.Tasks, users)
		visible = append(visible, project)
	}

	if len(visible) > 3 {
		visible = visible[:3]
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return models.ParseISOTime(activities[i].CreatedAt).After(models.ParseISOTime(activities[j].CreatedAt))
	})
	if len(activities) > 5 {
		activities = activities[:5]
	}

	return visible, activities, nil
}
