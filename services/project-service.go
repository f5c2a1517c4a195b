package services

import (
	"context"
	"fmt"
	"time"

	"teamboard/collab-core/logging"
	"teamboard/collab-core/models"
	"teamboard/collab-core/repositories"
)

// Assignee is the enriched person reference shown on project cards.
type Assignee struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// ProjectService covers project creation, visibility and the read-side
// joins the project screens need.
type ProjectService struct {
	projects *repositories.ProjectRepository
	users    *repositories.UserRepository
	now      func() time.Time
}

func NewProjectService(projects *repositories.ProjectRepository, users *repositories.UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users, now: time.Now}
}

// CreateProject appends a new project owned by creatorEmail.
func (s *ProjectService) CreateProject(ctx context.Context, project models.Project, creatorEmail string) (*models.Project, error) {
	if project.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", models.ErrInvalidInput)
	}

	createdAt := s.now()
	project.ID = models.TimeID(createdAt)
	project.CreatedAt = models.ISOTime(createdAt)
	project.CreatedBy = creatorEmail
	if project.Priority == "" {
		project.Priority = string(models.PriorityMedium)
	}

	if err := s.projects.Append(ctx, project); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project '%s' created by %s", project.Name, creatorEmail)
	return &project, nil
}

// GetProject returns one project by id.
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	return s.projects.GetByID(ctx, projectID)
}

// VisibleProjects returns every project the user sees: created by them,
// containing a task assigned to them, or shared with them.
func (s *ProjectService) VisibleProjects(ctx context.Context, userEmail string) ([]models.Project, error) {
	projects, err := s.projects.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var visible []models.Project
	for i := range projects {
		if projects[i].VisibleTo(userEmail) {
			visible = append(visible, projects[i])
		}
	}
	return visible, nil
}

// EnrichTasks resolves each task's assignee email against the users
// collection into a display name and avatar. Unknown assignees fall back to
// the raw email.
func (s *ProjectService) EnrichTasks(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return enrichTasks(tasks, users), nil
}

func enrichTasks(tasks []models.Task, users []models.User) []models.Task {
	byEmail := make(map[string]models.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	enriched := make([]models.Task, len(tasks))
	for i, task := range tasks {
		if u, ok := byEmail[task.Assignee]; ok {
			task.AssigneeName = u.DisplayName()
			task.AssigneeAvatar = u.Avatar
		} else {
			task.AssigneeName = task.Assignee
			task.AssigneeAvatar = ""
		}
		enriched[i] = task
	}
	return enriched
}

// UniqueAssignees builds the avatar row of a project card: the reporter
// first, then every task assignee, de-duplicated by email with the first
// occurrence winning.
func (s *ProjectService) UniqueAssignees(ctx context.Context, project *models.Project) ([]Assignee, error) {
	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	byEmail := make(map[string]models.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	resolve := func(email string) Assignee {
		if u, ok := byEmail[email]; ok {
			return Assignee{Email: email, Name: u.DisplayName(), Avatar: u.Avatar}
		}
		return Assignee{Email: email, Name: email}
	}

	seen := map[string]bool{}
	var out []Assignee
	add := func(email string) {
		if email == "" || seen[email] {
			return
		}
		seen[email] = true
		out = append(out, resolve(email))
	}

	add(project.CreatedBy)
	for i := range project.Tasks {
		add(project.Tasks[i].Assignee)
	}
	return out, nil
}
