package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"teamboard/collab-core/logging"
	"teamboard/collab-core/models"
	"teamboard/collab-core/repositories"
)

// TaskService owns the task lifecycle: status transitions with the two-phase
// completion gate, time logging, attachments, description edits and the
// append-only activity log. Every mutation is one locked read-patch-write of
// the projects blob followed by notification fan-out.
type TaskService struct {
	projects      *repositories.ProjectRepository
	users         *repositories.UserRepository
	notifications *NotificationService
	now           func() time.Time
}

func NewTaskService(projects *repositories.ProjectRepository, users *repositories.UserRepository, notifications *NotificationService) *TaskService {
	return &TaskService{
		projects:      projects,
		users:         users,
		notifications: notifications,
		now:           time.Now,
	}
}

// CanEditTask is the single permission predicate: the reporter or the
// assignee may edit, and nobody may once the task is completed.
func CanEditTask(userEmail string, task *models.Task) bool {
	if task.Completed {
		return false
	}
	return userEmail == task.CreatedBy || userEmail == task.Assignee
}

// CreateTask appends a task to the project. The estimate is fixed here as
// deadline minus creation time; it is never recomputed later.
func (s *TaskService) CreateTask(ctx context.Context, projectID string, task models.Task, actorEmail string) (*models.Task, error) {
	if task.TaskName == "" {
		return nil, fmt.Errorf("%w: task name is required", models.ErrInvalidInput)
	}
	deadline := models.ParseISOTime(task.Deadline)
	if deadline.IsZero() {
		return nil, fmt.Errorf("%w: task deadline is required", models.ErrInvalidInput)
	}

	createdAt := s.now()
	task.ID = models.TimeID(createdAt)
	task.CreatedAt = models.ISOTime(createdAt)
	task.CreatedBy = actorEmail
	task.Status = models.StatusToDo
	task.Completed = false
	estimateMinutes := int(deadline.Sub(createdAt).Minutes())
	if estimateMinutes < 0 {
		estimateMinutes = 0
	}
	d := estimateMinutes / (24 * 60)
	h := (estimateMinutes % (24 * 60)) / 60
	m := estimateMinutes % 60
	task.Estimate = fmt.Sprintf("%dd %dh %dm", d, h, m)
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	err := s.projects.WithProject(ctx, projectID, func(project *models.Project) error {
		project.Tasks = append(project.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task '%s' created in project %s", task.TaskName, projectID)

	if task.Assignee != "" && task.Assignee != actorEmail {
		actor := s.actorProfile(ctx, actorEmail)
		event := Event{
			Type:        models.NotificationAssignment,
			Message:     "assigned you to",
			TaskName:    task.TaskName,
			ActorName:   actor.DisplayName(),
			ActorAvatar: actor.Avatar,
			Receiver:    task.Assignee,
			Meta:        &models.NotificationMeta{Assignee: task.Assignee, Reporter: actorEmail},
		}
		if err := s.notifications.Notify(ctx, event); err != nil {
			logging.Logger.Warnf("Event ID: NOTIFY_FAILED, Description: Failed to notify assignee %s: %v", task.Assignee, err)
		}
	}

	return &task, nil
}

// GetTask returns a copy of one task.
func (s *TaskService) GetTask(ctx context.Context, projectID, taskID string) (*models.Task, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	task := project.TaskByID(taskID)
	if task == nil {
		return nil, fmt.Errorf("%w: task %s", models.ErrNotFound, taskID)
	}
	return task, nil
}

// ChangeStatus moves the task to another column. Setting status to Done
// does NOT complete the task; completion only happens through Approve.
func (s *TaskService) ChangeStatus(ctx context.Context, projectID, taskID string, status models.TaskStatus, actorEmail string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}
	return s.persist(ctx, projectID, taskID, actorEmail, models.NotificationStatus,
		fmt.Sprintf("updated the status to %s", status),
		func(task *models.Task) error {
			task.Status = status
			return nil
		})
}

// Approve is the second phase of completing a task: it fixes status at Done
// and flips the completed flag, freezing the task for good.
func (s *TaskService) Approve(ctx context.Context, projectID, taskID, actorEmail string) error {
	return s.persist(ctx, projectID, taskID, actorEmail, models.NotificationStatus,
		"approved the task as completed",
		func(task *models.Task) error {
			task.Status = models.StatusDone
			task.Completed = true
			return nil
		})
}

// ChangeDeadline moves the task deadline. The estimate stays as computed at
// creation.
func (s *TaskService) ChangeDeadline(ctx context.Context, projectID, taskID string, newDate time.Time, actorEmail string) error {
	return s.persist(ctx, projectID, taskID, actorEmail, models.NotificationComment,
		fmt.Sprintf("changed deadline to %s", newDate.Format("Mon Jan 02 2006")),
		func(task *models.Task) error {
			task.Deadline = models.ISOTime(newDate)
			return nil
		})
}

// LogTime adds hours/minutes to the accumulated spentTime. Either part may
// be empty or zero, but not both unparseable.
func (s *TaskService) LogTime(ctx context.Context, projectID, taskID, hours, minutes, actorEmail string) error {
	h, errH := strconv.Atoi(strings.TrimSpace(hours))
	m, errM := strconv.Atoi(strings.TrimSpace(minutes))
	if errH != nil && errM != nil {
		return fmt.Errorf("%w: hours and minutes are both unparseable", models.ErrInvalidInput)
	}
	if errH != nil {
		h = 0
	}
	if errM != nil {
		m = 0
	}
	if h < 0 || m < 0 {
		return fmt.Errorf("%w: logged time cannot be negative", models.ErrInvalidInput)
	}

	addMinutes := h*60 + m
	return s.persist(ctx, projectID, taskID, actorEmail, models.NotificationComment,
		fmt.Sprintf("logged time %dh %dm", h, m),
		func(task *models.Task) error {
			total := models.StringToMinutes(task.SpentTime) + addMinutes
			task.SpentTime = models.MinutesToString(total)
			return nil
		})
}

// UpdateDescription replaces the task description.
func (s *TaskService) UpdateDescription(ctx context.Context, projectID, taskID, description, actorEmail string) error {
	return s.persist(ctx, projectID, taskID, actorEmail, models.NotificationComment,
		"updated description",
		func(task *models.Task) error {
			task.Description = description
			return nil
		})
}

// AddAttachment appends a file or link attachment to the task.
func (s *TaskService) AddAttachment(ctx context.Context, projectID, taskID string, attachment models.Attachment, actorEmail string) error {
	if attachment.Name == "" || attachment.URL == "" {
		return fmt.Errorf("%w: attachment name and url are required", models.ErrInvalidInput)
	}
	if attachment.Type != models.AttachmentFile && attachment.Type != models.AttachmentLink {
		return fmt.Errorf("%w: unknown attachment type %q", models.ErrInvalidInput, attachment.Type)
	}
	if attachment.ID == "" {
		attachment.ID = models.TimeID(s.now())
	}

	return s.persist(ctx, projectID, taskID, actorEmail, models.NotificationComment,
		fmt.Sprintf("attached %s %s", attachment.Type, attachment.Name),
		func(task *models.Task) error {
			task.Attachments = append(task.Attachments, attachment)
			return nil
		})
}

// RemoveAttachment deletes one attachment by id.
func (s *TaskService) RemoveAttachment(ctx context.Context, projectID, taskID, attachmentID, actorEmail string) error {
	return s.persistNamed(ctx, projectID, taskID, actorEmail, models.NotificationComment,
		func(task *models.Task) (string, error) {
			idx := -1
			for i := range task.Attachments {
				if task.Attachments[i].ID == attachmentID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return "", fmt.Errorf("%w: attachment %s", models.ErrNotFound, attachmentID)
			}
			name := task.Attachments[idx].Name
			task.Attachments = append(task.Attachments[:idx], task.Attachments[idx+1:]...)
			return fmt.Sprintf("removed attachment %s", name), nil
		})
}

// persist applies patch to the identified task under the projects lock,
// appends the activity entry and fans the event out. The permission check
// runs against the state read inside the lock.
func (s *TaskService) persist(ctx context.Context, projectID, taskID, actorEmail string, notifType models.NotificationType, activityMessage string, patch func(*models.Task) error) error {
	return s.persistNamed(ctx, projectID, taskID, actorEmail, notifType,
		func(task *models.Task) (string, error) {
			return activityMessage, patch(task)
		})
}

func (s *TaskService) persistNamed(ctx context.Context, projectID, taskID, actorEmail string, notifType models.NotificationType, patch func(*models.Task) (string, error)) error {
	actor := s.actorProfile(ctx, actorEmail)

	var taskName, entryMessage string
	var recipients []string
	var meta models.NotificationMeta

	err := s.projects.WithProject(ctx, projectID, func(project *models.Project) error {
		task := project.TaskByID(taskID)
		if task == nil {
			return fmt.Errorf("%w: task %s", models.ErrNotFound, taskID)
		}
		if !CanEditTask(actorEmail, task) {
			return fmt.Errorf("%w: %s may not edit task %s", models.ErrPermissionDenied, actorEmail, taskID)
		}

		message, err := patch(task)
		if err != nil {
			return err
		}

		task.Activity = append(task.Activity, models.ActivityLog{
			ID:         uuid.New().String(),
			UserEmail:  actorEmail,
			UserName:   actor.DisplayName(),
			UserAvatar: actor.Avatar,
			Message:    message,
			CreatedAt:  models.ISOTime(s.now()),
		})

		taskName = task.TaskName
		entryMessage = message
		meta = models.NotificationMeta{Assignee: task.Assignee, Reporter: task.CreatedBy}
		for _, email := range []string{task.Assignee, task.CreatedBy} {
			if email != "" && email != actorEmail {
				recipients = append(recipients, email)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Fan-out happens after the write committed; a notification failure must
	// not roll the task change back.
	for _, receiver := range recipients {
		event := Event{
			Type:        notifType,
			Message:     entryMessage,
			TaskName:    taskName,
			ActorName:   actor.DisplayName(),
			ActorAvatar: actor.Avatar,
			Receiver:    receiver,
			Meta:        &meta,
		}
		if err := s.notifications.Notify(ctx, event); err != nil {
			logging.Logger.Warnf("Event ID: NOTIFY_FAILED, Description: Failed to notify %s: %v", receiver, err)
		}
	}
	return nil
}

func (s *TaskService) actorProfile(ctx context.Context, email string) models.User {
	user, ok, err := s.users.ByEmail(ctx, email)
	if err != nil || !ok {
		return models.User{Email: email}
	}
	return user
}
