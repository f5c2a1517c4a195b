package models

type NotificationType string

const (
	NotificationComment    NotificationType = "comment"
	NotificationStatus     NotificationType = "status"
	NotificationAssignment NotificationType = "assignment"
)

// NotificationMeta points back at the task roles involved in the event.
type NotificationMeta struct {
	Assignee string `json:"assignee,omitempty"`
	Reporter string `json:"reporter,omitempty"`
}

// Notification is one entry of a receiver's feed. Created by the dispatcher,
// mutated only to flip IsRead.
type Notification struct {
	ID          string            `json:"id"`
	Type        NotificationType  `json:"type"`
	Message     string            `json:"message"`
	TaskName    string            `json:"taskName,omitempty"`
	ActorName   string            `json:"actorName,omitempty"`
	ActorAvatar string            `json:"actorAvatar,omitempty"`
	Receiver    string            `json:"receiver"`
	CreatedAt   string            `json:"createdAt"`
	IsRead      bool              `json:"isRead"`
	Meta        *NotificationMeta `json:"meta,omitempty"`
}
