package models

// TaskStatus is the workboard column of a task. Any status may move to any
// other while the task is editable; completion is a separate flag.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusInReview   TaskStatus = "In Review"
	StatusDone       TaskStatus = "Done"
)

// Statuses lists every valid task status, in board order.
var Statuses = []TaskStatus{StatusToDo, StatusInProgress, StatusInReview, StatusDone}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

type AttachmentType string

const (
	AttachmentFile AttachmentType = "file"
	AttachmentLink AttachmentType = "link"
)

// Attachment belongs to the task or message holding it. Removable only while
// the owning task is not completed.
type Attachment struct {
	ID       string         `json:"id"`
	Type     AttachmentType `json:"type"`
	Name     string         `json:"name"`
	URL      string         `json:"url"`
	Size     int64          `json:"size,omitempty"`
	MimeType string         `json:"mimeType,omitempty"`
}

// ActivityLog is one entry of a task's append-only history. Entries are
// never edited or removed once written.
type ActivityLog struct {
	ID         string `json:"id"`
	UserEmail  string `json:"userEmail"`
	UserName   string `json:"userName,omitempty"`
	UserAvatar string `json:"userAvatar,omitempty"`
	Message    string `json:"message"`
	CreatedAt  string `json:"createdAt"`
}

// Task lives inside its owning project's tasks list. Estimate is computed
// once at creation from the deadline; spentTime only grows through explicit
// time logging. Once Completed is true the task is immutable.
type Task struct {
	ID          string        `json:"id"`
	TaskName    string        `json:"taskName"`
	TaskGroup   string        `json:"taskGroup,omitempty"`
	Priority    Priority      `json:"priority"`
	Assignee    string        `json:"assignee"`
	CreatedBy   string        `json:"createdBy"`
	Deadline    string        `json:"deadline"`
	Estimate    string        `json:"estimate,omitempty"`
	SpentTime   string        `json:"spentTime,omitempty"`
	Status      TaskStatus    `json:"status,omitempty"`
	Completed   bool          `json:"completed,omitempty"`
	Description string        `json:"description,omitempty"`
	CreatedAt   string        `json:"createdAt"`
	Attachments []Attachment  `json:"attachments,omitempty"`
	Activity    []ActivityLog `json:"activity,omitempty"`

	// Denormalized join results some screens persisted alongside the task;
	// kept so re-encoding does not drop them.
	AssigneeName   string `json:"assigneeName,omitempty"`
	AssigneeAvatar string `json:"assigneeAvatar,omitempty"`

	extra Extra
}

type taskAlias Task

func (t *Task) UnmarshalJSON(data []byte) error {
	var a taskAlias
	extra, err := splitExtra(data, &a)
	if err != nil {
		return err
	}
	*t = Task(a)
	t.extra = extra
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	return mergeExtra(taskAlias(t), t.extra)
}
