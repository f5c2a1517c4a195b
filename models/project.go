package models

// Project owns its tasks exclusively; there is no standalone tasks
// collection. IDs are time-based strings assigned at creation.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	StartDate   string   `json:"startDate,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Description string   `json:"description,omitempty"`
	CreatedBy   string   `json:"createdBy"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	SharedWith  []string `json:"sharedWith,omitempty"`
	Tasks       []Task   `json:"tasks,omitempty"`

	extra Extra
}

type projectAlias Project

func (p *Project) UnmarshalJSON(data []byte) error {
	var a projectAlias
	extra, err := splitExtra(data, &a)
	if err != nil {
		return err
	}
	*p = Project(a)
	p.extra = extra
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	return mergeExtra(projectAlias(p), p.extra)
}

// TaskByID returns a pointer into the project's task slice, or nil.
func (p *Project) TaskByID(taskID string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}

// VisibleTo reports whether user sees this project: its creator, the
// assignee of any contained task, or anyone the project was shared with.
func (p *Project) VisibleTo(email string) bool {
	if p.CreatedBy == email {
		return true
	}
	for i := range p.Tasks {
		if p.Tasks[i].Assignee == email {
			return true
		}
	}
	for _, shared := range p.SharedWith {
		if shared == email {
			return true
		}
	}
	return false
}
