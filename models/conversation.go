package models

type ConversationType string

const (
	ConversationDirect ConversationType = "direct"
	ConversationGroup  ConversationType = "group"
)

// Message is immutable once sent. It carries text, an attachment, or both.
type Message struct {
	ID         string      `json:"id"`
	Sender     string      `json:"sender"`
	Text       string      `json:"text,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
	CreatedAt  string      `json:"createdAt"`
}

// Conversation holds its messages directly. At most one direct conversation
// exists per unordered pair of participants; creation deduplicates.
type Conversation struct {
	ID           string           `json:"id"`
	Type         ConversationType `json:"type"`
	Participants []string         `json:"participants"`
	Name         string           `json:"name,omitempty"`
	GroupAvatar  string           `json:"groupAvatar,omitempty"`
	Messages     []Message        `json:"messages,omitempty"`
	CreatedAt    string           `json:"createdAt,omitempty"`
	UpdatedAt    string           `json:"updatedAt,omitempty"`
}

// HasParticipant reports whether email takes part in the conversation.
func (c *Conversation) HasParticipant(email string) bool {
	for _, p := range c.Participants {
		if p == email {
			return true
		}
	}
	return false
}
