package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// ChatSession scopes one conversation transcript to a user. Sessions are
// long-lived; the transcript grows append-only, one user/agent pair per turn.
type ChatSession struct {
	ID        string    `json:"id"`
	UserID    int32     `json:"user_id"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

type ChatMessage struct {
	ID        int32     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"created_on"`
}
