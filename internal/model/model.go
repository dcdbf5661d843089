package model

import "time"

// Message roles. The transcript only ever contains these two; nothing else
// reaches the client-visible history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in a conversation transcript. Messages are
// immutable once created and only ever appended.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation stores metadata about a single chat thread. Provider and
// Model are fixed at creation; changing the global selection afterwards does
// not rewrite existing conversations.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullConversation includes the conversation metadata and its transcript.
type FullConversation struct {
	Conversation
	Messages []Message `json:"messages"`
}

// State reflects the request lifecycle the UI renders: whether a send is in
// flight and the last reported error, if any.
type State struct {
	Loading   bool   `json:"loading"`
	LastError string `json:"last_error,omitempty"`
}
