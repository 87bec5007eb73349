package chat

import "time"

// Role identifies the speaker of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultGreeting is the assistant message every new conversation opens with.
const DefaultGreeting = "Hello! I'm your medical appointment assistant. How can I help you today?"

// Message is one entry in the conversation transcript. Immutable once appended.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}
