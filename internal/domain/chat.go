package domain

import "time"

// AgentType selects the assistant persona of a chat session
type AgentType string

const (
	AgentTypeGeneral    AgentType = "general"
	AgentTypeSOP        AgentType = "sop"
	AgentTypeCompliance AgentType = "compliance"
	AgentTypeSocial     AgentType = "social"
)

// Valid reports whether a is a known agent type
func (a AgentType) Valid() bool {
	_, ok := agentProfiles[a]
	return ok
}

// MessageRole identifies the author of a chat message
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Valid reports whether r is a known role
func (r MessageRole) Valid() bool {
	return r == MessageRoleUser || r == MessageRoleAssistant
}

// ChatSession groups messages exchanged with one agent persona
type ChatSession struct {
	ID         int64     `json:"id"`
	AgentType  AgentType `json:"agentType"`
	BusinessID int64     `json:"businessId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChatMessage is one turn in a chat session
type ChatMessage struct {
	ID        int64       `json:"id"`
	SessionID int64       `json:"sessionId"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CreateChatSessionInput carries the fields accepted when opening a session
type CreateChatSessionInput struct {
	AgentType  AgentType
	BusinessID int64
}

// CreateChatMessageInput carries the fields accepted when appending a message
type CreateChatMessageInput struct {
	SessionID int64
	Role      MessageRole
	Content   string
}

// NewChatSession builds a ChatSession stamped with now
func NewChatSession(in CreateChatSessionInput, now time.Time) ChatSession {
	return ChatSession{
		AgentType:  in.AgentType,
		BusinessID: in.BusinessID,
		CreatedAt:  now,
	}
}

// NewChatMessage builds a ChatMessage stamped with now
func NewChatMessage(in CreateChatMessageInput, now time.Time) ChatMessage {
	return ChatMessage{
		SessionID: in.SessionID,
		Role:      in.Role,
		Content:   in.Content,
		CreatedAt: now,
	}
}

// Turn is one prior exchange passed to a completion provider
type Turn struct {
	Role    MessageRole
	Content string
}

// TurnsFromMessages converts stored messages into completion history
func TurnsFromMessages(msgs []ChatMessage) []Turn {
	turns := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, Turn{Role: m.Role, Content: m.Content})
	}
	return turns
}
