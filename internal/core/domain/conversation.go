package domain

import "time"

// Message roles as sent to the chat-completion provider.
const (
	MessageRoleSystem    = "system"
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	Role       string    `json:"role" bson:"role"`
	Content    string    `json:"content" bson:"content"`
	TokenCount int       `json:"token_count" bson:"token_count"`
	SentAt     time.Time `json:"sent_at" bson:"sent_at"`
}

// Conversation is a persisted chat transcript anchored to a prompt. ID
// follows the C%03d display convention.
type Conversation struct {
	ID        string    `json:"conversation_id" bson:"conversation_id"`
	OwnerCode string    `json:"user_code" bson:"user_code"`
	PromptID  string    `json:"prompt_id" bson:"prompt_id"`
	Messages  []Message `json:"messages" bson:"messages"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
