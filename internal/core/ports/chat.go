package ports

import (
	"context"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/tokens"
)

// ChatProvider is the opaque chat-completion collaborator. Implementations
// collapse every failure into an error wrapping domain.ErrProvider; callers
// never inspect the cause.
type ChatProvider interface {
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}

// DocumentExtractor turns an uploaded file into plain text. Invoked only at
// prompt-creation time, outside the session/audit state machine.
type DocumentExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

// StartConversationInput begins a new conversation from a prompt.
type StartConversationInput struct {
	OwnerCode string
	PromptID  string
	Message   string
}

// ChatTurnResult carries the provider reply, the conversation it belongs to,
// and the token usage of the full transcript so far.
type ChatTurnResult struct {
	Conversation *domain.Conversation
	Reply        string
	Usage        tokens.Usage
}

// ChatService drives conversations against the chat-completion provider.
type ChatService interface {
	StartConversation(ctx context.Context, in StartConversationInput) (*ChatTurnResult, error)
	ContinueConversation(ctx context.Context, ownerCode, conversationID, message string) (*ChatTurnResult, error)
	ListConversations(ctx context.Context, ownerCode string) ([]*domain.Conversation, error)
}
