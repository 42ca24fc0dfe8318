package ports

import (
	"context"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// PromptRepository defines persistence for prompts.
type PromptRepository interface {
	Insert(ctx context.Context, p *domain.Prompt) error
	// FindByID returns domain.ErrPromptNotFound when no prompt matches.
	// When ownerCode is non-empty the lookup is additionally scoped to the
	// owner (users only see their own prompts).
	FindByID(ctx context.Context, id, ownerCode string) (*domain.Prompt, error)
	// ListByOwner returns the owner's prompts, newest first.
	ListByOwner(ctx context.Context, ownerCode string) ([]*domain.Prompt, error)
}

// ConversationRepository defines persistence for conversations.
type ConversationRepository interface {
	Insert(ctx context.Context, c *domain.Conversation) error
	// FindByID scopes to ownerCode; returns domain.ErrConversationNotFound
	// when no conversation matches.
	FindByID(ctx context.Context, id, ownerCode string) (*domain.Conversation, error)
	// ReplaceMessages overwrites the message list and bumps updated_at.
	ReplaceMessages(ctx context.Context, id string, messages []domain.Message) error
	// ListByOwner returns the owner's conversations, most recently updated first.
	ListByOwner(ctx context.Context, ownerCode string) ([]*domain.Conversation, error)
}

// SequenceAllocator hands out monotonically increasing integers per named
// sequence. Backed by an atomic counter document so concurrent allocations
// never collide.
type SequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
}
