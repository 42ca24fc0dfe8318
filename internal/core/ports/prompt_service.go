package ports

import (
	"context"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// DocumentInput is an uploaded attachment, raw bytes plus original filename.
type DocumentInput struct {
	Filename string
	Data     []byte
}

// CreatePromptInput carries everything needed to author a prompt.
type CreatePromptInput struct {
	OwnerCode string
	Content   string
	Documents []DocumentInput
}

// PromptService owns prompt authoring and retrieval.
type PromptService interface {
	// CreatePrompt extracts attached documents to text, counts tokens, and
	// persists the prompt. Extraction failure fails the whole creation.
	CreatePrompt(ctx context.Context, in CreatePromptInput) (*domain.Prompt, error)
	GetPrompt(ctx context.Context, id, ownerCode string) (*domain.Prompt, error)
	ListPrompts(ctx context.Context, ownerCode string) ([]*domain.Prompt, error)
}
