package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/tokens"
)

const promptSequence = "prompts"

// PromptService implements prompt authoring: document extraction, token
// counting, and sequential P%03d id allocation.
type PromptService struct {
	prompts   ports.PromptRepository
	seq       ports.SequenceAllocator
	extractor ports.DocumentExtractor
	telemetry ports.TelemetryRecorder
	log       zerolog.Logger
}

func NewPromptService(
	prompts ports.PromptRepository,
	seq ports.SequenceAllocator,
	extractor ports.DocumentExtractor,
	telemetry ports.TelemetryRecorder,
	log zerolog.Logger,
) *PromptService {
	return &PromptService{
		prompts:   prompts,
		seq:       seq,
		extractor: extractor,
		telemetry: telemetry,
		log:       log,
	}
}

func (s *PromptService) CreatePrompt(ctx context.Context, in ports.CreatePromptInput) (*domain.Prompt, error) {
	docs := make([]domain.Document, 0, len(in.Documents))
	for _, d := range in.Documents {
		text, err := s.extractor.Extract(d.Filename, d.Data)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", d.Filename, err)
		}
		docs = append(docs, domain.Document{Filename: d.Filename, Text: text})
	}

	n, err := s.seq.Next(ctx, promptSequence)
	if err != nil {
		return nil, fmt.Errorf("allocate prompt id: %w", err)
	}

	now := time.Now().UTC()
	p := &domain.Prompt{
		ID:         fmt.Sprintf("P%03d", n),
		OwnerCode:  in.OwnerCode,
		Content:    in.Content,
		Documents:  docs,
		TokenCount: tokens.Count(in.Content),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.prompts.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert prompt: %w", err)
	}

	s.telemetry.Enqueue(ports.TelemetryEvent{
		ActorCode: in.OwnerCode,
		Action:    domain.ActionPromptCreate,
		Payload: map[string]any{
			"prompt_id":      p.ID,
			"content_length": len(in.Content),
			"token_count":    p.TokenCount,
			"documents":      len(docs),
		},
	})

	s.log.Info().Str("prompt_id", p.ID).Str("code", in.OwnerCode).Int("documents", len(docs)).Msg("prompt created")
	return p, nil
}

func (s *PromptService) GetPrompt(ctx context.Context, id, ownerCode string) (*domain.Prompt, error) {
	return s.prompts.FindByID(ctx, id, ownerCode)
}

func (s *PromptService) ListPrompts(ctx context.Context, ownerCode string) ([]*domain.Prompt, error) {
	return s.prompts.ListByOwner(ctx, ownerCode)
}
