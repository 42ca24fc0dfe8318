package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/tokens"
)

const conversationSequence = "conversations"

// ChatService drives conversations: it assembles the provider context from
// the selected prompt, calls the completion provider, persists the full
// transcript, and emits per-message telemetry.
type ChatService struct {
	prompts   ports.PromptRepository
	convos    ports.ConversationRepository
	seq       ports.SequenceAllocator
	provider  ports.ChatProvider
	telemetry ports.TelemetryRecorder
	log       zerolog.Logger
}

func NewChatService(
	prompts ports.PromptRepository,
	convos ports.ConversationRepository,
	seq ports.SequenceAllocator,
	provider ports.ChatProvider,
	telemetry ports.TelemetryRecorder,
	log zerolog.Logger,
) *ChatService {
	return &ChatService{
		prompts:   prompts,
		convos:    convos,
		seq:       seq,
		provider:  provider,
		telemetry: telemetry,
		log:       log,
	}
}

func (s *ChatService) StartConversation(ctx context.Context, in ports.StartConversationInput) (*ports.ChatTurnResult, error) {
	prompt, err := s.prompts.FindByID(ctx, in.PromptID, in.OwnerCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	system := systemMessage(prompt)
	messages := []domain.Message{
		newMessage(domain.MessageRoleSystem, system, now),
		newMessage(domain.MessageRoleUser, in.Message, now),
	}

	est := tokens.EstimateAPITokens(messages)
	s.log.Debug().Str("prompt_id", prompt.ID).Int("est_input_tokens", est.InputTokens).Msg("requesting completion")

	reply, err := s.provider.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}
	messages = append(messages, newMessage(domain.MessageRoleAssistant, reply, time.Now().UTC()))

	n, err := s.seq.Next(ctx, conversationSequence)
	if err != nil {
		return nil, fmt.Errorf("allocate conversation id: %w", err)
	}

	convo := &domain.Conversation{
		ID:        fmt.Sprintf("C%03d", n),
		OwnerCode: in.OwnerCode,
		PromptID:  prompt.ID,
		Messages:  messages,
		CreatedAt: now,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.convos.Insert(ctx, convo); err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}

	s.telemetry.Enqueue(ports.TelemetryEvent{
		ActorCode: in.OwnerCode,
		Action:    domain.ActionPromptSelection,
		Payload:   map[string]any{"prompt_id": prompt.ID},
	})
	s.telemetry.Enqueue(ports.TelemetryEvent{
		ActorCode: in.OwnerCode,
		Action:    domain.ActionConversationStart,
		Payload:   map[string]any{"conversation_id": convo.ID, "prompt_id": prompt.ID},
	})
	s.recordMessages(in.OwnerCode, prompt.ID, messages[1:])

	s.log.Info().Str("conversation_id", convo.ID).Str("prompt_id", prompt.ID).Str("code", in.OwnerCode).Msg("conversation started")

	return &ports.ChatTurnResult{
		Conversation: convo,
		Reply:        reply,
		Usage:        tokens.CountConversation(messages),
	}, nil
}

func (s *ChatService) ContinueConversation(ctx context.Context, ownerCode, conversationID, message string) (*ports.ChatTurnResult, error) {
	convo, err := s.convos.FindByID(ctx, conversationID, ownerCode)
	if err != nil {
		return nil, err
	}

	turn := []domain.Message{newMessage(domain.MessageRoleUser, message, time.Now().UTC())}
	messages := append(convo.Messages, turn[0])

	est := tokens.EstimateAPITokens(messages)
	s.log.Debug().Str("conversation_id", convo.ID).Int("est_input_tokens", est.InputTokens).Msg("requesting completion")

	reply, err := s.provider.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}
	assistant := newMessage(domain.MessageRoleAssistant, reply, time.Now().UTC())
	messages = append(messages, assistant)
	turn = append(turn, assistant)

	if err := s.convos.ReplaceMessages(ctx, convo.ID, messages); err != nil {
		return nil, fmt.Errorf("update conversation: %w", err)
	}
	convo.Messages = messages

	s.telemetry.Enqueue(ports.TelemetryEvent{
		ActorCode: ownerCode,
		Action:    domain.ActionConversationContinue,
		Payload:   map[string]any{"conversation_id": convo.ID},
	})
	s.recordMessages(ownerCode, convo.PromptID, turn)

	return &ports.ChatTurnResult{
		Conversation: convo,
		Reply:        reply,
		Usage:        tokens.CountConversation(messages),
	}, nil
}

func (s *ChatService) ListConversations(ctx context.Context, ownerCode string) ([]*domain.Conversation, error) {
	return s.convos.ListByOwner(ctx, ownerCode)
}

// recordMessages emits one chat_message telemetry event per message, carrying
// the token count so the analytics surface can aggregate usage.
func (s *ChatService) recordMessages(actorCode, promptID string, messages []domain.Message) {
	for _, m := range messages {
		s.telemetry.Enqueue(ports.TelemetryEvent{
			ActorCode: actorCode,
			Action:    domain.ActionChatMessage,
			Payload: map[string]any{
				"prompt_id":   promptID,
				"role":        m.Role,
				"content":     m.Content,
				"token_count": m.TokenCount,
			},
		})
	}
}

func newMessage(role, content string, at time.Time) domain.Message {
	return domain.Message{
		Role:       role,
		Content:    content,
		TokenCount: tokens.CountMessage(content),
		SentAt:     at,
	}
}

// systemMessage builds the provider context from the prompt content plus any
// attached document texts.
func systemMessage(p *domain.Prompt) string {
	if len(p.Documents) == 0 {
		return p.Content
	}
	var b strings.Builder
	b.WriteString(p.Content)
	for _, d := range p.Documents {
		b.WriteString("\n\n--- Document: ")
		b.WriteString(d.Filename)
		b.WriteString(" ---\n")
		b.WriteString(d.Text)
	}
	return b.String()
}
