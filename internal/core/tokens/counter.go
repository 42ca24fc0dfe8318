// Package tokens counts chat tokens with the o200k_base encoding used by the
// hosted completion models, so stored counts line up with provider billing.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

const encodingName = "o200k_base"

// Per-message formatting overhead the provider adds around the content.
const (
	roleOverhead = 4
	apiOverhead  = 3
)

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
	encErr  error
)

func encoding() (*tiktoken.Tiktoken, error) {
	encOnce.Do(func() {
		enc, encErr = tiktoken.GetEncoding(encodingName)
		if encErr != nil {
			// Counting degrades to zero for the process lifetime; say so
			// once instead of failing every count.
			log.Error().Err(encErr).Str("encoding", encodingName).Msg("token encoding unavailable, counts degrade to zero")
		}
	})
	return enc, encErr
}

// Count returns the token count of a plain text string.
func Count(text string) int {
	if text == "" {
		return 0
	}
	e, err := encoding()
	if err != nil {
		return 0
	}
	return len(e.Encode(text, nil, nil))
}

// CountMessage returns the token count of one chat message including the
// role-formatting overhead.
func CountMessage(content string) int {
	if content == "" {
		return 0
	}
	return Count(content) + roleOverhead
}

// Usage summarizes the token split of a conversation.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// CountConversation totals message tokens by direction: user and system
// messages count as input, assistant messages as output.
func CountConversation(messages []domain.Message) Usage {
	var u Usage
	for _, m := range messages {
		n := CountMessage(m.Content)
		switch m.Role {
		case domain.MessageRoleAssistant:
			u.OutputTokens += n
		default:
			u.InputTokens += n
		}
	}
	return u
}

// EstimateAPITokens is CountConversation plus the per-message API overhead on
// the input side, approximating what the provider will meter for a request.
func EstimateAPITokens(messages []domain.Message) Usage {
	u := CountConversation(messages)
	u.InputTokens += len(messages) * apiOverhead
	return u
}
