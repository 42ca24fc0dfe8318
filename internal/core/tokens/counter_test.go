package tokens

import (
	"testing"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// requireEncoding skips when the BPE data is not available locally, since the
// tokenizer fetches it on first use.
func requireEncoding(t *testing.T) {
	t.Helper()
	if _, err := encoding(); err != nil {
		t.Skipf("encoding %s unavailable: %v", encodingName, err)
	}
}

func TestCount_Empty(t *testing.T) {
	if Count("") != 0 {
		t.Fatalf("empty text must count zero tokens")
	}
	if CountMessage("") != 0 {
		t.Fatalf("empty message must count zero tokens")
	}
}

func TestCount_Deterministic(t *testing.T) {
	// The encoding loads once; repeated counts must agree whether or not the
	// load succeeded.
	first := Count("hello world")
	for i := 0; i < 3; i++ {
		if got := Count("hello world"); got != first {
			t.Fatalf("count changed across calls: %d then %d", first, got)
		}
	}
}

func TestCountMessage_AddsRoleOverhead(t *testing.T) {
	requireEncoding(t)
	text := "hello world"
	if got, want := CountMessage(text), Count(text)+roleOverhead; got != want {
		t.Fatalf("CountMessage = %d, want %d", got, want)
	}
}

func TestCountConversation_SplitsByDirection(t *testing.T) {
	requireEncoding(t)
	messages := []domain.Message{
		{Role: domain.MessageRoleSystem, Content: "be brief"},
		{Role: domain.MessageRoleUser, Content: "hello"},
		{Role: domain.MessageRoleAssistant, Content: "hi"},
	}

	u := CountConversation(messages)
	wantIn := CountMessage("be brief") + CountMessage("hello")
	wantOut := CountMessage("hi")
	if u.InputTokens != wantIn || u.OutputTokens != wantOut {
		t.Fatalf("got %+v, want in=%d out=%d", u, wantIn, wantOut)
	}
}

func TestEstimateAPITokens_AddsPerMessageOverhead(t *testing.T) {
	requireEncoding(t)
	messages := []domain.Message{
		{Role: domain.MessageRoleUser, Content: "hello"},
		{Role: domain.MessageRoleAssistant, Content: "hi"},
	}

	base := CountConversation(messages)
	est := EstimateAPITokens(messages)
	if est.InputTokens != base.InputTokens+len(messages)*apiOverhead {
		t.Fatalf("input estimate = %d, want %d", est.InputTokens, base.InputTokens+len(messages)*apiOverhead)
	}
	if est.OutputTokens != base.OutputTokens {
		t.Fatalf("output estimate must not change, got %d", est.OutputTokens)
	}
}
