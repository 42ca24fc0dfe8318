package service

// In-memory stub implementations of the ports used across the service tests.

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

type recordedEvent struct {
	actorCode string
	action    domain.Action
	payload   map[string]any
}

type stubAuditLog struct {
	mu     sync.Mutex
	events []recordedEvent
	// failWith, when set, makes Record fail.
	failWith error
}

func (a *stubAuditLog) Record(_ context.Context, actorCode string, action domain.Action, payload map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failWith != nil {
		return a.failWith
	}
	a.events = append(a.events, recordedEvent{actorCode: actorCode, action: action, payload: payload})
	return nil
}

func (a *stubAuditLog) Query(_ context.Context, filter domain.AuditFilter) iter.Seq2[*domain.AuditEvent, error] {
	a.mu.Lock()
	events := append([]recordedEvent(nil), a.events...)
	a.mu.Unlock()
	return func(yield func(*domain.AuditEvent, error) bool) {
		for i, ev := range events {
			if filter.Limit > 0 && int64(i) >= filter.Limit {
				return
			}
			if !yield(&domain.AuditEvent{ActorCode: ev.actorCode, Action: ev.action, Payload: ev.payload, OccurredAt: time.Now()}, nil) {
				return
			}
		}
	}
}

func (a *stubAuditLog) byAction(action domain.Action) []recordedEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []recordedEvent
	for _, ev := range a.events {
		if ev.action == action {
			out = append(out, ev)
		}
	}
	return out
}

type stubCredRepo struct {
	creds map[string]*domain.Credential
}

func newStubCredRepo() *stubCredRepo {
	return &stubCredRepo{creds: make(map[string]*domain.Credential)}
}

func (r *stubCredRepo) Resolve(_ context.Context, code string) (*domain.Credential, error) {
	cred, ok := r.creds[code]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	clone := *cred
	return &clone, nil
}

func (r *stubCredRepo) Create(_ context.Context, cred *domain.Credential) error {
	if _, exists := r.creds[cred.Code]; exists {
		return domain.ErrCredentialExists
	}
	clone := *cred
	r.creds[cred.Code] = &clone
	return nil
}

func (r *stubCredRepo) SetConsent(_ context.Context, code string, consent domain.Consent) error {
	cred, ok := r.creds[code]
	if !ok {
		return domain.ErrCredentialNotFound
	}
	cred.Consent = consent
	return nil
}

func (r *stubCredRepo) TouchLastSeen(_ context.Context, code string) error {
	if cred, ok := r.creds[code]; ok {
		cred.LastSeenAt = time.Now().UTC()
	}
	return nil
}

func (r *stubCredRepo) List(_ context.Context) ([]*domain.Credential, error) {
	out := make([]*domain.Credential, 0, len(r.creds))
	for _, c := range r.creds {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

type stubGrantRepo struct {
	grants []*domain.AdminGrant
}

func (r *stubGrantRepo) Insert(_ context.Context, grant *domain.AdminGrant) error {
	for _, g := range r.grants {
		if g.Code == grant.Code && g.Active {
			return domain.ErrAlreadyGranted
		}
	}
	clone := *grant
	r.grants = append(r.grants, &clone)
	return nil
}

func (r *stubGrantRepo) Deactivate(_ context.Context, code, revokedBy string, at time.Time) error {
	for _, g := range r.grants {
		if g.Code == code && g.Active {
			g.Active = false
			g.RevokedBy = revokedBy
			g.RevokedAt = &at
			return nil
		}
	}
	return domain.ErrNotActive
}

func (r *stubGrantRepo) FindActive(_ context.Context, code string) (*domain.AdminGrant, error) {
	for _, g := range r.grants {
		if g.Code == code && g.Active {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domain.ErrNotActive
}

func (r *stubGrantRepo) List(_ context.Context, includeRevoked bool) ([]*domain.AdminGrant, error) {
	var out []*domain.AdminGrant
	for _, g := range r.grants {
		if !g.Active && !includeRevoked {
			continue
		}
		clone := *g
		out = append(out, &clone)
	}
	return out, nil
}

type stubInvalidator struct {
	denied map[string]bool
}

func newStubInvalidator() *stubInvalidator {
	return &stubInvalidator{denied: make(map[string]bool)}
}

func (s *stubInvalidator) Invalidate(_ context.Context, tokenID string) error {
	s.denied[tokenID] = true
	return nil
}

func (s *stubInvalidator) IsInvalidated(_ context.Context, tokenID string) (bool, error) {
	return s.denied[tokenID], nil
}

type stubPromptRepo struct {
	prompts map[string]*domain.Prompt
}

func newStubPromptRepo() *stubPromptRepo {
	return &stubPromptRepo{prompts: make(map[string]*domain.Prompt)}
}

func (r *stubPromptRepo) Insert(_ context.Context, p *domain.Prompt) error {
	clone := *p
	r.prompts[p.ID] = &clone
	return nil
}

func (r *stubPromptRepo) FindByID(_ context.Context, id, ownerCode string) (*domain.Prompt, error) {
	p, ok := r.prompts[id]
	if !ok || (ownerCode != "" && p.OwnerCode != ownerCode) {
		return nil, domain.ErrPromptNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPromptRepo) ListByOwner(_ context.Context, ownerCode string) ([]*domain.Prompt, error) {
	var out []*domain.Prompt
	for _, p := range r.prompts {
		if p.OwnerCode == ownerCode {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubConvoRepo struct {
	convos map[string]*domain.Conversation
}

func newStubConvoRepo() *stubConvoRepo {
	return &stubConvoRepo{convos: make(map[string]*domain.Conversation)}
}

func (r *stubConvoRepo) Insert(_ context.Context, c *domain.Conversation) error {
	clone := *c
	r.convos[c.ID] = &clone
	return nil
}

func (r *stubConvoRepo) FindByID(_ context.Context, id, ownerCode string) (*domain.Conversation, error) {
	c, ok := r.convos[id]
	if !ok || c.OwnerCode != ownerCode {
		return nil, domain.ErrConversationNotFound
	}
	clone := *c
	clone.Messages = append([]domain.Message(nil), c.Messages...)
	return &clone, nil
}

func (r *stubConvoRepo) ReplaceMessages(_ context.Context, id string, messages []domain.Message) error {
	c, ok := r.convos[id]
	if !ok {
		return domain.ErrConversationNotFound
	}
	c.Messages = append([]domain.Message(nil), messages...)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubConvoRepo) ListByOwner(_ context.Context, ownerCode string) ([]*domain.Conversation, error) {
	var out []*domain.Conversation
	for _, c := range r.convos {
		if c.OwnerCode == ownerCode {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubSeq struct {
	counters map[string]int64
}

func newStubSeq() *stubSeq {
	return &stubSeq{counters: make(map[string]int64)}
}

func (s *stubSeq) Next(_ context.Context, name string) (int64, error) {
	s.counters[name]++
	return s.counters[name], nil
}

type stubProvider struct {
	reply string
	err   error
	// calls captures the message lists Complete was invoked with.
	calls [][]domain.Message
}

func (p *stubProvider) Complete(_ context.Context, messages []domain.Message) (string, error) {
	p.calls = append(p.calls, append([]domain.Message(nil), messages...))
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type stubExtractor struct {
	err error
}

func (e *stubExtractor) Extract(filename string, data []byte) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "text of " + filename, nil
}

type stubTelemetry struct {
	mu     sync.Mutex
	events []ports.TelemetryEvent
}

func (t *stubTelemetry) Enqueue(ev ports.TelemetryEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, ev)
}

func (t *stubTelemetry) byAction(action domain.Action) []ports.TelemetryEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []ports.TelemetryEvent
	for _, ev := range t.events {
		if ev.Action == action {
			out = append(out, ev)
		}
	}
	return out
}
