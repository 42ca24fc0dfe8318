package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

type stubStatsRepo struct {
	users, prompts, convos, messages int64
	consent                          ports.ConsentBreakdown
	err                              error
}

func (r *stubStatsRepo) CollectionCounts(context.Context) (int64, int64, int64, error) {
	return r.users, r.prompts, r.convos, r.err
}

func (r *stubStatsRepo) TotalMessages(context.Context) (int64, error) {
	return r.messages, r.err
}

func (r *stubStatsRepo) ConsentBreakdown(context.Context) (*ports.ConsentBreakdown, error) {
	if r.err != nil {
		return nil, r.err
	}
	clone := r.consent
	return &clone, nil
}

func TestStatsService_SystemStats(t *testing.T) {
	repo := &stubStatsRepo{
		users: 12, prompts: 7, convos: 30, messages: 250,
		consent: ports.ConsentBreakdown{Granted: 9, Denied: 2, Unset: 1},
	}
	audit := &stubAuditLog{}
	for i := 0; i < 3; i++ {
		_ = audit.Record(context.Background(), "ABCDE", domain.ActionPageVisit, nil)
	}

	svc := NewStatsService(repo, audit, zerolog.Nop())
	stats, err := svc.SystemStats(context.Background())
	if err != nil {
		t.Fatalf("system stats: %v", err)
	}

	if stats.TotalUsers != 12 || stats.TotalPrompts != 7 || stats.TotalConversations != 30 || stats.TotalMessages != 250 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.Consent.Granted != 9 || stats.Consent.Denied != 2 || stats.Consent.Unset != 1 {
		t.Fatalf("unexpected consent breakdown: %+v", stats.Consent)
	}
	if len(stats.RecentEvents) != 3 {
		t.Fatalf("expected 3 recent events, got %d", len(stats.RecentEvents))
	}
}

func TestStatsService_RecentEventsKeepNewest(t *testing.T) {
	audit := &stubAuditLog{}
	for i := 0; i < 60; i++ {
		_ = audit.Record(context.Background(), "ABCDE", domain.ActionPageVisit, map[string]any{"n": i})
	}

	svc := NewStatsService(&stubStatsRepo{}, audit, zerolog.Nop())
	stats, err := svc.SystemStats(context.Background())
	if err != nil {
		t.Fatalf("system stats: %v", err)
	}

	if len(stats.RecentEvents) != 50 {
		t.Fatalf("expected 50 recent events, got %d", len(stats.RecentEvents))
	}
	// A full log keeps the newest events and drops the oldest, newest first.
	if got := stats.RecentEvents[0].Payload["n"]; got != 59 {
		t.Fatalf("expected the newest event first, got n=%v", got)
	}
	if got := stats.RecentEvents[49].Payload["n"]; got != 10 {
		t.Fatalf("expected the oldest kept event last, got n=%v", got)
	}
}

func TestStatsService_RepositoryFailure(t *testing.T) {
	repo := &stubStatsRepo{err: errors.New("aggregation failed")}
	svc := NewStatsService(repo, &stubAuditLog{}, zerolog.Nop())

	if _, err := svc.SystemStats(context.Background()); err == nil {
		t.Fatalf("expected error when the repository fails")
	}
}
