package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

const recentEventLimit = 50

// StatsService assembles the aggregate usage snapshot for the admin surface.
// It is read-only: no stat query is audited.
type StatsService struct {
	stats ports.StatsRepository
	audit ports.AuditLog
	log   zerolog.Logger
}

func NewStatsService(stats ports.StatsRepository, audit ports.AuditLog, log zerolog.Logger) *StatsService {
	return &StatsService{stats: stats, audit: audit, log: log}
}

func (s *StatsService) SystemStats(ctx context.Context) (*ports.SystemStats, error) {
	users, prompts, convos, err := s.stats.CollectionCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("collection counts: %w", err)
	}

	messages, err := s.stats.TotalMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("message count: %w", err)
	}

	consent, err := s.stats.ConsentBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("consent breakdown: %w", err)
	}

	recent, err := s.recentEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}

	return &ports.SystemStats{
		TotalUsers:         users,
		TotalPrompts:       prompts,
		TotalConversations: convos,
		TotalMessages:      messages,
		Consent:            *consent,
		RecentEvents:       recent,
	}, nil
}

// recentEvents drains the lazy audit query for the last 7 days and keeps the
// newest recentEventLimit events. The query streams occurred_at ascending, so
// a ring buffer holds the tail; the result is returned newest first.
func (s *StatsService) recentEvents(ctx context.Context) ([]*domain.AuditEvent, error) {
	filter := domain.AuditFilter{
		From: time.Now().UTC().AddDate(0, 0, -7),
	}

	ring := make([]*domain.AuditEvent, recentEventLimit)
	total := 0
	for ev, err := range s.audit.Query(ctx, filter) {
		if err != nil {
			return nil, err
		}
		ring[total%recentEventLimit] = ev
		total++
	}

	n := min(total, recentEventLimit)
	events := make([]*domain.AuditEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, ring[(total-1-i)%recentEventLimit])
	}
	return events, nil
}
