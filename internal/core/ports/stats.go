package ports

import (
	"context"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// ConsentBreakdown counts credentials per consent decision.
type ConsentBreakdown struct {
	Granted int64 `json:"granted"`
	Denied  int64 `json:"denied"`
	Unset   int64 `json:"unset"`
}

// SystemStats is the aggregate usage snapshot shown on the admin surface.
type SystemStats struct {
	TotalUsers         int64                `json:"total_users"`
	TotalPrompts       int64                `json:"total_prompts"`
	TotalConversations int64                `json:"total_conversations"`
	TotalMessages      int64                `json:"total_messages"`
	Consent            ConsentBreakdown     `json:"consent"`
	RecentEvents       []*domain.AuditEvent `json:"recent_events"`
}

// StatsRepository computes storage-side aggregates.
type StatsRepository interface {
	CollectionCounts(ctx context.Context) (users, prompts, conversations int64, err error)
	TotalMessages(ctx context.Context) (int64, error)
	ConsentBreakdown(ctx context.Context) (*ConsentBreakdown, error)
}

// StatsService assembles the admin analytics snapshot.
type StatsService interface {
	SystemStats(ctx context.Context) (*SystemStats, error)
}
