package ports

import (
	"context"
	"iter"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// AuditLog is the append-only record of state-changing and access events.
type AuditLog interface {
	// Record durably appends one event. It must complete (or fail loudly)
	// before the triggering operation reports success to its caller. On
	// failure it returns an error wrapping domain.ErrAuditWrite; privileged
	// callers must then fail the whole operation, telemetry callers may log
	// and swallow.
	Record(ctx context.Context, actorCode string, action domain.Action, payload map[string]any) error

	// Query streams events matching filter ordered by occurred_at ascending.
	// The sequence is lazy: events are decoded as the consumer iterates. No
	// dedup guarantee is made — duplicate writes under caller retry are
	// acceptable.
	Query(ctx context.Context, filter domain.AuditFilter) iter.Seq2[*domain.AuditEvent, error]
}
