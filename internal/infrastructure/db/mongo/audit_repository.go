package mongo

import (
	"context"
	"crypto/rand"
	"fmt"
	"iter"
	"time"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/metrics"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// AuditRepository implements ports.AuditLog on the logs collection.
//
// Events are append-only: this type exposes no update or delete path, and the
// collection is only ever written through InsertOne here. Event ids are ULIDs
// so they sort roughly by wall-clock time; the authoritative ordering remains
// the occurred_at field.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

type auditDoc struct {
	ID         string         `bson:"_id"`
	ActorCode  string         `bson:"actor_code"`
	Action     string         `bson:"action"`
	Payload    map[string]any `bson:"payload,omitempty"`
	OccurredAt time.Time      `bson:"occurred_at"`
}

func (d auditDoc) toDomain() *domain.AuditEvent {
	return &domain.AuditEvent{
		ID:         d.ID,
		ActorCode:  d.ActorCode,
		Action:     domain.Action(d.Action),
		Payload:    d.Payload,
		OccurredAt: d.OccurredAt.UTC(),
	}
}

// Record durably appends one event. Any storage failure is reported as
// domain.ErrAuditWrite so callers can apply the privileged-vs-telemetry
// failure policy without inspecting storage internals.
func (r *AuditRepository) Record(ctx context.Context, actorCode string, action domain.Action, payload map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := auditDoc{
		ID:         ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		ActorCode:  actorCode,
		Action:     string(action),
		Payload:    payload,
		OccurredAt: now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: %s for %s: %v", domain.ErrAuditWrite, action, actorCode, err)
	}

	metrics.AuditEventsTotal.WithLabelValues(string(action)).Inc()
	return nil
}

// Query streams matching events ordered by occurred_at ascending. The
// returned sequence is lazy: documents are decoded one at a time as the
// consumer iterates, and the cursor is closed when iteration stops.
func (r *AuditRepository) Query(ctx context.Context, filter domain.AuditFilter) iter.Seq2[*domain.AuditEvent, error] {
	return func(yield func(*domain.AuditEvent, error) bool) {
		q := bson.M{}
		if filter.ActorCode != "" {
			q["actor_code"] = filter.ActorCode
		}
		if filter.Action != "" {
			q["action"] = string(filter.Action)
		}
		timeRange := bson.M{}
		if !filter.From.IsZero() {
			timeRange["$gte"] = filter.From.UTC()
		}
		if !filter.To.IsZero() {
			timeRange["$lte"] = filter.To.UTC()
		}
		if len(timeRange) > 0 {
			q["occurred_at"] = timeRange
		}

		opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
		if filter.Limit > 0 {
			opts.SetLimit(filter.Limit)
		}

		cur, err := r.col.Find(ctx, q, opts)
		if err != nil {
			yield(nil, fmt.Errorf("audit query: %w", err))
			return
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var doc auditDoc
			if err := cur.Decode(&doc); err != nil {
				yield(nil, fmt.Errorf("decode audit event: %w", err))
				return
			}
			if !yield(doc.toDomain(), nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, fmt.Errorf("audit cursor: %w", err))
		}
	}
}
