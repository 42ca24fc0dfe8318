package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/metrics"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher records telemetry audit events in the background. Events are
// routed to a fixed set of workers by consistent hashing on the actor code,
// so one actor's events are written in the order they were enqueued.
//
// Telemetry is the low-value tier of the audit log: a failed write is logged
// locally and swallowed, never surfaced to the actor whose action triggered
// it. Privileged actions must not go through here — they record directly and
// synchronously against the audit log.
type Dispatcher struct {
	workers []chan ports.TelemetryEvent
	audit   ports.AuditLog
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audit ports.AuditLog, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TelemetryEvent, numWorkers),
		audit:   audit,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TelemetryEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its actor. When the
// worker's buffer is full the event is dropped rather than blocking the
// request path; telemetry loss is acceptable, request latency is not.
func (d *Dispatcher) Enqueue(ev ports.TelemetryEvent) {
	i := d.shardIndex(ev.ActorCode)
	select {
	case d.workers[i] <- ev:
		metrics.TelemetryQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		d.log.Warn().
			Str("actor_code", ev.ActorCode).
			Str("action", string(ev.Action)).
			Msg("telemetry queue full, event dropped")
	}
}

// shardIndex maps an actor code deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorCode string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorCode))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TelemetryEvent) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			metrics.TelemetryQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.audit.Record(ctx, ev.ActorCode, ev.Action, ev.Payload); err != nil {
				metrics.AuditWriteErrorsTotal.WithLabelValues("telemetry").Inc()
				d.log.Warn().Err(err).
					Str("actor_code", ev.ActorCode).
					Str("action", string(ev.Action)).
					Int("worker_id", id).
					Msg("telemetry event write failed, dropped")
			}
		}
	}
}
