package ports

import "github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"

// TelemetryEvent is a low-value observational event (page visits, chat
// message logs, prompt usage). Unlike privileged audit writes, telemetry is
// recorded asynchronously and a failed write is logged locally and swallowed.
type TelemetryEvent struct {
	ActorCode string
	Action    domain.Action
	Payload   map[string]any
}

// TelemetryRecorder accepts telemetry events for background recording.
type TelemetryRecorder interface {
	Enqueue(ev TelemetryEvent)
}
