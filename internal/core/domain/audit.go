package domain

import "time"

// Action identifies what an audit event records. The set is open-ended;
// these constants cover every action the core emits itself.
type Action string

const (
	ActionLogin                Action = "login"
	ActionLogout               Action = "logout"
	ActionUserCreated          Action = "user_created"
	ActionConsentUpdated       Action = "consent_updated"
	ActionAdminGrant           Action = "admin_grant"
	ActionAdminRevoke          Action = "admin_revoke"
	ActionPageVisit            Action = "page_visit"
	ActionChatMessage          Action = "chat_message"
	ActionPromptCreate         Action = "prompt_create"
	ActionPromptSelection      Action = "prompt_selection"
	ActionConversationStart    Action = "conversation_start"
	ActionConversationContinue Action = "conversation_continue"
	ActionError                Action = "error"
)

// AuditEvent is an immutable, append-only record of a state-changing or
// access event. Once written it is never mutated or deleted; the referenced
// credential may be removed later while its events persist.
//
// ID is a ULID, so lexical order approximates wall-clock order. The ordering
// guarantee of the log itself is OccurredAt ascending only — there is no
// causal ordering across actors and duplicate events under caller retry are
// acceptable.
type AuditEvent struct {
	ID         string         `json:"id" bson:"_id"`
	ActorCode  string         `json:"actor_code" bson:"actor_code"`
	Action     Action         `json:"action" bson:"action"`
	Payload    map[string]any `json:"payload,omitempty" bson:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at" bson:"occurred_at"`
}

// AuditFilter narrows an audit query. Zero values mean "no constraint".
type AuditFilter struct {
	ActorCode string
	Action    Action
	From      time.Time
	To        time.Time
	Limit     int64
}
