package domain

import "errors"

var (
	// ErrInvalidCode is returned when an access code fails format validation
	// or no active credential matches it.
	ErrInvalidCode = errors.New("invalid access code")

	// ErrCredentialNotFound is returned by exact-match credential lookups.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrCredentialExists is returned when creating a credential whose code
	// is already taken.
	ErrCredentialExists = errors.New("credential already exists")

	// ErrConsentRequired signals that the code is valid but no session can be
	// issued until the consent flow completes.
	ErrConsentRequired = errors.New("consent decision required")

	// ErrAlreadyGranted is returned by Grant when an active grant exists for
	// the code. Concurrent grants for the same code surface this to the loser
	// via the storage uniqueness constraint.
	ErrAlreadyGranted = errors.New("admin grant already active")

	// ErrNotActive is returned by Revoke when no active grant exists.
	ErrNotActive = errors.New("no active admin grant")

	// ErrCannotRevokeSuperAdmin guards the standard removal path: a
	// super_admin grant is never revocable through it.
	ErrCannotRevokeSuperAdmin = errors.New("cannot revoke a super admin grant")

	// ErrForbidden is returned when the session role does not permit an action.
	ErrForbidden = errors.New("access forbidden")

	// ErrAuditWrite is returned when the audit log cannot durably record an
	// event. Privileged operations must fail on it; telemetry swallows it.
	ErrAuditWrite = errors.New("audit write failed")

	// ErrProvider wraps every chat-completion failure. The cause is opaque to
	// this core and never inspected.
	ErrProvider = errors.New("chat provider error")

	// ErrExtraction is returned when document text extraction fails.
	ErrExtraction = errors.New("document extraction failed")

	// ErrPromptNotFound is returned by prompt lookups.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrConversationNotFound is returned by conversation lookups.
	ErrConversationNotFound = errors.New("conversation not found")
)
