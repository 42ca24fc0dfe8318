package domain

import (
	"strings"
	"time"
)

// Role is the resolved access level of an authenticated actor.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// CodeLength is the fixed length of an access code.
const CodeLength = 5

// Consent is the tri-state research data-use decision attached to a credential.
// Data is always collected; consent only governs how it may be used.
type Consent string

const (
	ConsentUnset   Consent = "unset"
	ConsentGranted Consent = "granted"
	ConsentDenied  Consent = "denied"
)

// Credential is the persisted identity behind an access code.
type Credential struct {
	Code       string    `json:"code" bson:"code"`
	Consent    Consent   `json:"consent" bson:"consent"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at" bson:"last_seen_at"`
}

// NormalizeCode upper-cases and trims an access code. Every boundary that
// receives a code must normalize before lookup so that codes compare exactly.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code is a well-formed access code:
// exactly CodeLength ASCII letters or digits.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
