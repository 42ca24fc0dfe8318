package domain

import "time"

// AdminLevel is the privilege tier carried by an admin grant.
type AdminLevel string

const (
	LevelNone       AdminLevel = "none"
	LevelAdmin      AdminLevel = "admin"
	LevelSuperAdmin AdminLevel = "super_admin"
)

// ValidGrantLevel reports whether level can be assigned by Grant.
func ValidGrantLevel(level AdminLevel) bool {
	return level == LevelAdmin || level == LevelSuperAdmin
}

// AdminGrant is a credential's admin-role record. Lifecycle per code:
//
//	NonAdmin -> Active(level) -> Revoked
//
// Revocation never deletes the row; it flips Active and stamps the revocation
// metadata so the history stays queryable.
type AdminGrant struct {
	Code      string     `json:"code" bson:"code"`
	Level     AdminLevel `json:"level" bson:"level"`
	GrantedBy string     `json:"granted_by" bson:"granted_by"`
	GrantedAt time.Time  `json:"granted_at" bson:"granted_at"`
	Active    bool       `json:"active" bson:"active"`
	RevokedBy string     `json:"revoked_by,omitempty" bson:"revoked_by,omitempty"`
	RevokedAt *time.Time `json:"revoked_at,omitempty" bson:"revoked_at,omitempty"`
}

// RoleForLevel maps an admin level to the session role it confers.
func RoleForLevel(level AdminLevel) Role {
	switch level {
	case LevelAdmin:
		return RoleAdmin
	case LevelSuperAdmin:
		return RoleSuperAdmin
	default:
		return RoleUser
	}
}
