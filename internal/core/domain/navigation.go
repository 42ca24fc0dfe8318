package domain

import "fmt"

// PageID identifies a navigable page of the application.
type PageID string

const (
	PageHome            PageID = "home"
	PageLogout          PageID = "logout"
	PageChat            PageID = "chat"
	PagePrompts         PageID = "prompts"
	PageAdmin           PageID = "admin"
	PageAdminManagement PageID = "admin_management"
)

var userPages = []PageID{PageHome, PageLogout, PageChat, PagePrompts}

// ResolvePages computes the page set visible to a role. Pure function: no
// side effects, no I/O, same input always yields the same output. It is
// recomputed on every navigation render from the session's cached role.
//
// An unrecognized role is a programming-invariant violation — sessions only
// ever carry one of the three enumerated roles — so it panics rather than
// returning an error a caller could be tempted to swallow.
func ResolvePages(role Role) []PageID {
	switch role {
	case RoleUser:
		return append([]PageID(nil), userPages...)
	case RoleAdmin:
		return append(append([]PageID(nil), userPages...), PageAdmin)
	case RoleSuperAdmin:
		return append(append([]PageID(nil), userPages...), PageAdmin, PageAdminManagement)
	default:
		panic(fmt.Sprintf("navigation: unknown role %q", role))
	}
}

// PageAllowed reports whether role may visit page.
func PageAllowed(role Role, page PageID) bool {
	for _, p := range ResolvePages(role) {
		if p == page {
			return true
		}
	}
	return false
}
