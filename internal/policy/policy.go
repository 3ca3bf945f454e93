// Package policy centralizes every authorization decision in the system.
// Decisions are pure functions over the authenticated principal and the
// targeted record's ownership, so every handler applies the same rules
// instead of re-deriving role checks ad hoc.
package policy

import "github.com/applytrack/backend/internal/models"

// Principal is the authenticated identity making a request
type Principal struct {
	ID   string
	Role models.Role
}

// IsAdmin reports whether the principal has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanManageJobs reports whether the principal may create, update or delete job postings.
// Reading the catalog is open to any authenticated principal; mutation is admin-only.
func CanManageJobs(p Principal) bool {
	return p.IsAdmin()
}

// ApplicationScope returns the owner id that application listings must be
// restricted to. The empty string means no restriction (admin sees all rows).
func ApplicationScope(p Principal) string {
	if p.IsAdmin() {
		return ""
	}
	return p.ID
}

// CanViewApplication reports whether the principal may read the application
// owned by ownerID
func CanViewApplication(p Principal, ownerID string) bool {
	return p.IsAdmin() || p.ID == ownerID
}

// CanModifyApplication reports whether the principal may update or delete the
// application owned by ownerID
func CanModifyApplication(p Principal, ownerID string) bool {
	return p.IsAdmin() || p.ID == ownerID
}

// CanListUsers reports whether the principal may list all users
func CanListUsers(p Principal) bool {
	return p.IsAdmin()
}

// CanViewUser reports whether the principal may read the user record targetID
func CanViewUser(p Principal, targetID string) bool {
	return p.IsAdmin() || p.ID == targetID
}

// CanModifyUser reports whether the principal may update or delete the user
// record targetID
func CanModifyUser(p Principal, targetID string) bool {
	return p.IsAdmin() || p.ID == targetID
}

// CanChangeRole reports whether the principal may change a user's role
func CanChangeRole(p Principal) bool {
	return p.IsAdmin()
}
