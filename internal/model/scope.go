package model

import "time"

const (
	RoleAdmin     = "ADMIN"
	RolePrincipal = "PRINCIPAL"
	RoleTeacher   = "TEACHER"
	RoleSystem    = "SYSTEM"
)

// Scope is the audit context threaded through every repository call:
// who acted, in what role, and under which correlation id.
type Scope struct {
	ActorID       string    `json:"actor_id"`
	Role          string    `json:"role"`
	CorrelationID string    `json:"correlation_id"`
	At            time.Time `json:"at"`
}

// IsAdmin checks if the scope has admin role.
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// IsSystem checks if the scope belongs to an internal actor (worker, reaper).
func (s Scope) IsSystem() bool {
	return s.Role == RoleSystem
}
