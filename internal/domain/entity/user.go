package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin          = "admin"
	RoleProjectManager = "project_manager"
	RoleSupervisor     = "supervisor"
)

// User represents a system user.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plain after persisting
	Name         string
	Role         string // admin, project_manager, supervisor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
