package domain

import "time"

// Role enumerates the flat, mutually exclusive caller roles. Role checks
// are equality checks: admin does not implicitly satisfy an agent gate.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for anyone who can log in: customers who file
// tickets, agents who work them, and admins who triage. Role is fixed at
// registration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
