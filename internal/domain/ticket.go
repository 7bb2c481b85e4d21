package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "InProgress"
	TicketStatusResolved   TicketStatus = "Resolved"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// CanTransition reports whether moving from one status to another is a
// legal forward step. The lifecycle is Open -> InProgress -> Resolved;
// skipping forward is allowed, moving backward is not, and Resolved is
// terminal.
func CanTransition(from, to TicketStatus) bool {
	switch from {
	case TicketStatusOpen:
		return to == TicketStatusInProgress || to == TicketStatusResolved
	case TicketStatusInProgress:
		return to == TicketStatusResolved
	}
	return false
}

// Ticket is the aggregate for support requests. Every ticket mirrors an
// issue in the external tracker; ExternalIssueURL and ExternalIssueNumber
// are set from the tracker response at creation and never change. Version
// guards concurrent writes: an update only applies when it carries the
// version it read.
type Ticket struct {
	ID                  string
	Title               string
	Description         string
	Category            string
	Status              TicketStatus
	CreatorID           string
	AssignedToID        *string
	ExternalIssueURL    string
	ExternalIssueNumber int
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Replies             []Reply
}
