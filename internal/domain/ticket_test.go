package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{"open to in progress", TicketStatusOpen, TicketStatusInProgress, true},
		{"in progress to resolved", TicketStatusInProgress, TicketStatusResolved, true},
		{"open straight to resolved", TicketStatusOpen, TicketStatusResolved, true},
		{"resolved is terminal", TicketStatusResolved, TicketStatusOpen, false},
		{"resolved to in progress", TicketStatusResolved, TicketStatusInProgress, false},
		{"no self transition", TicketStatusOpen, TicketStatusOpen, false},
		{"backward move rejected", TicketStatusInProgress, TicketStatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(TicketStatusOpen))
	assert.True(t, ValidStatus(TicketStatusInProgress))
	assert.True(t, ValidStatus(TicketStatusResolved))
	assert.False(t, ValidStatus("Closed"))
	assert.False(t, ValidStatus(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleCustomer))
	assert.True(t, ValidRole(RoleAgent))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
}
