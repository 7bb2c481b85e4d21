package domain

import "time"

// Reply is a message appended to a ticket thread. Replies never change
// ticket status.
type Reply struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string
	Message    string
	CreatedAt  time.Time
}
