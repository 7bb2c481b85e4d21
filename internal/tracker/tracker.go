package tracker

import (
	"context"
	"errors"
)

// Sentinel errors for tracker failures. Callers branch on these rather
// than on transport details.
var (
	ErrUnavailable     = errors.New("tracker unavailable")
	ErrInvalidResponse = errors.New("tracker response invalid")
	ErrIssueNotFound   = errors.New("tracker issue not found")
)

// Issue is the tracker-side mirror of a ticket.
type Issue struct {
	URL    string
	Number int
	State  string
	Title  string
	Body   string
}

// IssueTracker is the narrow surface of the external tracker the ticket
// lifecycle depends on. Each call is a single network attempt with a
// bounded timeout; there is no retry or caching here.
type IssueTracker interface {
	CreateIssue(ctx context.Context, title, body string) (*Issue, error)
	CloseIssue(ctx context.Context, number int) error
	GetIssue(ctx context.Context, number int) (*Issue, error)
}
