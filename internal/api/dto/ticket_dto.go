package dto

import (
	"time"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// PostReplyRequest payload.
type PostReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignRequest payload.
type AssignRequest struct {
	AgentID string `json:"agentId" validate:"required"`
}

// ReplyResponse is the public view of a reply.
type ReplyResponse struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticket_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// TicketResponse is the public view of a ticket.
type TicketResponse struct {
	ID                  string              `json:"id"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Category            string              `json:"category"`
	Status              domain.TicketStatus `json:"status"`
	CreatorID           string              `json:"creator_id"`
	AssignedToID        *string             `json:"assigned_to_id"`
	ExternalIssueURL    string              `json:"external_issue_url"`
	ExternalIssueNumber int                 `json:"external_issue_number"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	Replies             []ReplyResponse     `json:"replies,omitempty"`
}

// DashboardResponse aggregates admin dashboard counts.
type DashboardResponse struct {
	Open       int64            `json:"open"`
	InProgress int64            `json:"in_progress"`
	Resolved   int64            `json:"resolved"`
	Categories map[string]int64 `json:"categories"`
}

// NewTicketResponse maps a domain ticket with its replies.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	replies := make([]ReplyResponse, 0, len(ticket.Replies))
	for _, reply := range ticket.Replies {
		replies = append(replies, ReplyResponse{
			ID:         reply.ID,
			TicketID:   reply.TicketID,
			AuthorID:   reply.AuthorID,
			AuthorName: reply.AuthorName,
			Message:    reply.Message,
			CreatedAt:  reply.CreatedAt,
		})
	}
	return TicketResponse{
		ID:                  ticket.ID,
		Title:               ticket.Title,
		Description:         ticket.Description,
		Category:            ticket.Category,
		Status:              ticket.Status,
		CreatorID:           ticket.CreatorID,
		AssignedToID:        ticket.AssignedToID,
		ExternalIssueURL:    ticket.ExternalIssueURL,
		ExternalIssueNumber: ticket.ExternalIssueNumber,
		CreatedAt:           ticket.CreatedAt,
		UpdatedAt:           ticket.UpdatedAt,
		Replies:             replies,
	}
}

// NewTicketResponses maps a slice of tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, NewTicketResponse(&tickets[i]))
	}
	return result
}
