package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/events"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/repository"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/tracker"
	apperrors "github.com/ARYAN-01-GARG/support-ticketing-system/pkg/util"
)

// TicketService orchestrates the ticket lifecycle: status transitions,
// role-gated legality, and synchronization with the external tracker.
//
// Sync ordering is uniform across all resolving operations: the tracker
// issue is closed BEFORE the local status write. If the tracker call
// fails the whole operation aborts and local state is untouched, so local
// status never runs ahead of the tracker.
type TicketService struct {
	tickets    repository.TicketRepository
	replies    repository.ReplyRepository
	users      repository.UserRepository
	tracker    tracker.IssueTracker
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	ReplyRepo  repository.ReplyRepository
	UserRepo   repository.UserRepository
	Tracker    tracker.IssueTracker
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    string
}

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	Open       int64
	InProgress int64
	Resolved   int64
	Categories map[string]int64
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		replies:    deps.ReplyRepo,
		users:      deps.UserRepo,
		tracker:    deps.Tracker,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create files a new ticket. The tracker issue is created first; only
// when the tracker has answered with a URL and number is the local record
// written. A tracker failure therefore never leaves a local ticket
// without its external mirror.
func (s *TicketService) Create(ctx context.Context, creatorID string, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	category := strings.TrimSpace(input.Category)
	if title == "" || description == "" || category == "" {
		return nil, apperrors.NewValidationError("title, description and category are required", nil)
	}

	issue, err := s.tracker.CreateIssue(ctx, title, description)
	if err != nil {
		s.logger.Error("ticket creation aborted: tracker issue not created", zap.Error(err))
		return nil, apperrors.NewTrackerError("ticket creation failed", err)
	}

	ticket := &domain.Ticket{
		Title:               title,
		Description:         description,
		Category:            category,
		Status:              domain.TicketStatusOpen,
		CreatorID:           creatorID,
		ExternalIssueURL:    issue.URL,
		ExternalIssueNumber: issue.Number,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		// The tracker issue already exists; an operator has to reconcile
		// it by hand.
		s.logger.Error("local ticket write failed after tracker issue creation",
			zap.Int("issue_number", issue.Number), zap.String("issue_url", issue.URL), zap.Error(err))
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID), zap.Int("issue_number", issue.Number))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  creatorID,
		Payload: events.TicketCreatedPayload{
			Title:               ticket.Title,
			Category:            ticket.Category,
			ExternalIssueNumber: ticket.ExternalIssueNumber,
		},
	})
	return ticket, nil
}

// Get returns the ticket with its replies, authors resolved.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.attachReplies(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// List returns tickets ordered by creation time descending, replies
// attached.
func (s *TicketService) List(ctx context.Context, limit, offset int) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range tickets {
		if err := s.attachReplies(ctx, &tickets[i]); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// UpdateStatus moves a ticket to a new lifecycle state. Resolving a
// ticket closes the external issue before the local write; a tracker
// failure aborts the transition entirely.
func (s *TicketService) UpdateStatus(ctx context.Context, actorID, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(newStatus)})
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewInvalidTransition(string(ticket.Status), string(newStatus))
	}

	if newStatus == domain.TicketStatusResolved && ticket.ExternalIssueNumber != 0 {
		if err := s.tracker.CloseIssue(ctx, ticket.ExternalIssueNumber); err != nil {
			s.logger.Error("status update aborted: tracker close failed",
				zap.String("ticket_id", ticket.ID),
				zap.Int("issue_number", ticket.ExternalIssueNumber),
				zap.Error(err))
			return nil, apperrors.NewTrackerError("tracker sync failed", err)
		}
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if err := s.persistTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("ticket status changed",
		zap.String("ticket_id", ticket.ID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// Close resolves the ticket. Same path as UpdateStatus so the tracker
// ordering policy cannot drift between the two entry points.
func (s *TicketService) Close(ctx context.Context, actorID, ticketID string) (*domain.Ticket, error) {
	return s.UpdateStatus(ctx, actorID, ticketID, domain.TicketStatusResolved)
}

// Assign sets the ticket's assignee to the given agent. The target must
// exist and hold the agent role; a customer or admin id is rejected the
// same way as an unknown id. Status is untouched and the tracker is not
// involved.
func (s *TicketService) Assign(ctx context.Context, ticketID, agentID string) (*domain.Ticket, error) {
	if strings.TrimSpace(agentID) == "" {
		return nil, apperrors.NewValidationError("agent id is required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	agent, err := s.users.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": agentID})
		}
		return nil, apperrors.MapError(err)
	}
	if agent.Role != domain.RoleAgent {
		return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": agentID})
	}

	ticket.AssignedToID = &agent.ID
	if err := s.persistTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("ticket assigned",
		zap.String("ticket_id", ticket.ID), zap.String("agent_id", agent.ID))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  agent.ID,
		Payload:  events.TicketAssignedPayload{AgentID: agent.ID},
	})
	return ticket, nil
}

// ListForAgent returns tickets assigned to the agent. No assignments is
// an empty list, not an error.
func (s *TicketService) ListForAgent(ctx context.Context, agentID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByAssignee(ctx, agentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// ListAgents returns the roster of agent users for the admin view.
func (s *TicketService) ListAgents(ctx context.Context) ([]domain.User, error) {
	agents, err := s.users.ListByRole(ctx, domain.RoleAgent)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if agents == nil {
		agents = []domain.User{}
	}
	return agents, nil
}

// PostReply appends a message to the ticket thread and returns the ticket
// with its replies. Replies never change ticket status.
func (s *TicketService) PostReply(ctx context.Context, ticketID, authorID, message string) (*domain.Ticket, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("message is required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	reply := &domain.Reply{
		TicketID: ticket.ID,
		AuthorID: authorID,
		Message:  strings.TrimSpace(message),
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.attachReplies(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReplied,
		TicketID: ticket.ID,
		ActorID:  authorID,
		Payload: events.TicketRepliedPayload{
			ReplyID:     reply.ID,
			BodyPreview: stringPreview(reply.Message, 120),
		},
	})
	return ticket, nil
}

// Dashboard aggregates status and category counts.
func (s *TicketService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	byStatus, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byCategory, err := s.tickets.CountByCategory(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if byCategory == nil {
		byCategory = map[string]int64{}
	}
	return &DashboardStats{
		Open:       byStatus[domain.TicketStatusOpen],
		InProgress: byStatus[domain.TicketStatusInProgress],
		Resolved:   byStatus[domain.TicketStatusResolved],
		Categories: byCategory,
	}, nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) persistTicket(ctx context.Context, ticket *domain.Ticket) error {
	if err := s.tickets.UpdateVersioned(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return apperrors.NewConflict("conflicting update, please retry",
				map[string]any{"ticket_id": ticket.ID})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticket.ID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) attachReplies(ctx context.Context, ticket *domain.Ticket) error {
	replies, err := s.replies.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return err
	}
	if replies == nil {
		replies = []domain.Reply{}
	}
	ticket.Replies = replies
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// back up so the cut never splits a multi-byte rune
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
