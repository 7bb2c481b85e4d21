package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
)

// ReplyRepository encapsulates reply persistence.
type ReplyRepository interface {
	Create(ctx context.Context, reply *domain.Reply) error
	// ListByTicket returns replies in insertion order with the author's
	// name resolved.
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Reply, error)
}

type replyRepository struct {
	pool *pgxpool.Pool
}

// NewReplyRepository instantiates repository.
func NewReplyRepository(pool *pgxpool.Pool) ReplyRepository {
	return &replyRepository{pool: pool}
}

func (r *replyRepository) Create(ctx context.Context, reply *domain.Reply) error {
	const query = `
        INSERT INTO replies (ticket_id, author_id, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		reply.TicketID,
		reply.AuthorID,
		reply.Message,
	).Scan(&reply.ID, &reply.CreatedAt)
}

func (r *replyRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Reply, error) {
	const query = `
        SELECT r.id, r.ticket_id, r.author_id, u.name, r.message, r.created_at
        FROM replies r
        JOIN users u ON u.id = r.author_id
        WHERE r.ticket_id=$1
        ORDER BY r.created_at ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Reply
	for rows.Next() {
		var reply domain.Reply
		if err := rows.Scan(
			&reply.ID,
			&reply.TicketID,
			&reply.AuthorID,
			&reply.AuthorName,
			&reply.Message,
			&reply.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reply)
	}
	return result, rows.Err()
}
