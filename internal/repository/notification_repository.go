package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

// NotificationRepository encapsulates notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	UpdateStatus(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]domain.Notification, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (recipient_email, recipient_phone, channel, message, status, session_id, ticket_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		notification.RecipientEmail,
		notification.RecipientPhone,
		notification.Channel,
		notification.Message,
		notification.Status,
		notification.SessionID,
		notification.TicketID,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) UpdateStatus(ctx context.Context, notification *domain.Notification) error {
	const query = `
        UPDATE notifications SET status=$1, error_message=$2, sent_at=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		notification.Status,
		notification.ErrorMessage,
		notification.SentAt,
		notification.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	const query = `
        SELECT id, recipient_email, recipient_phone, channel, message, status, error_message, session_id, ticket_id, created_at, sent_at
        FROM notifications WHERE id=$1`
	var n domain.Notification
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.RecipientEmail,
		&n.RecipientPhone,
		&n.Channel,
		&n.Message,
		&n.Status,
		&n.ErrorMessage,
		&n.SessionID,
		&n.TicketID,
		&n.CreatedAt,
		&n.SentAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, recipient_email, recipient_phone, channel, message, status, error_message, session_id, ticket_id, created_at, sent_at
        FROM notifications WHERE session_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.RecipientEmail,
			&n.RecipientPhone,
			&n.Channel,
			&n.Message,
			&n.Status,
			&n.ErrorMessage,
			&n.SessionID,
			&n.TicketID,
			&n.CreatedAt,
			&n.SentAt,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}
