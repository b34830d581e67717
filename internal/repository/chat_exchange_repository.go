package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

// ChatExchangeRepository records processed chat exchanges.
type ChatExchangeRepository interface {
	Create(ctx context.Context, exchange *domain.ChatExchange) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.ChatExchange, error)
}

type chatExchangeRepository struct {
	pool *pgxpool.Pool
}

// NewChatExchangeRepository instantiates repository.
func NewChatExchangeRepository(pool *pgxpool.Pool) ChatExchangeRepository {
	return &chatExchangeRepository{pool: pool}
}

func (r *chatExchangeRepository) Create(ctx context.Context, exchange *domain.ChatExchange) error {
	const query = `
        INSERT INTO chat_exchanges (session_id, user_message, bot_response, intent, agent_type)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		exchange.SessionID,
		exchange.UserMessage,
		exchange.BotResponse,
		exchange.Intent,
		exchange.AgentType,
	).Scan(&exchange.ID, &exchange.CreatedAt)
}

func (r *chatExchangeRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatExchange, error) {
	const query = `
        SELECT id, session_id, user_message, bot_response, intent, agent_type, created_at
        FROM chat_exchanges WHERE session_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatExchange
	for rows.Next() {
		var exchange domain.ChatExchange
		if err := rows.Scan(
			&exchange.ID,
			&exchange.SessionID,
			&exchange.UserMessage,
			&exchange.BotResponse,
			&exchange.Intent,
			&exchange.AgentType,
			&exchange.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, exchange)
	}
	return result, rows.Err()
}
