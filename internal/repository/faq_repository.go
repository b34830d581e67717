package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

// FAQRepository provides read access to the FAQ catalog. The catalog is
// externally owned; the pipeline only lists active records. Create exists
// for startup seeding.
type FAQRepository interface {
	Create(ctx context.Context, record *domain.FAQRecord) error
	ListActive(ctx context.Context) ([]domain.FAQRecord, error)
	Count(ctx context.Context) (int, error)
}

type faqRepository struct {
	pool *pgxpool.Pool
}

// NewFAQRepository instantiates repository.
func NewFAQRepository(pool *pgxpool.Pool) FAQRepository {
	return &faqRepository{pool: pool}
}

func (r *faqRepository) Create(ctx context.Context, record *domain.FAQRecord) error {
	const query = `
        INSERT INTO faqs (question, answer, category, keywords, is_active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		record.Question,
		record.Answer,
		record.Category,
		record.Keywords,
		record.IsActive,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *faqRepository) ListActive(ctx context.Context) ([]domain.FAQRecord, error) {
	const query = `
        SELECT id, question, answer, category, keywords, is_active, created_at, updated_at
        FROM faqs WHERE is_active = TRUE ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FAQRecord
	for rows.Next() {
		var record domain.FAQRecord
		if err := rows.Scan(
			&record.ID,
			&record.Question,
			&record.Answer,
			&record.Category,
			&record.Keywords,
			&record.IsActive,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (r *faqRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM faqs`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
