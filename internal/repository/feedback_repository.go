package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// FeedbackRepository handles persistence for complaint feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	GetByComplaintID(ctx context.Context, complaintID string) (*domain.Feedback, error)
	ListAll(ctx context.Context) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates the repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedbacks (customer_id, customer_email, customer_name, complaint_id, complaint_title, rating, comment)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		feedback.CustomerID,
		feedback.CustomerEmail,
		feedback.CustomerName,
		feedback.ComplaintID,
		feedback.ComplaintTitle,
		feedback.Rating,
		feedback.Comment,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *feedbackRepository) GetByComplaintID(ctx context.Context, complaintID string) (*domain.Feedback, error) {
	const query = `
        SELECT id, customer_id, customer_email, customer_name, complaint_id, complaint_title, rating, comment, created_at
        FROM feedbacks WHERE complaint_id=$1`

	var fb domain.Feedback
	if err := r.pool.QueryRow(ctx, query, complaintID).Scan(
		&fb.ID,
		&fb.CustomerID,
		&fb.CustomerEmail,
		&fb.CustomerName,
		&fb.ComplaintID,
		&fb.ComplaintTitle,
		&fb.Rating,
		&fb.Comment,
		&fb.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	const query = `
        SELECT id, customer_id, customer_email, customer_name, complaint_id, complaint_title, rating, comment, created_at
        FROM feedbacks ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(
			&fb.ID,
			&fb.CustomerID,
			&fb.CustomerEmail,
			&fb.CustomerName,
			&fb.ComplaintID,
			&fb.ComplaintTitle,
			&fb.Rating,
			&fb.Comment,
			&fb.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}
