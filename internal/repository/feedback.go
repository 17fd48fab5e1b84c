package repository

import (
	"context"

	"github.com/smarterworkco/GPT-UI/internal/domain"
)

func (r *PostgresRepository) GetFeedbackRequests(ctx context.Context, businessID int64) ([]domain.FeedbackRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, type, title, description, priority, status, business_id, created_at
		 FROM feedback_requests WHERE business_id = $1 ORDER BY id`,
		businessID,
	)
	if err != nil {
		return nil, wrapQuery("list feedback", err)
	}
	defer rows.Close()

	out := make([]domain.FeedbackRequest, 0)
	for rows.Next() {
		var f domain.FeedbackRequest
		if err := rows.Scan(&f.ID, &f.Type, &f.Title, &f.Description, &f.Priority, &f.Status, &f.BusinessID, &f.CreatedAt); err != nil {
			return nil, wrapQuery("scan feedback", err)
		}
		out = append(out, f)
	}
	return out, wrapQuery("list feedback", rows.Err())
}

func (r *PostgresRepository) CreateFeedbackRequest(ctx context.Context, in domain.CreateFeedbackInput) (*domain.FeedbackRequest, error) {
	f := domain.NewFeedbackRequest(in, r.stamp())
	err := r.db.QueryRow(ctx,
		`INSERT INTO feedback_requests (type, title, description, priority, status, business_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		f.Type, f.Title, f.Description, f.Priority, f.Status, f.BusinessID, f.CreatedAt,
	).Scan(&f.ID)
	if err != nil {
		return nil, wrapQuery("create feedback", err)
	}
	return &f, nil
}
