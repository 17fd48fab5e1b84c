package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

const documentColumns = `id, title, description, category, status, file_url, tags, business_id, created_at, updated_at`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Category, &d.Status, &d.FileURL, &d.Tags, &d.BusinessID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) GetDocuments(ctx context.Context, businessID int64) ([]domain.Document, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE business_id = $1 ORDER BY id`,
		businessID,
	)
	if err != nil {
		return nil, wrapQuery("list documents", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, wrapQuery("scan document", err)
		}
		docs = append(docs, *d)
	}
	return docs, wrapQuery("list documents", rows.Err())
}

func (r *PostgresRepository) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	d, err := scanDocument(r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapQuery("get document", notFound(err, domain.ErrDocumentNotFound))
	}
	return d, nil
}

func (r *PostgresRepository) CreateDocument(ctx context.Context, in domain.CreateDocumentInput) (*domain.Document, error) {
	d := domain.NewDocument(in, r.stamp())
	err := r.db.QueryRow(ctx,
		`INSERT INTO documents (title, description, category, status, file_url, tags, business_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		d.Title, d.Description, d.Category, d.Status, d.FileURL, d.Tags, d.BusinessID, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		return nil, wrapQuery("create document", err)
	}
	return &d, nil
}

func (r *PostgresRepository) UpdateDocument(ctx context.Context, id int64, patch domain.DocumentPatch) (*domain.Document, error) {
	var updated *domain.Document
	err := r.withTx(ctx, func(db dbtx) error {
		d, err := scanDocument(db.QueryRow(ctx,
			`SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`,
			id,
		))
		if err != nil {
			return notFound(err, domain.ErrDocumentNotFound)
		}

		// Postgres keeps microseconds, so advance by at least one of those.
		now := r.stamp()
		if !now.After(d.UpdatedAt) {
			now = d.UpdatedAt.Add(time.Microsecond)
		}
		patch.Apply(d, now)

		_, err = db.Exec(ctx,
			`UPDATE documents
			 SET title = $1, description = $2, category = $3, status = $4, file_url = $5, tags = $6, updated_at = $7
			 WHERE id = $8`,
			d.Title, d.Description, d.Category, d.Status, d.FileURL, d.Tags, d.UpdatedAt, d.ID,
		)
		if err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, wrapQuery("update document", err)
	}
	return updated, nil
}

func (r *PostgresRepository) DeleteDocument(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM documents WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, wrapQuery("delete document", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
