package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

const businessColumns = `id, name, description, industry, logo_url, primary_color, accent_color, user_id`

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var b domain.Business
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Industry, &b.LogoURL, &b.PrimaryColor, &b.AccentColor, &b.UserID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresRepository) GetBusiness(ctx context.Context, userID int64) (*domain.Business, error) {
	b, err := scanBusiness(r.db.QueryRow(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE user_id = $1 ORDER BY id LIMIT 1`,
		userID,
	))
	if err != nil {
		return nil, wrapQuery("get business by owner", notFound(err, domain.ErrBusinessNotFound))
	}
	return b, nil
}

func (r *PostgresRepository) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	b, err := scanBusiness(r.db.QueryRow(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapQuery("get business", notFound(err, domain.ErrBusinessNotFound))
	}
	return b, nil
}

func (r *PostgresRepository) CreateBusiness(ctx context.Context, in domain.CreateBusinessInput) (*domain.Business, error) {
	b := domain.NewBusiness(in)
	err := r.db.QueryRow(ctx,
		`INSERT INTO businesses (name, description, industry, logo_url, primary_color, accent_color, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		b.Name, b.Description, b.Industry, b.LogoURL, b.PrimaryColor, b.AccentColor, b.UserID,
	).Scan(&b.ID)
	if err != nil {
		return nil, wrapQuery("create business", err)
	}
	return &b, nil
}

func (r *PostgresRepository) UpdateBusiness(ctx context.Context, id int64, patch domain.BusinessPatch) (*domain.Business, error) {
	var updated *domain.Business
	err := r.withTx(ctx, func(db dbtx) error {
		b, err := scanBusiness(db.QueryRow(ctx,
			`SELECT `+businessColumns+` FROM businesses WHERE id = $1 FOR UPDATE`,
			id,
		))
		if err != nil {
			return notFound(err, domain.ErrBusinessNotFound)
		}

		patch.Apply(b)

		_, err = db.Exec(ctx,
			`UPDATE businesses
			 SET name = $1, description = $2, industry = $3, logo_url = $4, primary_color = $5, accent_color = $6
			 WHERE id = $7`,
			b.Name, b.Description, b.Industry, b.LogoURL, b.PrimaryColor, b.AccentColor, b.ID,
		)
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, wrapQuery("update business", err)
	}
	return updated, nil
}
