package repository

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, v *model.ProductView) error {
	query := `
        INSERT INTO product_views (product_id, user_id, viewed_at)
        VALUES (:product_id, :user_id, :viewed_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, v)
	if err != nil {
		return err
	}
	v.ID = id
	return nil
}

func (r *PGRepository) MostViewed(ctx context.Context, limit int) ([]model.ViewCount, error) {
	query := `
        SELECT product_id, COUNT(*) AS views
        FROM product_views
        GROUP BY product_id
        ORDER BY views DESC, product_id ASC
        LIMIT ?
    `
	counts := []model.ViewCount{}
	q := database.Conn(ctx, r.DB)
	err := sqlx.SelectContext(ctx, q, &counts, q.Rebind(query), limit)
	return counts, err
}

func (r *PGRepository) LastViewedProductIDs(ctx context.Context, userID string, limit int) ([]int64, error) {
	// ids grow with insertion, so MAX(id) orders by the latest view.
	query := `
        SELECT product_id
        FROM product_views
        WHERE user_id = ?
        GROUP BY product_id
        ORDER BY MAX(id) DESC
        LIMIT ?
    `
	ids := []int64{}
	q := database.Conn(ctx, r.DB)
	err := sqlx.SelectContext(ctx, q, &ids, q.Rebind(query), userID, limit)
	return ids, err
}
