package repository

import (
	"context"
	"time"

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

func (r *PGRepository) Create(ctx context.Context, s *model.Sale) error {
	query := `
        INSERT INTO sales (model_id, discount_percent, starts_at, ends_at, is_active, created_at)
        VALUES (:model_id, :discount_percent, :starts_at, :ends_at, :is_active, :created_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, s)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r *PGRepository) RefreshActive(ctx context.Context, now time.Time) (int64, error) {
	query := `
        UPDATE sales
        SET is_active = CASE WHEN starts_at <= :now AND ends_at > :now THEN TRUE ELSE FALSE END
        WHERE is_active <> CASE WHEN starts_at <= :now AND ends_at > :now THEN TRUE ELSE FALSE END
    `
	res, err := sqlx.NamedExecContext(ctx, database.Conn(ctx, r.DB), query, map[string]interface{}{"now": now})
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) FindActive(ctx context.Context) ([]model.Sale, error) {
	sales := []model.Sale{}
	q := database.Conn(ctx, r.DB)
	err := sqlx.SelectContext(ctx, q, &sales, q.Rebind(`SELECT * FROM sales WHERE is_active = ? ORDER BY id ASC`), true)
	return sales, err
}
