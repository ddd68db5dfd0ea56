package repository

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PGRepository) Create(ctx context.Context, s *model.Stock) error {
	query := `
        INSERT INTO stocks (product_id, quantity, updated_at)
        VALUES (:product_id, :quantity, :updated_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, s)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r *PGRepository) GetByProduct(ctx context.Context, productID int64) (*model.Stock, error) {
	var s model.Stock
	q := database.Conn(ctx, r.DB)
	err := sqlx.GetContext(ctx, q, &s, q.Rebind(`SELECT * FROM stocks WHERE product_id = ?`), productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) UpdateQuantity(ctx context.Context, productID, quantity int64) (bool, error) {
	q := database.Conn(ctx, r.DB)
	res, err := q.ExecContext(ctx,
		q.Rebind(`UPDATE stocks SET quantity = ?, updated_at = ? WHERE product_id = ?`),
		quantity, time.Now().UTC(), productID,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	q := database.Conn(ctx, r.DB)
	_, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM stocks WHERE product_id = ?`), productID)
	return err
}
