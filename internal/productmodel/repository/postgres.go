package repository

import (
	"context"
	"database/sql"
	"errors"

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

func (r *PGRepository) Create(ctx context.Context, m *model.ProductModel) error {
	query := `
        INSERT INTO product_models (name, brand_id, created_at)
        VALUES (:name, :brand_id, :created_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, m)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.ProductModel, error) {
	var m model.ProductModel
	q := database.Conn(ctx, r.DB)
	err := sqlx.GetContext(ctx, q, &m, q.Rebind(`SELECT * FROM product_models WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) FindByBrand(ctx context.Context, brandID int64) ([]model.ProductModel, error) {
	models := []model.ProductModel{}
	q := database.Conn(ctx, r.DB)
	err := sqlx.SelectContext(ctx, q, &models, q.Rebind(`SELECT * FROM product_models WHERE brand_id = ? ORDER BY name ASC`), brandID)
	return models, err
}
