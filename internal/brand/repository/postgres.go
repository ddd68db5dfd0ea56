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

func (r *PGRepository) Create(ctx context.Context, b *model.Brand) error {
	query := `INSERT INTO brands (name, created_at) VALUES (:name, :created_at) RETURNING id`
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, b)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Brand, error) {
	var b model.Brand
	q := database.Conn(ctx, r.DB)
	err := sqlx.GetContext(ctx, q, &b, q.Rebind(`SELECT * FROM brands WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Brand, error) {
	brands := []model.Brand{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.DB), &brands, `SELECT * FROM brands ORDER BY name ASC`)
	return brands, err
}
