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

func (r *PGRepository) Create(ctx context.Context, a *model.Attribute) error {
	query := `
        INSERT INTO attributes (category_id, name, is_changeable, created_at)
        VALUES (:category_id, :name, :is_changeable, :created_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, a)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Attribute, error) {
	var a model.Attribute
	q := database.Conn(ctx, r.DB)
	err := sqlx.GetContext(ctx, q, &a, q.Rebind(`SELECT * FROM attributes WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) FindByCategory(ctx context.Context, categoryID int64, changeableOnly bool) ([]model.Attribute, error) {
	attrs := []model.Attribute{}
	query := `SELECT * FROM attributes WHERE category_id = ?`
	args := []interface{}{categoryID}
	if changeableOnly {
		query += ` AND is_changeable = ?`
		args = append(args, true)
	}
	query += ` ORDER BY id ASC`

	q := database.Conn(ctx, r.DB)
	err := sqlx.SelectContext(ctx, q, &attrs, q.Rebind(query), args...)
	return attrs, err
}
