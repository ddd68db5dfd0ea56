package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
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

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (name, parent_category_id, position, created_at)
        VALUES (:name, :parent_category_id, :position, :created_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	q := database.Conn(ctx, r.DB)
	err := sqlx.GetContext(ctx, q, &category, q.Rebind(`SELECT * FROM categories WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	categories := []model.Category{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.RootOnly {
		conditions = append(conditions, "parent_category_id IS NULL")
	} else if f.ParentID != nil {
		conditions = append(conditions, "parent_category_id = :parent_id")
		args["parent_id"] = *f.ParentID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT * FROM categories" + whereClause + " ORDER BY position ASC, name ASC"

	q := database.Conn(ctx, r.DB)
	bound, bargs, err := q.BindNamed(query, args)
	if err != nil {
		return nil, err
	}
	if err := sqlx.SelectContext(ctx, q, &categories, bound, bargs...); err != nil {
		return nil, err
	}
	return categories, nil
}
