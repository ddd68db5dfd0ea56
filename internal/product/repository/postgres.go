package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (name, category_id, brand_id, model_id, price, created_at)
        VALUES (:name, :category_id, :brand_id, :model_id, :price, :created_at)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *PGRepository) CreateInfo(ctx context.Context, info *model.ProductInfo) error {
	query := `
        INSERT INTO product_infos (product_id, attribute_id, attribute_value, show_in_main)
        VALUES (:product_id, :attribute_id, :attribute_value, :show_in_main)
        RETURNING id
    `
	id, err := database.InsertReturningID(ctx, database.Conn(ctx, r.DB), query, info)
	if err != nil {
		return err
	}
	info.ID = id
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	q := database.Conn(ctx, r.DB)
	err := sqlx.GetContext(ctx, q, &p, q.Rebind(`SELECT * FROM products WHERE id = ? LIMIT 1`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

type detailRow struct {
	model.Product
	CategoryName     string     `db:"category_name"`
	CategoryParentID *int64     `db:"category_parent_id"`
	CategoryPosition int        `db:"category_position"`
	BrandName        string     `db:"brand_name"`
	ModelName        string     `db:"model_name"`
	ModelBrandID     *int64     `db:"model_brand_id"`
	StockID          *int64     `db:"stock_id"`
	StockQuantity    *int64     `db:"stock_quantity"`
	StockUpdatedAt   *time.Time `db:"stock_updated_at"`
}

func (r *PGRepository) FindDetail(ctx context.Context, id int64) (*model.Product, error) {
	query := `
        SELECT p.*,
            c.name AS category_name, c.parent_category_id AS category_parent_id, c.position AS category_position,
            b.name AS brand_name,
            m.name AS model_name, m.brand_id AS model_brand_id,
            s.id AS stock_id, s.quantity AS stock_quantity, s.updated_at AS stock_updated_at
        FROM products p
        JOIN categories c ON c.id = p.category_id
        JOIN brands b ON b.id = p.brand_id
        JOIN product_models m ON m.id = p.model_id
        LEFT JOIN stocks s ON s.product_id = p.id
        WHERE p.id = ?
    `
	var row detailRow
	q := database.Conn(ctx, r.DB)
	if err := sqlx.GetContext(ctx, q, &row, q.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	p := row.Product
	p.Category = &model.Category{
		BaseModel:        model.BaseModel{ID: p.CategoryID},
		Name:             row.CategoryName,
		ParentCategoryID: row.CategoryParentID,
		Position:         row.CategoryPosition,
	}
	p.Brand = &model.Brand{BaseModel: model.BaseModel{ID: p.BrandID}, Name: row.BrandName}
	p.Model = &model.ProductModel{BaseModel: model.BaseModel{ID: p.ModelID}, Name: row.ModelName, BrandID: row.ModelBrandID}
	p.Stock = &model.Stock{ProductID: p.ID}
	if row.StockID != nil {
		p.Stock.ID = *row.StockID
		p.Stock.Quantity = *row.StockQuantity
		if row.StockUpdatedAt != nil {
			p.Stock.UpdatedAt = row.StockUpdatedAt.UTC()
		}
	}
	return &p, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, err
	}
	q := database.Conn(ctx, r.DB)
	err = sqlx.SelectContext(ctx, q, &products, q.Rebind(query), args...)
	return products, err
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	return r.selectWhere(ctx, "", nil)
}

func (r *PGRepository) Filter(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.BrandID != nil {
		conditions = append(conditions, "p.brand_id = :brand_id")
		args["brand_id"] = *f.BrandID
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "p.price >= :min_price")
		args["min_price"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "p.price <= :max_price")
		args["max_price"] = *f.MaxPrice
	}
	if len(f.Attributes) > 0 {
		// One round trip for the superset: any product matching at least one pair.
		pairs := make([]string, 0, len(f.Attributes))
		for i, c := range f.Attributes {
			pairs = append(pairs, fmt.Sprintf("(pi.attribute_id = :attr_id_%d AND pi.attribute_value = :attr_value_%d)", i, i))
			args[fmt.Sprintf("attr_id_%d", i)] = c.AttributeID
			args[fmt.Sprintf("attr_value_%d", i)] = c.AttributeValue
		}
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM product_infos pi WHERE pi.product_id = p.id AND ("+strings.Join(pairs, " OR ")+"))")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	q := database.Conn(ctx, r.DB)
	query, bound, err := q.BindNamed("SELECT p.* FROM products p"+whereClause+" ORDER BY p.id ASC", args)
	if err != nil {
		return nil, err
	}
	products := []model.Product{}
	err = sqlx.SelectContext(ctx, q, &products, query, bound...)
	return products, err
}

func (r *PGRepository) FindByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return r.selectWhere(ctx, "category_id = ?", categoryID)
}

func (r *PGRepository) FindByBrand(ctx context.Context, brandID int64) ([]model.Product, error) {
	return r.selectWhere(ctx, "brand_id = ?", brandID)
}

func (r *PGRepository) FindByModel(ctx context.Context, modelID int64) ([]model.Product, error) {
	return r.selectWhere(ctx, "model_id = ?", modelID)
}

func (r *PGRepository) FindByModels(ctx context.Context, modelIDs []int64) ([]model.Product, error) {
	products := []model.Product{}
	if len(modelIDs) == 0 {
		return products, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM products WHERE model_id IN (?) ORDER BY id ASC`, modelIDs)
	if err != nil {
		return nil, err
	}
	q := database.Conn(ctx, r.DB)
	err = sqlx.SelectContext(ctx, q, &products, q.Rebind(query), args...)
	return products, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PGRepository) FindByNameLike(ctx context.Context, fragment string) ([]model.Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
	return r.selectWhere(ctx, `LOWER(name) LIKE ? ESCAPE '\'`, pattern)
}

func (r *PGRepository) selectWhere(ctx context.Context, where string, arg interface{}) ([]model.Product, error) {
	query := "SELECT * FROM products"
	args := []interface{}{}
	if where != "" {
		query += " WHERE " + where
		args = append(args, arg)
	}
	query += " ORDER BY id ASC"

	products := []model.Product{}
	q := database.Conn(ctx, r.DB)
	err := sqlx.SelectContext(ctx, q, &products, q.Rebind(query), args...)
	return products, err
}

func (r *PGRepository) FindInfosByProductIDs(ctx context.Context, productIDs []int64) ([]model.ProductInfo, error) {
	infos := []model.ProductInfo{}
	if len(productIDs) == 0 {
		return infos, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM product_infos WHERE product_id IN (?) ORDER BY product_id ASC, attribute_id ASC, id ASC`, productIDs)
	if err != nil {
		return nil, err
	}
	q := database.Conn(ctx, r.DB)
	err = sqlx.SelectContext(ctx, q, &infos, q.Rebind(query), args...)
	return infos, err
}

func (r *PGRepository) FindMediaByProductID(ctx context.Context, productID int64) ([]model.ProductMedia, error) {
	media := []model.ProductMedia{}
	q := database.Conn(ctx, r.DB)
	err := sqlx.SelectContext(ctx, q, &media, q.Rebind(`SELECT * FROM product_media WHERE product_id = ? ORDER BY position ASC, id ASC`), productID)
	return media, err
}

func (r *PGRepository) CountByModel(ctx context.Context, modelID int64) (int, error) {
	var count int
	q := database.Conn(ctx, r.DB)
	err := sqlx.GetContext(ctx, q, &count, q.Rebind(`SELECT count(*) FROM products WHERE model_id = ?`), modelID)
	return count, err
}

func (r *PGRepository) FindReferenceInstance(ctx context.Context, modelID int64) (int64, error) {
	query := `
        SELECT p.id
        FROM products p
        LEFT JOIN product_infos pi ON pi.product_id = p.id
        WHERE p.model_id = ?
        GROUP BY p.id
        ORDER BY COUNT(pi.id) DESC, p.id ASC
        LIMIT 1
    `
	var id int64
	q := database.Conn(ctx, r.DB)
	if err := sqlx.GetContext(ctx, q, &id, q.Rebind(query), modelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return id, nil
}

func (r *PGRepository) FindFixedInfos(ctx context.Context, productID int64) ([]model.AttributeValue, error) {
	query := `
        SELECT pi.attribute_id, pi.attribute_value, pi.show_in_main
        FROM product_infos pi
        JOIN attributes a ON a.id = pi.attribute_id
        WHERE pi.product_id = ? AND a.is_changeable = ?
        ORDER BY pi.attribute_id ASC, pi.id ASC
    `
	values := []model.AttributeValue{}
	q := database.Conn(ctx, r.DB)
	err := sqlx.SelectContext(ctx, q, &values, q.Rebind(query), productID, false)
	return values, err
}

func (r *PGRepository) LockModel(ctx context.Context, modelID int64) error {
	q := database.Conn(ctx, r.DB)
	if !database.IsPostgres(q.DriverName()) {
		return nil
	}
	var id int64
	return sqlx.GetContext(ctx, q, &id, q.Rebind(`SELECT id FROM product_models WHERE id = ? FOR UPDATE`), modelID)
}

func (r *PGRepository) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	q := database.Conn(ctx, r.DB)
	_, err := q.ExecContext(ctx, q.Rebind(`UPDATE products SET price = ? WHERE id = ?`), price, id)
	return err
}

// Delete removes the product and every row hanging off it except stock,
// which belongs to the stock collaborator.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.DB, func(ctx context.Context) error {
		q := database.Conn(ctx, r.DB)
		for _, stmt := range []string{
			`DELETE FROM product_infos WHERE product_id = ?`,
			`DELETE FROM product_media WHERE product_id = ?`,
			`DELETE FROM product_views WHERE product_id = ?`,
			`DELETE FROM products WHERE id = ?`,
		} {
			if _, err := q.ExecContext(ctx, q.Rebind(stmt), id); err != nil {
				return err
			}
		}
		return nil
	})
}
