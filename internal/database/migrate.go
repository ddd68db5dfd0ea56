package database

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id {{pk}},
		name VARCHAR(255) NOT NULL,
		parent_category_id BIGINT REFERENCES categories(id),
		position INTEGER NOT NULL DEFAULT 0,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS brands (
		id {{pk}},
		name VARCHAR(255) NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_models (
		id {{pk}},
		name VARCHAR(255) NOT NULL,
		brand_id BIGINT REFERENCES brands(id),
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attributes (
		id {{pk}},
		category_id BIGINT NOT NULL REFERENCES categories(id),
		name VARCHAR(255) NOT NULL,
		is_changeable BOOLEAN NOT NULL DEFAULT FALSE,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id {{pk}},
		name VARCHAR(512) NOT NULL,
		category_id BIGINT NOT NULL REFERENCES categories(id),
		brand_id BIGINT NOT NULL REFERENCES brands(id),
		model_id BIGINT NOT NULL REFERENCES product_models(id),
		price NUMERIC(14,2) NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_model ON products(model_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_brand_price ON products(brand_id, price)`,
	`CREATE TABLE IF NOT EXISTS product_infos (
		id {{pk}},
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		attribute_id BIGINT NOT NULL REFERENCES attributes(id),
		attribute_value VARCHAR(512) NOT NULL,
		show_in_main BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_product_infos_product ON product_infos(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_product_infos_attr_value ON product_infos(attribute_id, attribute_value)`,
	`CREATE TABLE IF NOT EXISTS product_media (
		id {{pk}},
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		object_key VARCHAR(1024) NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS stocks (
		id {{pk}},
		product_id BIGINT NOT NULL UNIQUE REFERENCES products(id),
		quantity BIGINT NOT NULL DEFAULT 0,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id {{pk}},
		model_id BIGINT NOT NULL REFERENCES product_models(id),
		discount_percent NUMERIC(5,2) NOT NULL,
		starts_at {{ts}} NOT NULL,
		ends_at {{ts}} NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_views (
		id {{pk}},
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		user_id VARCHAR(255) NOT NULL,
		viewed_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_product_views_user ON product_views(user_id, viewed_at)`,
}

// Migrate creates the catalog schema if it does not exist yet. The same DDL
// runs on PostgreSQL and on the SQLite databases used by tests.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	r := strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{ts}}", "TIMESTAMP",
	)
	if IsPostgres(db.DriverName()) {
		r = strings.NewReplacer(
			"{{pk}}", "BIGSERIAL PRIMARY KEY",
			"{{ts}}", "TIMESTAMPTZ",
		)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return err
		}
	}
	return nil
}
