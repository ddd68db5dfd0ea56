package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	BaseModel
	ModelID         int64           `db:"model_id" json:"model_id"`
	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discount_percent"`
	StartsAt        time.Time       `db:"starts_at" json:"starts_at"`
	EndsAt          time.Time       `db:"ends_at" json:"ends_at"`
	IsActive        bool            `db:"is_active" json:"is_active"`
}

type ProductView struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	ViewedAt  time.Time `db:"viewed_at" json:"viewed_at"`
}

// ViewCount is an aggregate row of product_views.
type ViewCount struct {
	ProductID int64 `db:"product_id" json:"product_id"`
	Views     int64 `db:"views" json:"views"`
}
