package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name       string          `db:"name" json:"name"`
	CategoryID int64           `db:"category_id" json:"category_id"`
	BrandID    int64           `db:"brand_id" json:"brand_id"`
	ModelID    int64           `db:"model_id" json:"model_id"`
	Price      decimal.Decimal `db:"price" json:"price"`

	Infos    []ProductInfo  `db:"-" json:"product_info"`
	Media    []ProductMedia `db:"-" json:"media,omitempty"`
	Stock    *Stock         `db:"-" json:"stock,omitempty"`
	Category *Category      `db:"-" json:"category,omitempty"`
	Brand    *Brand         `db:"-" json:"brand,omitempty"`
	Model    *ProductModel  `db:"-" json:"model,omitempty"`
}

type ProductMedia struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	ObjectKey string `db:"object_key" json:"object_key"`
	Position  int    `db:"position" json:"position"`
	URL       string `db:"-" json:"url,omitempty"`
}
