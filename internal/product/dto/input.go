package dto

import "github.com/shopspring/decimal"

type ComposeProductInput struct {
	CategoryID int64           `json:"category_id" binding:"required"`
	BrandID    int64           `json:"brand_id" binding:"required"`
	ModelID    int64           `json:"model_id" binding:"required"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
	// Attributes maps attribute id to value. On the first product of a model
	// every value is taken as given; afterwards fixed values are inherited.
	Attributes map[int64]string `json:"attributes"`
}

type UpdateProductInput struct {
	ID       int64            `json:"-"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int64           `json:"quantity"`
}
