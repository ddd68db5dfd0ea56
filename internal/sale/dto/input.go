package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateSaleInput struct {
	ModelID         int64           `json:"model_id" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	StartsAt        time.Time       `json:"starts_at" binding:"required"`
	EndsAt          time.Time       `json:"ends_at" binding:"required"`
}
