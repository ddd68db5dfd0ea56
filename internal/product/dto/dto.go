package dto

import "github.com/shopspring/decimal"

// AttributeCondition matches a product carrying exactly this value for the attribute.
type AttributeCondition struct {
	AttributeID    int64  `json:"attribute_id"`
	AttributeValue string `json:"attribute_value"`
}

// ProductFilters are ANDed together. Price bounds are inclusive on both ends.
type ProductFilters struct {
	BrandID    *int64               `json:"brand_id"`
	MinPrice   *decimal.Decimal     `json:"min_price"`
	MaxPrice   *decimal.Decimal     `json:"max_price"`
	Attributes []AttributeCondition `json:"attributes"`
}
