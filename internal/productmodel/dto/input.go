package dto

type CreateModelInput struct {
	Name    string `json:"name" binding:"required"`
	BrandID *int64 `json:"brand_id"`
}
