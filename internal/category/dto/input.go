package dto

type CreateCategoryInput struct {
	Name             string `json:"name" binding:"required"`
	ParentCategoryID *int64 `json:"parent_category_id"`
	Position         int    `json:"position"`
}
