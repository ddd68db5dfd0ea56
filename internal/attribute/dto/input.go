package dto

type CreateAttributeInput struct {
	CategoryID   int64  `json:"category_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	IsChangeable bool   `json:"is_changeable"`
}
