package model

type Category struct {
	BaseModel
	Name             string     `db:"name" json:"name"`
	ParentCategoryID *int64     `db:"parent_category_id" json:"parent_category_id"` // Nullable, nil marks a root
	Position         int        `db:"position" json:"position"`
	Children         []Category `db:"-" json:"children,omitempty"`
}

// IsRoot reports whether the category is a main category. Root categories
// group other categories and are never assigned to a product.
func (c *Category) IsRoot() bool {
	return c.ParentCategoryID == nil
}

type Brand struct {
	BaseModel
	Name string `db:"name" json:"name"`
}

type ProductModel struct {
	BaseModel
	Name    string `db:"name" json:"name"`
	BrandID *int64 `db:"brand_id" json:"brand_id"`
}
