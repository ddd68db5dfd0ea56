package model

type Attribute struct {
	BaseModel
	CategoryID   int64  `db:"category_id" json:"category_id"`
	Name         string `db:"name" json:"name"`
	IsChangeable bool   `db:"is_changeable" json:"is_changeable"`
}

// ProductInfo is one attribute value of one product.
type ProductInfo struct {
	ID             int64  `db:"id" json:"id"`
	ProductID      int64  `db:"product_id" json:"product_id"`
	AttributeID    int64  `db:"attribute_id" json:"attribute_id"`
	AttributeValue string `db:"attribute_value" json:"attribute_value"`
	ShowInMain     bool   `db:"show_in_main" json:"show_in_main"`
}

type AttributeValue struct {
	AttributeID    int64  `db:"attribute_id" json:"attribute_id"`
	AttributeValue string `db:"attribute_value" json:"attribute_value"`
	ShowInMain     bool   `db:"show_in_main" json:"show_in_main"`
}
