package dto

type CategoryFilters struct {
	ParentID *int64 // Nil means ignore
	RootOnly bool
}
