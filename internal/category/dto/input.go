package dto

type CreateCategoryInput struct {
	Name        string
	Description string
}

type UpdateCategoryInput struct {
	ID          string
	Name        string
	Description string
}

type CategoryFilters struct {
	Search   string
	Page     int
	PageSize int
}
