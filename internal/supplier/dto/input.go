package dto

type CreateSupplierInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

type UpdateSupplierInput struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
}

type SupplierFilters struct {
	Search   string
	Page     int
	PageSize int
}
