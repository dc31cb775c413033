package model

type Supplier struct {
	BaseModel
	Name    string  `db:"name" json:"name"`
	Phone   *string `db:"phone" json:"phone"`
	Email   *string `db:"email" json:"email"`
	Address *string `db:"address" json:"address"`
}
