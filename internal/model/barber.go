package model

// Barber is a bookable staff member.
type Barber struct {
	Base
	Name   string `db:"name" json:"name"`
	Email  string `db:"email" json:"email"`
	Color  string `db:"color" json:"color"` // calendar colour used by the admin UI
	Active bool   `db:"active" json:"active"`
}

type CreateBarberRequest struct {
	Name  string `json:"name" binding:"required" validate:"required,max=100"`
	Email string `json:"email" binding:"required,email" validate:"required,email"`
	Color string `json:"color" validate:"max=7"`
}

type UpdateBarberRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Color  *string `json:"color"`
	Active *bool   `json:"active"`
}
