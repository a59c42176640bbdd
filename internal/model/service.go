package model

// Service is an offering a customer can book (haircut, shave, ...).
type Service struct {
	Base
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Duration    int     `db:"duration" json:"duration"` // in minutes
	Price       float64 `db:"price" json:"price"`
	Active      bool    `db:"active" json:"active"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Duration    int     `json:"duration" binding:"required" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}
