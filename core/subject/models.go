package subject

import "time"

// Subject is a catalog entry students browse and enroll against.
type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Board       string    `json:"board"`
	ClassName   string    `json:"class_name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NewSubject struct {
	Name        string  `json:"name" validate:"required"`
	Board       string  `json:"board" validate:"required,oneof=CBSE ICSE"`
	ClassName   string  `json:"class_name" validate:"required"`
	Price       float64 `json:"price" validate:"omitempty,min=0"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
}

type UpdateSubject struct {
	Name        string   `json:"name"`
	Board       string   `json:"board" validate:"omitempty,oneof=CBSE ICSE"`
	ClassName   string   `json:"class_name"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	IsActive    *bool    `json:"is_active"`
}

// QueryFilter applies an AND operation on its set fields.
type QueryFilter struct {
	Board     string
	ClassName string
}
