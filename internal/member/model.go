package member

import "time"

// Member belongs to exactly one gym. Every query against this table carries
// the owning gym_manager_id.
type Member struct {
	ID               int        `db:"id" json:"id"`
	GymManagerID     int        `db:"gym_manager_id" json:"gym_manager_id"`
	Name             string     `db:"name" json:"name"`
	Phone            string     `db:"phone" json:"phone"`
	Email            *string    `db:"email" json:"email,omitempty"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender           *string    `db:"gender" json:"gender,omitempty"`
	Address          *string    `db:"address" json:"address,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	IsActive         bool       `db:"is_active" json:"is_active"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name             string     `json:"name" binding:"required,min=2"`
	Phone            string     `json:"phone" binding:"required"`
	Email            *string    `json:"email,omitempty" binding:"omitempty,email"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           *string    `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Address          *string    `json:"address,omitempty"`
	EmergencyContact *string    `json:"emergency_contact,omitempty"`
}

type UpdateRequest struct {
	Name             *string    `json:"name,omitempty" binding:"omitempty,min=2"`
	Phone            *string    `json:"phone,omitempty"`
	Email            *string    `json:"email,omitempty" binding:"omitempty,email"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           *string    `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Address          *string    `json:"address,omitempty"`
	EmergencyContact *string    `json:"emergency_contact,omitempty"`
	IsActive         *bool      `json:"is_active,omitempty"`
}

type ListFilter struct {
	Search   string
	IsActive *bool
	Page     int
	Limit    int
}
