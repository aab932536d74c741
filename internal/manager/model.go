package manager

import "time"

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusExpired   SubscriptionStatus = "expired"
	StatusSuspended SubscriptionStatus = "suspended"
	StatusCancelled SubscriptionStatus = "cancelled"
)

// Manager is a tenant account. Everything carrying its id is isolated to it.
type Manager struct {
	ID                    int                `db:"id" json:"id"`
	Name                  string             `db:"name" json:"name"`
	Email                 string             `db:"email" json:"email"`
	PasswordHash          string             `db:"password_hash" json:"-"`
	GymName               string             `db:"gym_name" json:"gym_name"`
	Phone                 *string            `db:"phone" json:"phone,omitempty"`
	Address               *string            `db:"address" json:"address,omitempty"`
	IsActive              bool               `db:"is_active" json:"is_active"`
	SubscriptionStatus    SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	CurrentSubscriptionID *int               `db:"current_subscription_id" json:"current_subscription_id,omitempty"`
	CreatedAt             time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time          `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,min=2"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	GymName  string  `json:"gym_name" binding:"required"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	GymName  *string `json:"gym_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type AuthResponse struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	Manager Manager `json:"gym_manager"`
}

type ListFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}
