package subscription

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Subscription ties a gym manager to a platform plan for a period. The
// manager account mirrors the status of its current subscription.
type Subscription struct {
	ID               int       `db:"id" json:"id"`
	GymManagerID     int       `db:"gym_manager_id" json:"gym_manager_id"`
	PlanID           int       `db:"plan_id" json:"plan_id"`
	StartDate        time.Time `db:"start_date" json:"start_date"`
	EndDate          time.Time `db:"end_date" json:"end_date"`
	Status           Status    `db:"status" json:"status"`
	PaymentMethod    string    `db:"payment_method" json:"payment_method"`
	PaymentGatewayID *string   `db:"payment_gateway_id" json:"payment_gateway_id,omitempty"`
	AmountCents      int64     `db:"amount_cents" json:"amount_cents"`
	AutoRenew        bool      `db:"auto_renew" json:"auto_renew"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	GymManagerID     int     `json:"gym_manager_id" binding:"required"`
	PlanID           int     `json:"plan_id" binding:"required"`
	PaymentMethod    string  `json:"payment_method" binding:"omitempty,oneof=cash card stripe paypal local"`
	PaymentGatewayID *string `json:"payment_gateway_id,omitempty"`
	AutoRenew        bool    `json:"auto_renew"`
}

type UpdateRequest struct {
	Status    *Status `json:"status,omitempty" binding:"omitempty,oneof=active expired cancelled"`
	AutoRenew *bool   `json:"auto_renew,omitempty"`
}

// SubscribeRequest is the public storefront purchase: a new gym signs up and
// pays in one call. When the email already has an account the credentials
// must match and the purchase lands on the existing account.
type SubscribeRequest struct {
	Name             string  `json:"name" binding:"required,min=2"`
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=6"`
	GymName          string  `json:"gym_name" binding:"required"`
	Phone            *string `json:"phone,omitempty"`
	PlanID           int     `json:"plan_id" binding:"required"`
	PaymentMethod    string  `json:"payment_method" binding:"omitempty,oneof=cash card stripe paypal local"`
	PaymentGatewayID *string `json:"payment_gateway_id,omitempty"`
}

type ListFilter struct {
	Status       string
	GymManagerID int
	Page         int
	Limit        int
}
