package membersub

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusSuspended Status = "suspended"
)

// Subscription is a member's membership at one gym. It either references a
// catalog plan (plan_id set) or carries ad-hoc terms entered at the desk
// (plan_id null, name and price recorded inline).
type Subscription struct {
	ID            int       `db:"id" json:"id"`
	GymManagerID  int       `db:"gym_manager_id" json:"gym_manager_id"`
	MemberID      int       `db:"member_id" json:"member_id"`
	PlanID        *int      `db:"plan_id" json:"plan_id,omitempty"`
	PlanName      string    `db:"plan_name" json:"plan_name"`
	PriceCents    int64     `db:"price_cents" json:"price_cents"`
	StartDate     time.Time `db:"start_date" json:"start_date"`
	EndDate       time.Time `db:"end_date" json:"end_date"`
	Status        Status    `db:"status" json:"status"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	AutoRenew     bool      `db:"auto_renew" json:"auto_renew"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CreateRequest covers both modes. With plan_id the catalog entry supplies
// name, price and duration; without it plan_name, price_cents and duration
// are all required and the duration is counted in months.
type CreateRequest struct {
	MemberID      int     `json:"member_id" binding:"required"`
	PlanID        *int    `json:"plan_id,omitempty"`
	PlanName      *string `json:"plan_name,omitempty"`
	PriceCents    *int64  `json:"price_cents,omitempty" binding:"omitempty,min=0"`
	Duration      *int    `json:"duration,omitempty" binding:"omitempty,min=1"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,oneof=cash card stripe paypal local"`
	AutoRenew     bool    `json:"auto_renew"`
}

type UpdateRequest struct {
	Status    *Status `json:"status,omitempty" binding:"omitempty,oneof=active expired cancelled suspended"`
	AutoRenew *bool   `json:"auto_renew,omitempty"`
}

type ListFilter struct {
	MemberID int
	Status   string
	Page     int
	Limit    int
}
