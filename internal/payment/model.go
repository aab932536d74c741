package payment

import "time"

type Type string

const (
	// TypePlatform is revenue the platform collects from gym managers.
	TypePlatform Type = "gym_manager_subscription"
	// TypeTenant is revenue a gym collects from its own members.
	TypeTenant Type = "member_subscription"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

type Method string

const (
	MethodCash   Method = "cash"
	MethodCard   Method = "card"
	MethodStripe Method = "stripe"
	MethodPayPal Method = "paypal"
	MethodLocal  Method = "local"
)

type Payment struct {
	ID               int        `db:"id" json:"id"`
	GymManagerID     int        `db:"gym_manager_id" json:"gym_manager_id"`
	Type             Type       `db:"type" json:"type"`
	RelatedID        int        `db:"related_id" json:"related_id"`
	AmountCents      int64      `db:"amount_cents" json:"amount_cents"`
	Currency         string     `db:"currency" json:"currency"`
	PaymentMethod    Method     `db:"payment_method" json:"payment_method"`
	PaymentGatewayID *string    `db:"payment_gateway_id" json:"payment_gateway_id,omitempty"`
	Status           Status     `db:"status" json:"status"`
	PaidAt           *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	Description      string     `db:"description" json:"description"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// CreateInput is what services record when money moves. The repository fills
// id and created_at.
type CreateInput struct {
	GymManagerID     int
	Type             Type
	RelatedID        int
	AmountCents      int64
	Currency         string
	PaymentMethod    Method
	PaymentGatewayID *string
	Status           Status
	PaidAt           *time.Time
	Description      string
}

type ListFilter struct {
	Type         string
	Status       string
	Method       string
	GymManagerID int
	Page         int
	Limit        int
}

// RevenueStats is a tenant's member revenue broken down for the dashboard.
type RevenueStats struct {
	TotalCents int64            `json:"total_cents"`
	ByMethod   map[string]int64 `json:"by_method"`
	ByMonth    []MonthRevenue   `json:"by_month"`
}

type MonthRevenue struct {
	Month      string `db:"month" json:"month"`
	TotalCents int64  `db:"total_cents" json:"total_cents"`
}
