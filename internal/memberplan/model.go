package memberplan

import (
	"time"

	"github.com/lib/pq"
)

type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitMonths DurationUnit = "months"
	UnitYears  DurationUnit = "years"
)

// MemberPlan is a gym's own catalog entry, priced and owned per tenant.
type MemberPlan struct {
	ID           int            `db:"id" json:"id"`
	GymManagerID int            `db:"gym_manager_id" json:"gym_manager_id"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description"`
	PriceCents   int64          `db:"price_cents" json:"price_cents"`
	Duration     int            `db:"duration" json:"duration"`
	DurationUnit DurationUnit   `db:"duration_unit" json:"duration_unit"`
	Features     pq.StringArray `db:"features" json:"features"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name         string       `json:"name" binding:"required"`
	Description  string       `json:"description"`
	PriceCents   int64        `json:"price_cents" binding:"required,min=0"`
	Duration     int          `json:"duration" binding:"required,min=1"`
	DurationUnit DurationUnit `json:"duration_unit" binding:"omitempty,oneof=days months years"`
	Features     []string     `json:"features,omitempty"`
}

type UpdateRequest struct {
	Name         *string       `json:"name,omitempty"`
	Description  *string       `json:"description,omitempty"`
	PriceCents   *int64        `json:"price_cents,omitempty" binding:"omitempty,min=0"`
	Duration     *int          `json:"duration,omitempty" binding:"omitempty,min=1"`
	DurationUnit *DurationUnit `json:"duration_unit,omitempty" binding:"omitempty,oneof=days months years"`
	Features     []string      `json:"features,omitempty"`
	IsActive     *bool         `json:"is_active,omitempty"`
}
