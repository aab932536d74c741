package report

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	TypeRevenue    = "revenue"
	TypeMembers    = "members"
	TypeAttendance = "attendance"
)

// Report is an immutable snapshot. The data column keeps whatever the
// aggregation produced at generation time; regenerating makes a new row.
type Report struct {
	ID           int            `db:"id" json:"id"`
	GymManagerID int            `db:"gym_manager_id" json:"gym_manager_id"`
	Type         string         `db:"type" json:"type"`
	Title        string         `db:"title" json:"title"`
	Data         types.JSONText `db:"data" json:"data"`
	PeriodStart  *time.Time     `db:"period_start" json:"period_start,omitempty"`
	PeriodEnd    *time.Time     `db:"period_end" json:"period_end,omitempty"`
	GeneratedAt  time.Time      `db:"generated_at" json:"generated_at"`
}

// RevenueData only counts the gym's member revenue; the gym's own platform
// subscription payments never appear here.
type RevenueData struct {
	TotalCents   int64            `json:"total_cents"`
	PaymentCount int              `json:"payment_count"`
	ByMethod     map[string]int64 `json:"by_method"`
}

type MembersData struct {
	TotalMembers         int `json:"total_members"`
	ActiveMembers        int `json:"active_members"`
	InactiveMembers      int `json:"inactive_members"`
	ActiveSubscriptions  int `json:"active_subscriptions"`
	ExpiredSubscriptions int `json:"expired_subscriptions"`
}

type AttendanceData struct {
	TotalCheckIns int            `json:"total_check_ins"`
	TopMembers    []MemberVisits `json:"top_members"`
	Daily         []DayCount     `json:"daily"`
}

type MemberVisits struct {
	MemberID int    `db:"member_id" json:"member_id"`
	Name     string `db:"name" json:"name"`
	Visits   int    `db:"visits" json:"visits"`
}

type DayCount struct {
	Day   string `db:"day" json:"day"`
	Count int    `db:"count" json:"count"`
}
