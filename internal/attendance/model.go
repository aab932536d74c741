package attendance

import "time"

// Record is one gym visit. A member may hold several open records at once;
// each checkout closes exactly one of them.
type Record struct {
	ID              int        `db:"id" json:"id"`
	GymManagerID    int        `db:"gym_manager_id" json:"gym_manager_id"`
	MemberID        int        `db:"member_id" json:"member_id"`
	CheckIn         time.Time  `db:"check_in" json:"check_in"`
	CheckOut        *time.Time `db:"check_out" json:"check_out,omitempty"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

type CheckInRequest struct {
	MemberID int     `json:"member_id" binding:"required"`
	Notes    *string `json:"notes,omitempty"`
}

type ListFilter struct {
	MemberID int
	Date     string
	Page     int
	Limit    int
}
