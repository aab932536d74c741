package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, tenantID, memberID int, notes *string) (*Record, error)
	// FindOpen only matches records without a checkout, so closing the same
	// visit twice reports not found.
	FindOpen(ctx context.Context, tenantID, id int) (*Record, error)
	Close(ctx context.Context, tenantID, id int, checkOut time.Time, durationMinutes int) (*Record, error)
	List(ctx context.Context, tenantID int, filter ListFilter) ([]Record, int, error)
	MemberHistory(ctx context.Context, tenantID, memberID, page, limit int) ([]Record, int, error)
}
