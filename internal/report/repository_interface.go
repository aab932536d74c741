package report

import (
	"context"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, tenantID int, reportType, title string, data interface{},
		periodStart, periodEnd *time.Time) (*Report, error)
	List(ctx context.Context, tenantID int, reportType string, limit int) ([]Report, error)
	FindByID(ctx context.Context, tenantID, id int) (*Report, error)

	RevenueData(ctx context.Context, tenantID int, start, end time.Time) (*RevenueData, error)
	MembersData(ctx context.Context, tenantID int) (*MembersData, error)
	AttendanceData(ctx context.Context, tenantID int, start, end time.Time) (*AttendanceData, error)
}
