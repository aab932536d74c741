package memberplan

import "context"

type Repository interface {
	Create(ctx context.Context, tenantID int, req CreateRequest) (*MemberPlan, error)
	FindByID(ctx context.Context, tenantID, id int) (*MemberPlan, error)
	// FindActiveByID only returns the plan when it is active. Member
	// subscriptions may only be sold against active catalog entries.
	FindActiveByID(ctx context.Context, tenantID, id int) (*MemberPlan, error)
	List(ctx context.Context, tenantID int, activeOnly bool) ([]MemberPlan, error)
	Update(ctx context.Context, tenantID, id int, req UpdateRequest) (*MemberPlan, error)
	Delete(ctx context.Context, tenantID, id int) error
}
