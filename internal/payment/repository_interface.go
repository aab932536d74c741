package payment

import "context"

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Payment, error)
	UpdateStatus(ctx context.Context, id int, status Status, gatewayID *string) (*Payment, error)

	// Admin surface: sees every payment and the platform revenue pool
	// (completed gym manager subscription payments only).
	ListAll(ctx context.Context, filter ListFilter) ([]Payment, int, error)
	FindByID(ctx context.Context, id int) (*Payment, error)
	PlatformRevenue(ctx context.Context) (int64, error)
	PlatformRevenueStats(ctx context.Context) (*RevenueStats, error)

	// Tenant surface: sees its own member payments and the tenant revenue
	// pool (completed member subscription payments only). Platform
	// subscription payments never count toward a gym's revenue.
	ListTenant(ctx context.Context, tenantID int, filter ListFilter) ([]Payment, int, error)
	FindTenantByID(ctx context.Context, tenantID, id int) (*Payment, error)
	OwnsMemberSubscription(ctx context.Context, tenantID, subscriptionID int) (bool, error)
	UpdateTenantStatus(ctx context.Context, tenantID, id int, status Status, gatewayID *string) (*Payment, error)
	TenantRevenue(ctx context.Context, tenantID int) (int64, error)
	TenantRevenueStats(ctx context.Context, tenantID int) (*RevenueStats, error)
}
