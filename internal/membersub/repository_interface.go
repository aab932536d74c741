package membersub

import "context"

type Repository interface {
	Create(ctx context.Context, sub *Subscription) (*Subscription, error)
	FindByID(ctx context.Context, tenantID, id int) (*Subscription, error)
	List(ctx context.Context, tenantID int, filter ListFilter) ([]Subscription, int, error)
	Update(ctx context.Context, tenantID, id int, req UpdateRequest) (*Subscription, error)
	SetStatus(ctx context.Context, tenantID, id int, status Status) (*Subscription, error)

	// HasActiveForMember reports whether the member holds a subscription
	// that is active and not yet past its end date. Check-in depends on it.
	HasActiveForMember(ctx context.Context, tenantID, memberID int) (bool, error)
}
