package member

import "context"

// Repository methods take the owning tenant id explicitly so a handler can
// never reach across gyms by forgetting a filter.
type Repository interface {
	Create(ctx context.Context, tenantID int, req CreateRequest) (*Member, error)
	FindByID(ctx context.Context, tenantID, id int) (*Member, error)
	List(ctx context.Context, tenantID int, filter ListFilter) ([]Member, int, error)
	Update(ctx context.Context, tenantID, id int, req UpdateRequest) (*Member, error)
	Delete(ctx context.Context, tenantID, id int) error
}
