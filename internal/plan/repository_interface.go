package plan

import "context"

type Repository interface {
	Create(ctx context.Context, req CreateRequest) (*Plan, error)
	FindByID(ctx context.Context, id int) (*Plan, error)
	// FindActiveByID only returns the plan when it is active. Used by the
	// public surface so retired plans cannot be purchased.
	FindActiveByID(ctx context.Context, id int) (*Plan, error)
	List(ctx context.Context, activeOnly bool) ([]Plan, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Plan, error)
	Delete(ctx context.Context, id int) error
}
