package subscription

import "context"

type Repository interface {
	Create(ctx context.Context, sub *Subscription) (*Subscription, error)
	FindByID(ctx context.Context, id int) (*Subscription, error)
	List(ctx context.Context, filter ListFilter) ([]Subscription, int, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Subscription, error)
	SetStatus(ctx context.Context, id int, status Status) (*Subscription, error)
}
