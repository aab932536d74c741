package manager

import (
	"context"

	"gymdesk/internal/auth"
)

type Repository interface {
	Create(ctx context.Context, req RegisterRequest, passwordHash string) (*Manager, error)
	FindByEmail(ctx context.Context, email string) (*Manager, error)
	FindByID(ctx context.Context, id int) (*Manager, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Manager, int, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Manager, error)
	Delete(ctx context.Context, id int) error

	// SetSubscription points the tenant at its current platform subscription
	// and mirrors the subscription status onto the account.
	SetSubscription(ctx context.Context, id int, subscriptionID int, status SubscriptionStatus) error
	SetSubscriptionStatus(ctx context.Context, id int, status SubscriptionStatus) error

	// ManagerGate implements auth.ManagerVerifier.
	ManagerGate(ctx context.Context, id int) (*auth.ManagerGate, error)
}
