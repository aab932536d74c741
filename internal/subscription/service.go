package subscription

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/logger"
	"gymdesk/internal/manager"
	"gymdesk/internal/metrics"
	"gymdesk/internal/notification"
	"gymdesk/internal/payment"
	"gymdesk/internal/plan"
)

var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrManagerNotFound    = errors.New("gym manager not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo      Repository
	plans     plan.Repository
	managers  manager.Repository
	payments  payment.Repository
	notifier  *notification.Service
	jwtSecret string
}

func NewService(repo Repository, plans plan.Repository, managers manager.Repository,
	payments payment.Repository, notifier *notification.Service, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		plans:     plans,
		managers:  managers,
		payments:  payments,
		notifier:  notifier,
		jwtSecret: jwtSecret,
	}
}

// addDuration applies a plan duration to a start date. Month and year
// arithmetic follows time.AddDate normalization, so Jan 31 plus one month
// lands on Mar 2 (or Mar 1 in leap years).
func addDuration(t time.Time, d int, unit plan.DurationUnit) time.Time {
	switch unit {
	case plan.UnitDays:
		return t.AddDate(0, 0, d)
	case plan.UnitYears:
		return t.AddDate(d, 0, 0)
	default:
		return t.AddDate(0, d, 0)
	}
}

// Create provisions a platform subscription for an existing manager. The
// writes run sequentially without a transaction: subscription first, then the
// account mirror, then the payment record.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Subscription, error) {
	m, err := s.managers.FindByID(ctx, req.GymManagerID)
	if err != nil {
		if errors.Is(err, manager.ErrNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}

	// Admins may sell retired plans, so no is_active check here.
	p, err := s.plans.FindByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return s.provision(ctx, m, p, req.PaymentMethod, req.PaymentGatewayID, req.AutoRenew)
}

func (s *Service) provision(ctx context.Context, m *manager.Manager, p *plan.Plan,
	method string, gatewayID *string, autoRenew bool) (*Subscription, error) {
	if method == "" {
		method = "local"
	}

	now := time.Now()
	sub, err := s.repo.Create(ctx, &Subscription{
		GymManagerID:     m.ID,
		PlanID:           p.ID,
		StartDate:        now,
		EndDate:          addDuration(now, p.Duration, p.DurationUnit),
		Status:           StatusActive,
		PaymentMethod:    method,
		PaymentGatewayID: gatewayID,
		AmountCents:      p.PriceCents,
		AutoRenew:        autoRenew,
	})
	if err != nil {
		return nil, err
	}

	if err := s.managers.SetSubscription(ctx, m.ID, sub.ID, manager.StatusActive); err != nil {
		return nil, err
	}

	paidAt := now
	if _, err := s.payments.Create(ctx, payment.CreateInput{
		GymManagerID:     m.ID,
		Type:             payment.TypePlatform,
		RelatedID:        sub.ID,
		AmountCents:      p.PriceCents,
		PaymentMethod:    payment.Method(method),
		PaymentGatewayID: gatewayID,
		Status:           payment.StatusCompleted,
		PaidAt:           &paidAt,
		Description:      "Subscription to " + p.Name + " plan",
	}); err != nil {
		return nil, err
	}

	metrics.RecordSubscription("gym_manager")
	metrics.RecordPayment(string(payment.TypePlatform), method)

	if s.notifier != nil {
		if err := s.notifier.SendSubscriptionReceipt(ctx, m.Email, m.Name, p.Name,
			p.PriceCents, "EGP", sub.EndDate); err != nil {
			logger.Errorf("Failed to queue receipt email for %s: %v", m.Email, err)
		}
	}

	return sub, nil
}

// SubscribeResult is what the public storefront purchase returns.
type SubscribeResult struct {
	Subscription *Subscription
	Manager      *manager.Manager
	Token        string
}

// Subscribe handles the public purchase flow: the plan must be on sale, and
// the caller either registers a fresh account or proves it owns an existing
// one by password.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscribeResult, error) {
	p, err := s.plans.FindActiveByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	m, err := s.managers.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if !auth.CheckPassword(m.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
	case errors.Is(err, manager.ErrNotFound):
		passwordHash, hashErr := auth.HashPassword(req.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		m, err = s.managers.Create(ctx, manager.RegisterRequest{
			Name:    req.Name,
			Email:   req.Email,
			GymName: req.GymName,
			Phone:   req.Phone,
		}, passwordHash)
		if err != nil {
			return nil, err
		}
		if s.notifier != nil {
			if err := s.notifier.SendWelcome(ctx, m.Email, m.Name, m.GymName); err != nil {
				logger.Errorf("Failed to queue welcome email for %s: %v", m.Email, err)
			}
		}
	default:
		return nil, err
	}

	sub, err := s.provision(ctx, m, p, req.PaymentMethod, req.PaymentGatewayID, false)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(m.ID, m.Email, auth.RoleGymManager, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	// Reload so the response shows the mirrored status.
	if fresh, err := s.managers.FindByID(ctx, m.ID); err == nil {
		m = fresh
	}

	return &SubscribeResult{Subscription: sub, Manager: m, Token: token}, nil
}

// Update patches a subscription. A status change is mirrored onto the owning
// manager account when this is its current subscription.
func (s *Service) Update(ctx context.Context, id int, req UpdateRequest) (*Subscription, error) {
	sub, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := s.mirrorStatus(ctx, sub); err != nil {
			return nil, err
		}
	}

	return sub, nil
}

// Cancel is terminal: the subscription and the manager account both move to
// cancelled.
func (s *Service) Cancel(ctx context.Context, id int) (*Subscription, error) {
	sub, err := s.repo.SetStatus(ctx, id, StatusCancelled)
	if err != nil {
		return nil, err
	}

	if err := s.mirrorStatus(ctx, sub); err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionCancellation("gym_manager")
	return sub, nil
}

func (s *Service) mirrorStatus(ctx context.Context, sub *Subscription) error {
	m, err := s.managers.FindByID(ctx, sub.GymManagerID)
	if err != nil {
		return err
	}
	if m.CurrentSubscriptionID == nil || *m.CurrentSubscriptionID != sub.ID {
		return nil
	}
	return s.managers.SetSubscriptionStatus(ctx, sub.GymManagerID, manager.SubscriptionStatus(sub.Status))
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Subscription, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int) (*Subscription, error) {
	return s.repo.FindByID(ctx, id)
}
