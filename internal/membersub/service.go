package membersub

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/member"
	"gymdesk/internal/memberplan"
	"gymdesk/internal/metrics"
	"gymdesk/internal/payment"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrPlanNotFound   = errors.New("member plan not found")
	// ErrManualFieldsRequired means a desk subscription came without a
	// catalog plan and is missing plan_name, price_cents or duration.
	ErrManualFieldsRequired = errors.New("plan_name, price_cents and duration are required without plan_id")
)

type Service struct {
	repo     Repository
	members  member.Repository
	plans    memberplan.Repository
	payments payment.Repository
}

func NewService(repo Repository, members member.Repository, plans memberplan.Repository,
	payments payment.Repository) *Service {
	return &Service{repo: repo, members: members, plans: plans, payments: payments}
}

func addDuration(t time.Time, d int, unit memberplan.DurationUnit) time.Time {
	switch unit {
	case memberplan.UnitDays:
		return t.AddDate(0, 0, d)
	case memberplan.UnitYears:
		return t.AddDate(d, 0, 0)
	default:
		return t.AddDate(0, d, 0)
	}
}

// Create sells a membership. Catalog mode requires an active plan owned by
// the gym; manual mode requires the terms inline and counts the duration in
// months. Payment is recorded as completed either way.
func (s *Service) Create(ctx context.Context, tenantID int, req CreateRequest) (*Subscription, error) {
	if _, err := s.members.FindByID(ctx, tenantID, req.MemberID); err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	var (
		planName   string
		priceCents int64
		duration   int
		unit       memberplan.DurationUnit
	)

	if req.PlanID != nil {
		p, err := s.plans.FindActiveByID(ctx, tenantID, *req.PlanID)
		if err != nil {
			if errors.Is(err, memberplan.ErrNotFound) {
				return nil, ErrPlanNotFound
			}
			return nil, err
		}
		planName = p.Name
		priceCents = p.PriceCents
		duration = p.Duration
		unit = p.DurationUnit
	} else {
		if req.PlanName == nil || req.PriceCents == nil || req.Duration == nil {
			return nil, ErrManualFieldsRequired
		}
		planName = *req.PlanName
		priceCents = *req.PriceCents
		duration = *req.Duration
		unit = memberplan.UnitMonths
	}

	method := req.PaymentMethod
	if method == "" {
		method = "cash"
	}

	now := time.Now()
	sub, err := s.repo.Create(ctx, &Subscription{
		GymManagerID:  tenantID,
		MemberID:      req.MemberID,
		PlanID:        req.PlanID,
		PlanName:      planName,
		PriceCents:    priceCents,
		StartDate:     now,
		EndDate:       addDuration(now, duration, unit),
		Status:        StatusActive,
		PaymentMethod: method,
		AutoRenew:     req.AutoRenew,
	})
	if err != nil {
		return nil, err
	}

	paidAt := now
	if _, err := s.payments.Create(ctx, payment.CreateInput{
		GymManagerID:  tenantID,
		Type:          payment.TypeTenant,
		RelatedID:     sub.ID,
		AmountCents:   priceCents,
		PaymentMethod: payment.Method(method),
		Status:        payment.StatusCompleted,
		PaidAt:        &paidAt,
		Description:   "Membership: " + planName,
	}); err != nil {
		return nil, err
	}

	metrics.RecordSubscription("member")
	metrics.RecordPayment(string(payment.TypeTenant), method)

	return sub, nil
}

func (s *Service) Update(ctx context.Context, tenantID, id int, req UpdateRequest) (*Subscription, error) {
	return s.repo.Update(ctx, tenantID, id, req)
}

func (s *Service) Cancel(ctx context.Context, tenantID, id int) (*Subscription, error) {
	sub, err := s.repo.SetStatus(ctx, tenantID, id, StatusCancelled)
	if err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionCancellation("member")
	return sub, nil
}

func (s *Service) List(ctx context.Context, tenantID int, filter ListFilter) ([]Subscription, int, error) {
	return s.repo.List(ctx, tenantID, filter)
}

func (s *Service) Get(ctx context.Context, tenantID, id int) (*Subscription, error) {
	return s.repo.FindByID(ctx, tenantID, id)
}
