package attendance

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/member"
	"gymdesk/internal/metrics"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	// ErrNoActiveSubscription means the member exists but holds no active,
	// unexpired membership. The door stays closed.
	ErrNoActiveSubscription = errors.New("member has no active subscription")
)

// SubscriptionChecker is the slice of the membership store check-in needs.
type SubscriptionChecker interface {
	HasActiveForMember(ctx context.Context, tenantID, memberID int) (bool, error)
}

type Service struct {
	repo    Repository
	members member.Repository
	subs    SubscriptionChecker
}

func NewService(repo Repository, members member.Repository, subs SubscriptionChecker) *Service {
	return &Service{repo: repo, members: members, subs: subs}
}

// CheckIn opens a visit. The member must belong to the gym, be active, and
// hold a live membership. Nothing stops a member from having several open
// visits; the desk closes them one by one.
func (s *Service) CheckIn(ctx context.Context, tenantID int, req CheckInRequest) (*Record, error) {
	m, err := s.members.FindByID(ctx, tenantID, req.MemberID)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !m.IsActive {
		return nil, ErrMemberNotFound
	}

	active, err := s.subs.HasActiveForMember(ctx, tenantID, req.MemberID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrNoActiveSubscription
	}

	rec, err := s.repo.Create(ctx, tenantID, req.MemberID, req.Notes)
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckIn()
	return rec, nil
}

// CheckOut closes a visit. The duration is whole elapsed minutes, rounded
// down. Closing an already closed record reports not found.
func (s *Service) CheckOut(ctx context.Context, tenantID, id int) (*Record, error) {
	rec, err := s.repo.FindOpen(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	minutes := int(now.Sub(rec.CheckIn).Minutes())
	if minutes < 0 {
		minutes = 0
	}

	closed, err := s.repo.Close(ctx, tenantID, id, now, minutes)
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckOut()
	return closed, nil
}

func (s *Service) List(ctx context.Context, tenantID int, filter ListFilter) ([]Record, int, error) {
	return s.repo.List(ctx, tenantID, filter)
}

func (s *Service) MemberHistory(ctx context.Context, tenantID, memberID, page, limit int) ([]Record, int, error) {
	if _, err := s.members.FindByID(ctx, tenantID, memberID); err != nil {
		if errors.Is(err, member.ErrNotFound) {
			return nil, 0, ErrMemberNotFound
		}
		return nil, 0, err
	}
	return s.repo.MemberHistory(ctx, tenantID, memberID, page, limit)
}
