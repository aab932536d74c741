package membersub

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/member"
	"gymdesk/internal/memberplan"
	"gymdesk/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, sub *Subscription) (*Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *mockRepo) FindByID(ctx context.Context, tenantID, id int) (*Subscription, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, tenantID int, filter ListFilter) ([]Subscription, int, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]Subscription), args.Int(1), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, tenantID, id int, req UpdateRequest) (*Subscription, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *mockRepo) SetStatus(ctx context.Context, tenantID, id int, status Status) (*Subscription, error) {
	args := m.Called(ctx, tenantID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *mockRepo) HasActiveForMember(ctx context.Context, tenantID, memberID int) (bool, error) {
	args := m.Called(ctx, tenantID, memberID)
	return args.Bool(0), args.Error(1)
}

type mockMemberRepo struct{ mock.Mock }

func (m *mockMemberRepo) Create(ctx context.Context, tenantID int, req member.CreateRequest) (*member.Member, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *mockMemberRepo) FindByID(ctx context.Context, tenantID, id int) (*member.Member, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *mockMemberRepo) List(ctx context.Context, tenantID int, filter member.ListFilter) ([]member.Member, int, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]member.Member), args.Int(1), args.Error(2)
}

func (m *mockMemberRepo) Update(ctx context.Context, tenantID, id int, req member.UpdateRequest) (*member.Member, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *mockMemberRepo) Delete(ctx context.Context, tenantID, id int) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type mockPlanRepo struct{ mock.Mock }

func (m *mockPlanRepo) Create(ctx context.Context, tenantID int, req memberplan.CreateRequest) (*memberplan.MemberPlan, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberplan.MemberPlan), args.Error(1)
}

func (m *mockPlanRepo) FindByID(ctx context.Context, tenantID, id int) (*memberplan.MemberPlan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberplan.MemberPlan), args.Error(1)
}

func (m *mockPlanRepo) FindActiveByID(ctx context.Context, tenantID, id int) (*memberplan.MemberPlan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberplan.MemberPlan), args.Error(1)
}

func (m *mockPlanRepo) List(ctx context.Context, tenantID int, activeOnly bool) ([]memberplan.MemberPlan, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	return args.Get(0).([]memberplan.MemberPlan), args.Error(1)
}

func (m *mockPlanRepo) Update(ctx context.Context, tenantID, id int, req memberplan.UpdateRequest) (*memberplan.MemberPlan, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberplan.MemberPlan), args.Error(1)
}

func (m *mockPlanRepo) Delete(ctx context.Context, tenantID, id int) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, in payment.CreateInput) (*payment.Payment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, id int, status payment.Status, gatewayID *string) (*payment.Payment, error) {
	args := m.Called(ctx, id, status, gatewayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListAll(ctx context.Context, filter payment.ListFilter) ([]payment.Payment, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payment.Payment), args.Int(1), args.Error(2)
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id int) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) PlatformRevenue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRepo) ListTenant(ctx context.Context, tenantID int, filter payment.ListFilter) ([]payment.Payment, int, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]payment.Payment), args.Int(1), args.Error(2)
}

func (m *mockPaymentRepo) FindTenantByID(ctx context.Context, tenantID, id int) (*payment.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) PlatformRevenueStats(ctx context.Context) (*payment.RevenueStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.RevenueStats), args.Error(1)
}

func (m *mockPaymentRepo) OwnsMemberSubscription(ctx context.Context, tenantID, subscriptionID int) (bool, error) {
	args := m.Called(ctx, tenantID, subscriptionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) UpdateTenantStatus(ctx context.Context, tenantID, id int, status payment.Status, gatewayID *string) (*payment.Payment, error) {
	args := m.Called(ctx, tenantID, id, status, gatewayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) TenantRevenue(ctx context.Context, tenantID int) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRepo) TenantRevenueStats(ctx context.Context, tenantID int) (*payment.RevenueStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.RevenueStats), args.Error(1)
}

func newTestService() (*Service, *mockRepo, *mockMemberRepo, *mockPlanRepo, *mockPaymentRepo) {
	repo := &mockRepo{}
	members := &mockMemberRepo{}
	plans := &mockPlanRepo{}
	payments := &mockPaymentRepo{}
	return NewService(repo, members, plans, payments), repo, members, plans, payments
}

func TestCreateManualMembershipCountsMonths(t *testing.T) {
	svc, repo, members, _, payments := newTestService()
	ctx := context.Background()

	planName := "Walk-in special"
	price := int64(20000)
	duration := 2

	members.On("FindByID", ctx, 7, 11).Return(&member.Member{ID: 11, GymManagerID: 7}, nil)

	repo.On("Create", ctx, mock.MatchedBy(func(sub *Subscription) bool {
		// Manual terms always count in months, even for short durations.
		expectedEnd := sub.StartDate.AddDate(0, duration, 0)
		return sub.PlanID == nil && sub.PlanName == planName &&
			sub.PriceCents == price && sub.EndDate.Equal(expectedEnd) &&
			sub.PaymentMethod == "cash"
	})).Return(&Subscription{ID: 5, GymManagerID: 7, MemberID: 11, PlanName: planName, PriceCents: price}, nil)

	payments.On("Create", ctx, mock.MatchedBy(func(in payment.CreateInput) bool {
		return in.Type == payment.TypeTenant && in.Status == payment.StatusCompleted &&
			in.AmountCents == price && in.RelatedID == 5
	})).Return(&payment.Payment{ID: 1}, nil)

	sub, err := svc.Create(ctx, 7, CreateRequest{
		MemberID:   11,
		PlanName:   &planName,
		PriceCents: &price,
		Duration:   &duration,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, sub.ID)
	repo.AssertExpectations(t)
	payments.AssertExpectations(t)
}

func TestCreateManualMembershipMissingTerms(t *testing.T) {
	svc, _, members, _, _ := newTestService()
	ctx := context.Background()

	price := int64(20000)
	members.On("FindByID", ctx, 7, 11).Return(&member.Member{ID: 11, GymManagerID: 7}, nil)

	_, err := svc.Create(ctx, 7, CreateRequest{MemberID: 11, PriceCents: &price})
	assert.ErrorIs(t, err, ErrManualFieldsRequired)
}

func TestCreateCatalogMembershipUsesPlanTerms(t *testing.T) {
	svc, repo, members, plans, payments := newTestService()
	ctx := context.Background()

	planID := 3
	members.On("FindByID", ctx, 7, 11).Return(&member.Member{ID: 11, GymManagerID: 7}, nil)
	plans.On("FindActiveByID", ctx, 7, 3).Return(&memberplan.MemberPlan{
		ID: 3, GymManagerID: 7, Name: "Gold", PriceCents: 30000,
		Duration: 10, DurationUnit: memberplan.UnitDays, IsActive: true,
	}, nil)

	repo.On("Create", ctx, mock.MatchedBy(func(sub *Subscription) bool {
		expectedEnd := sub.StartDate.AddDate(0, 0, 10)
		return sub.PlanID != nil && *sub.PlanID == 3 && sub.PlanName == "Gold" &&
			sub.PriceCents == 30000 && sub.EndDate.Equal(expectedEnd)
	})).Return(&Subscription{ID: 6, GymManagerID: 7, MemberID: 11, PlanID: &planID, PlanName: "Gold"}, nil)

	payments.On("Create", ctx, mock.AnythingOfType("payment.CreateInput")).
		Return(&payment.Payment{ID: 2}, nil)

	sub, err := svc.Create(ctx, 7, CreateRequest{MemberID: 11, PlanID: &planID})
	require.NoError(t, err)
	assert.Equal(t, "Gold", sub.PlanName)
	repo.AssertExpectations(t)
}

func TestCreateCatalogMembershipRejectsRetiredPlan(t *testing.T) {
	svc, _, members, plans, _ := newTestService()
	ctx := context.Background()

	planID := 3
	members.On("FindByID", ctx, 7, 11).Return(&member.Member{ID: 11, GymManagerID: 7}, nil)
	plans.On("FindActiveByID", ctx, 7, 3).Return(nil, memberplan.ErrNotFound)

	_, err := svc.Create(ctx, 7, CreateRequest{MemberID: 11, PlanID: &planID})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestCreateMembershipForForeignMember(t *testing.T) {
	svc, _, members, _, _ := newTestService()
	ctx := context.Background()

	members.On("FindByID", ctx, 8, 11).Return(nil, member.ErrNotFound)

	planID := 3
	_, err := svc.Create(ctx, 8, CreateRequest{MemberID: 11, PlanID: &planID})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCancelMembership(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	ctx := context.Background()

	repo.On("SetStatus", ctx, 7, 5, StatusCancelled).
		Return(&Subscription{ID: 5, Status: StatusCancelled, EndDate: time.Now()}, nil)

	sub, err := svc.Cancel(ctx, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, sub.Status)
}
