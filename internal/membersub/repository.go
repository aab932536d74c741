package membersub

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("member subscription not found")

const subscriptionColumns = `id, gym_manager_id, member_id, plan_id, plan_name, price_cents,
	start_date, end_date, status, payment_method, auto_renew, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sub *Subscription) (*Subscription, error) {
	query := fmt.Sprintf(`
		INSERT INTO member_subscriptions (gym_manager_id, member_id, plan_id, plan_name,
			price_cents, start_date, end_date, status, payment_method, auto_renew)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s
	`, subscriptionColumns)

	var created Subscription
	err := r.db.GetContext(ctx, &created, query,
		sub.GymManagerID, sub.MemberID, sub.PlanID, sub.PlanName,
		sub.PriceCents, sub.StartDate, sub.EndDate, sub.Status, sub.PaymentMethod, sub.AutoRenew)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByID(ctx context.Context, tenantID, id int) (*Subscription, error) {
	var sub Subscription
	query := fmt.Sprintf(`
		SELECT %s FROM member_subscriptions
		WHERE id = $1 AND gym_manager_id = $2
	`, subscriptionColumns)
	if err := r.db.GetContext(ctx, &sub, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repository) List(ctx context.Context, tenantID int, filter ListFilter) ([]Subscription, int, error) {
	conds := []string{"gym_manager_id = $1"}
	args := []interface{}{tenantID}
	n := 2

	if filter.MemberID != 0 {
		conds = append(conds, fmt.Sprintf("member_id = $%d", n))
		args = append(args, filter.MemberID)
		n++
	}
	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("status = $%d", n))
		args = append(args, filter.Status)
		n++
	}

	where := strings.Join(conds, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM member_subscriptions WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM member_subscriptions
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, subscriptionColumns, where, n, n+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	subs := []Subscription{}
	if err := r.db.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *repository) Update(ctx context.Context, tenantID, id int, req UpdateRequest) (*Subscription, error) {
	query := fmt.Sprintf(`
		UPDATE member_subscriptions
		SET status     = COALESCE($3, status),
		    auto_renew = COALESCE($4, auto_renew),
		    updated_at = NOW()
		WHERE id = $1 AND gym_manager_id = $2
		RETURNING %s
	`, subscriptionColumns)

	var sub Subscription
	if err := r.db.GetContext(ctx, &sub, query, id, tenantID, req.Status, req.AutoRenew); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) SetStatus(ctx context.Context, tenantID, id int, status Status) (*Subscription, error) {
	query := fmt.Sprintf(`
		UPDATE member_subscriptions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND gym_manager_id = $2
		RETURNING %s
	`, subscriptionColumns)

	var sub Subscription
	if err := r.db.GetContext(ctx, &sub, query, id, tenantID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) HasActiveForMember(ctx context.Context, tenantID, memberID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM member_subscriptions
			WHERE gym_manager_id = $1 AND member_id = $2
			  AND status = 'active' AND end_date >= NOW()
		)
	`, tenantID, memberID)
	return exists, err
}
