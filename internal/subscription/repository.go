package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("subscription not found")

const subscriptionColumns = `id, gym_manager_id, plan_id, start_date, end_date, status,
	payment_method, payment_gateway_id, amount_cents, auto_renew, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sub *Subscription) (*Subscription, error) {
	query := fmt.Sprintf(`
		INSERT INTO gym_manager_subscriptions (gym_manager_id, plan_id, start_date, end_date,
			status, payment_method, payment_gateway_id, amount_cents, auto_renew)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, subscriptionColumns)

	var created Subscription
	err := r.db.GetContext(ctx, &created, query,
		sub.GymManagerID, sub.PlanID, sub.StartDate, sub.EndDate,
		sub.Status, sub.PaymentMethod, sub.PaymentGatewayID, sub.AmountCents, sub.AutoRenew)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Subscription, error) {
	var sub Subscription
	query := fmt.Sprintf(`SELECT %s FROM gym_manager_subscriptions WHERE id = $1`, subscriptionColumns)
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Subscription, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}
	n := 1

	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("status = $%d", n))
		args = append(args, filter.Status)
		n++
	}
	if filter.GymManagerID != 0 {
		conds = append(conds, fmt.Sprintf("gym_manager_id = $%d", n))
		args = append(args, filter.GymManagerID)
		n++
	}

	where := strings.Join(conds, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM gym_manager_subscriptions WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM gym_manager_subscriptions
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

func (r *repository) Update(ctx context.Context, id int, req UpdateRequest) (*Subscription, error) {
	query := fmt.Sprintf(`
		UPDATE gym_manager_subscriptions
		SET status     = COALESCE($2, status),
		    auto_renew = COALESCE($3, auto_renew),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, subscriptionColumns)

	var sub Subscription
	if err := r.db.GetContext(ctx, &sub, query, id, req.Status, req.AutoRenew); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) SetStatus(ctx context.Context, id int, status Status) (*Subscription, error) {
	query := fmt.Sprintf(`
		UPDATE gym_manager_subscriptions
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, subscriptionColumns)

	var sub Subscription
	if err := r.db.GetContext(ctx, &sub, query, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &sub, nil
}
