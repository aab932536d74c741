package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("payment not found")

const paymentColumns = `id, gym_manager_id, type, related_id, amount_cents, currency,
	payment_method, payment_gateway_id, status, paid_at, description, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, in CreateInput) (*Payment, error) {
	currency := in.Currency
	if currency == "" {
		currency = "EGP"
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}

	query := fmt.Sprintf(`
		INSERT INTO payments (gym_manager_id, type, related_id, amount_cents, currency,
			payment_method, payment_gateway_id, status, paid_at, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s
	`, paymentColumns)

	var p Payment
	err := r.db.GetContext(ctx, &p, query,
		in.GymManagerID, in.Type, in.RelatedID, in.AmountCents, currency,
		in.PaymentMethod, in.PaymentGatewayID, status, in.PaidAt, in.Description)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status Status, gatewayID *string) (*Payment, error) {
	query := fmt.Sprintf(`
		UPDATE payments
		SET status = $2,
		    payment_gateway_id = COALESCE($3, payment_gateway_id),
		    paid_at = CASE WHEN $2 = 'completed' AND paid_at IS NULL THEN NOW() ELSE paid_at END
		WHERE id = $1
		RETURNING %s
	`, paymentColumns)

	var p Payment
	if err := r.db.GetContext(ctx, &p, query, id, status, gatewayID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) list(ctx context.Context, conds []string, args []interface{}, filter ListFilter) ([]Payment, int, error) {
	n := len(args) + 1

	if filter.Type != "" {
		conds = append(conds, fmt.Sprintf("type = $%d", n))
		args = append(args, filter.Type)
		n++
	}
	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("status = $%d", n))
		args = append(args, filter.Status)
		n++
	}
	if filter.Method != "" {
		conds = append(conds, fmt.Sprintf("payment_method = $%d", n))
		args = append(args, filter.Method)
		n++
	}
	if filter.GymManagerID != 0 {
		conds = append(conds, fmt.Sprintf("gym_manager_id = $%d", n))
		args = append(args, filter.GymManagerID)
		n++
	}

	where := strings.Join(conds, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payments WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, paymentColumns, where, n, n+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *repository) ListAll(ctx context.Context, filter ListFilter) ([]Payment, int, error) {
	return r.list(ctx, []string{"1=1"}, []interface{}{}, filter)
}

func (r *repository) ListTenant(ctx context.Context, tenantID int, filter ListFilter) ([]Payment, int, error) {
	filter.GymManagerID = 0
	return r.list(ctx,
		[]string{"gym_manager_id = $1", "type = 'member_subscription'"},
		[]interface{}{tenantID}, filter)
}

func (r *repository) FindByID(ctx context.Context, id int) (*Payment, error) {
	var p Payment
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE id = $1`, paymentColumns)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindTenantByID(ctx context.Context, tenantID, id int) (*Payment, error) {
	var p Payment
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE id = $1 AND gym_manager_id = $2 AND type = 'member_subscription'
	`, paymentColumns)
	if err := r.db.GetContext(ctx, &p, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) OwnsMemberSubscription(ctx context.Context, tenantID, subscriptionID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM member_subscriptions
			WHERE id = $1 AND gym_manager_id = $2
		)
	`, subscriptionID, tenantID)
	return exists, err
}

func (r *repository) UpdateTenantStatus(ctx context.Context, tenantID, id int, status Status, gatewayID *string) (*Payment, error) {
	query := fmt.Sprintf(`
		UPDATE payments
		SET status = $3,
		    payment_gateway_id = COALESCE($4, payment_gateway_id),
		    paid_at = CASE WHEN $3 = 'completed' AND paid_at IS NULL THEN NOW() ELSE paid_at END
		WHERE id = $1 AND gym_manager_id = $2 AND type = 'member_subscription'
		RETURNING %s
	`, paymentColumns)

	var p Payment
	if err := r.db.GetContext(ctx, &p, query, id, tenantID, status, gatewayID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) PlatformRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM payments
		WHERE type = 'gym_manager_subscription' AND status = 'completed'
	`)
	return total, err
}

func (r *repository) PlatformRevenueStats(ctx context.Context) (*RevenueStats, error) {
	stats := &RevenueStats{ByMethod: map[string]int64{}}

	total, err := r.PlatformRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalCents = total

	rows, err := r.db.QueryxContext(ctx, `
		SELECT payment_method, COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM payments
		WHERE type = 'gym_manager_subscription' AND status = 'completed'
		GROUP BY payment_method
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var method string
		var cents int64
		if err := rows.Scan(&method, &cents); err != nil {
			return nil, err
		}
		stats.ByMethod[method] = cents
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byMonth := []MonthRevenue{}
	err = r.db.SelectContext(ctx, &byMonth, `
		SELECT to_char(date_trunc('month', paid_at), 'YYYY-MM') AS month,
		       COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM payments
		WHERE type = 'gym_manager_subscription' AND status = 'completed'
		  AND paid_at IS NOT NULL
		GROUP BY 1
		ORDER BY 1 DESC
		LIMIT 12
	`)
	if err != nil {
		return nil, err
	}
	stats.ByMonth = byMonth

	return stats, nil
}

func (r *repository) TenantRevenue(ctx context.Context, tenantID int) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM payments
		WHERE gym_manager_id = $1 AND type = 'member_subscription' AND status = 'completed'
	`, tenantID)
	return total, err
}

func (r *repository) TenantRevenueStats(ctx context.Context, tenantID int) (*RevenueStats, error) {
	stats := &RevenueStats{ByMethod: map[string]int64{}}

	total, err := r.TenantRevenue(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	stats.TotalCents = total

	rows, err := r.db.QueryxContext(ctx, `
		SELECT payment_method, COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM payments
		WHERE gym_manager_id = $1 AND type = 'member_subscription' AND status = 'completed'
		GROUP BY payment_method
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var method string
		var cents int64
		if err := rows.Scan(&method, &cents); err != nil {
			return nil, err
		}
		stats.ByMethod[method] = cents
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byMonth := []MonthRevenue{}
	err = r.db.SelectContext(ctx, &byMonth, `
		SELECT to_char(date_trunc('month', paid_at), 'YYYY-MM') AS month,
		       COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM payments
		WHERE gym_manager_id = $1 AND type = 'member_subscription' AND status = 'completed'
		  AND paid_at IS NOT NULL
		GROUP BY 1
		ORDER BY 1 DESC
		LIMIT 12
	`, tenantID)
	if err != nil {
		return nil, err
	}
	stats.ByMonth = byMonth

	return stats, nil
}
