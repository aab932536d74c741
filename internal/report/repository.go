package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("report not found")

const reportColumns = `id, gym_manager_id, type, title, data, period_start, period_end, generated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, tenantID int, reportType, title string,
	data interface{}, periodStart, periodEnd *time.Time) (*Report, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO reports (gym_manager_id, type, title, data, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, reportColumns)

	var rep Report
	if err := r.db.GetContext(ctx, &rep, query, tenantID, reportType, title, payload, periodStart, periodEnd); err != nil {
		return nil, err
	}

	return &rep, nil
}

func (r *repository) List(ctx context.Context, tenantID int, reportType string, limit int) ([]Report, error) {
	reports := []Report{}

	if reportType != "" {
		query := fmt.Sprintf(`
			SELECT %s FROM reports
			WHERE gym_manager_id = $1 AND type = $2
			ORDER BY generated_at DESC
			LIMIT $3
		`, reportColumns)
		if err := r.db.SelectContext(ctx, &reports, query, tenantID, reportType, limit); err != nil {
			return nil, err
		}
		return reports, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM reports
		WHERE gym_manager_id = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`, reportColumns)
	if err := r.db.SelectContext(ctx, &reports, query, tenantID, limit); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *repository) FindByID(ctx context.Context, tenantID, id int) (*Report, error) {
	var rep Report
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id = $1 AND gym_manager_id = $2`, reportColumns)
	if err := r.db.GetContext(ctx, &rep, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *repository) RevenueData(ctx context.Context, tenantID int, start, end time.Time) (*RevenueData, error) {
	data := &RevenueData{ByMethod: map[string]int64{}}

	err := r.db.QueryRowxContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0), COUNT(*)
		FROM payments
		WHERE gym_manager_id = $1 AND type = 'member_subscription' AND status = 'completed'
		  AND paid_at >= $2 AND paid_at <= $3
	`, tenantID, start, end).Scan(&data.TotalCents, &data.PaymentCount)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT payment_method, COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE gym_manager_id = $1 AND type = 'member_subscription' AND status = 'completed'
		  AND paid_at >= $2 AND paid_at <= $3
		GROUP BY payment_method
	`, tenantID, start, end)
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
		data.ByMethod[method] = cents
	}
	return data, rows.Err()
}

func (r *repository) MembersData(ctx context.Context, tenantID int) (*MembersData, error) {
	var data MembersData

	err := r.db.QueryRowxContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE NOT is_active)
		FROM gym_members
		WHERE gym_manager_id = $1
	`, tenantID).Scan(&data.TotalMembers, &data.ActiveMembers, &data.InactiveMembers)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowxContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'active' AND end_date >= NOW()),
		       COUNT(*) FILTER (WHERE status = 'expired' OR (status = 'active' AND end_date < NOW()))
		FROM member_subscriptions
		WHERE gym_manager_id = $1
	`, tenantID).Scan(&data.ActiveSubscriptions, &data.ExpiredSubscriptions)
	if err != nil {
		return nil, err
	}

	return &data, nil
}

func (r *repository) AttendanceData(ctx context.Context, tenantID int, start, end time.Time) (*AttendanceData, error) {
	data := &AttendanceData{TopMembers: []MemberVisits{}, Daily: []DayCount{}}

	err := r.db.GetContext(ctx, &data.TotalCheckIns, `
		SELECT COUNT(*) FROM attendance
		WHERE gym_manager_id = $1 AND check_in >= $2 AND check_in <= $3
	`, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &data.TopMembers, `
		SELECT a.member_id, m.name, COUNT(*) AS visits
		FROM attendance a
		JOIN gym_members m ON m.id = a.member_id
		WHERE a.gym_manager_id = $1 AND a.check_in >= $2 AND a.check_in <= $3
		GROUP BY a.member_id, m.name
		ORDER BY visits DESC
		LIMIT 10
	`, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &data.Daily, `
		SELECT to_char(check_in::date, 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM attendance
		WHERE gym_manager_id = $1 AND check_in >= $2 AND check_in <= $3
		GROUP BY 1
		ORDER BY 1
	`, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	return data, nil
}
