package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("attendance record not found")

const recordColumns = `id, gym_manager_id, member_id, check_in, check_out,
	duration_minutes, notes, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tenantID, memberID int, notes *string) (*Record, error) {
	query := fmt.Sprintf(`
		INSERT INTO attendance (gym_manager_id, member_id, notes)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, recordColumns)

	var rec Record
	if err := r.db.GetContext(ctx, &rec, query, tenantID, memberID, notes); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) FindOpen(ctx context.Context, tenantID, id int) (*Record, error) {
	var rec Record
	query := fmt.Sprintf(`
		SELECT %s FROM attendance
		WHERE id = $1 AND gym_manager_id = $2 AND check_out IS NULL
	`, recordColumns)
	if err := r.db.GetContext(ctx, &rec, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) Close(ctx context.Context, tenantID, id int, checkOut time.Time, durationMinutes int) (*Record, error) {
	query := fmt.Sprintf(`
		UPDATE attendance
		SET check_out = $3, duration_minutes = $4
		WHERE id = $1 AND gym_manager_id = $2 AND check_out IS NULL
		RETURNING %s
	`, recordColumns)

	var rec Record
	if err := r.db.GetContext(ctx, &rec, query, id, tenantID, checkOut, durationMinutes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &rec, nil
}

func (r *repository) List(ctx context.Context, tenantID int, filter ListFilter) ([]Record, int, error) {
	conds := []string{"gym_manager_id = $1"}
	args := []interface{}{tenantID}
	n := 2

	if filter.MemberID != 0 {
		conds = append(conds, fmt.Sprintf("member_id = $%d", n))
		args = append(args, filter.MemberID)
		n++
	}
	if filter.Date != "" {
		conds = append(conds, fmt.Sprintf("check_in::date = $%d", n))
		args = append(args, filter.Date)
		n++
	}

	where := strings.Join(conds, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM attendance
		WHERE %s
		ORDER BY check_in DESC
		LIMIT $%d OFFSET $%d
	`, recordColumns, where, n, n+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	records := []Record{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *repository) MemberHistory(ctx context.Context, tenantID, memberID, page, limit int) ([]Record, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM attendance WHERE gym_manager_id = $1 AND member_id = $2`,
		tenantID, memberID)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM attendance
		WHERE gym_manager_id = $1 AND member_id = $2
		ORDER BY check_in DESC
		LIMIT $3 OFFSET $4
	`, recordColumns)

	records := []Record{}
	if err := r.db.SelectContext(ctx, &records, query, tenantID, memberID, limit, (page-1)*limit); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
