package memberplan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("member plan not found")

const planColumns = `id, gym_manager_id, name, description, price_cents, duration,
	duration_unit, features, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tenantID int, req CreateRequest) (*MemberPlan, error) {
	unit := req.DurationUnit
	if unit == "" {
		unit = UnitMonths
	}
	features := req.Features
	if features == nil {
		features = []string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO member_plans (gym_manager_id, name, description, price_cents, duration, duration_unit, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, planColumns)

	var p MemberPlan
	err := r.db.GetContext(ctx, &p, query,
		tenantID, req.Name, req.Description, req.PriceCents, req.Duration, unit, pq.Array(features))
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) FindByID(ctx context.Context, tenantID, id int) (*MemberPlan, error) {
	var p MemberPlan
	query := fmt.Sprintf(`SELECT %s FROM member_plans WHERE id = $1 AND gym_manager_id = $2`, planColumns)
	if err := r.db.GetContext(ctx, &p, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindActiveByID(ctx context.Context, tenantID, id int) (*MemberPlan, error) {
	var p MemberPlan
	query := fmt.Sprintf(`
		SELECT %s FROM member_plans
		WHERE id = $1 AND gym_manager_id = $2 AND is_active = true
	`, planColumns)
	if err := r.db.GetContext(ctx, &p, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, tenantID int, activeOnly bool) ([]MemberPlan, error) {
	query := fmt.Sprintf(`SELECT %s FROM member_plans WHERE gym_manager_id = $1 ORDER BY price_cents ASC`, planColumns)
	if activeOnly {
		query = fmt.Sprintf(`
			SELECT %s FROM member_plans
			WHERE gym_manager_id = $1 AND is_active = true
			ORDER BY price_cents ASC
		`, planColumns)
	}

	plans := []MemberPlan{}
	if err := r.db.SelectContext(ctx, &plans, query, tenantID); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) Update(ctx context.Context, tenantID, id int, req UpdateRequest) (*MemberPlan, error) {
	var features interface{}
	if req.Features != nil {
		features = pq.Array(req.Features)
	}

	query := fmt.Sprintf(`
		UPDATE member_plans
		SET name          = COALESCE($3, name),
		    description   = COALESCE($4, description),
		    price_cents   = COALESCE($5, price_cents),
		    duration      = COALESCE($6, duration),
		    duration_unit = COALESCE($7, duration_unit),
		    features      = COALESCE($8, features),
		    is_active     = COALESCE($9, is_active),
		    updated_at    = NOW()
		WHERE id = $1 AND gym_manager_id = $2
		RETURNING %s
	`, planColumns)

	var p MemberPlan
	err := r.db.GetContext(ctx, &p, query,
		id, tenantID, req.Name, req.Description, req.PriceCents, req.Duration,
		req.DurationUnit, features, req.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM member_plans WHERE id = $1 AND gym_manager_id = $2`, id, tenantID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
