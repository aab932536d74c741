package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("plan not found")

const planColumns = `id, name, description, price_cents, duration, duration_unit,
	features, max_members, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreateRequest) (*Plan, error) {
	unit := req.DurationUnit
	if unit == "" {
		unit = UnitMonths
	}
	maxMembers := -1
	if req.MaxMembers != nil {
		maxMembers = *req.MaxMembers
	}
	features := req.Features
	if features == nil {
		features = []string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO subscription_plans (name, description, price_cents, duration, duration_unit, features, max_members)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, planColumns)

	var p Plan
	err := r.db.GetContext(ctx, &p, query,
		req.Name, req.Description, req.PriceCents, req.Duration, unit, pq.Array(features), maxMembers)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Plan, error) {
	var p Plan
	query := fmt.Sprintf(`SELECT %s FROM subscription_plans WHERE id = $1`, planColumns)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindActiveByID(ctx context.Context, id int) (*Plan, error) {
	var p Plan
	query := fmt.Sprintf(`SELECT %s FROM subscription_plans WHERE id = $1 AND is_active = true`, planColumns)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscription_plans ORDER BY price_cents ASC`, planColumns)
	if activeOnly {
		query = fmt.Sprintf(`SELECT %s FROM subscription_plans WHERE is_active = true ORDER BY price_cents ASC`, planColumns)
	}

	plans := []Plan{}
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateRequest) (*Plan, error) {
	var features interface{}
	if req.Features != nil {
		features = pq.Array(req.Features)
	}

	query := fmt.Sprintf(`
		UPDATE subscription_plans
		SET name          = COALESCE($2, name),
		    description   = COALESCE($3, description),
		    price_cents   = COALESCE($4, price_cents),
		    duration      = COALESCE($5, duration),
		    duration_unit = COALESCE($6, duration_unit),
		    features      = COALESCE($7, features),
		    max_members   = COALESCE($8, max_members),
		    is_active     = COALESCE($9, is_active),
		    updated_at    = NOW()
		WHERE id = $1
		RETURNING %s
	`, planColumns)

	var p Plan
	err := r.db.GetContext(ctx, &p, query,
		id, req.Name, req.Description, req.PriceCents, req.Duration, req.DurationUnit,
		features, req.MaxMembers, req.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscription_plans WHERE id = $1`, id)
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
