package manager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/auth"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("gym manager not found")

const managerColumns = `id, name, email, password_hash, gym_name, phone, address,
	is_active, subscription_status, current_subscription_id, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req RegisterRequest, passwordHash string) (*Manager, error) {
	query := fmt.Sprintf(`
		INSERT INTO gym_managers (name, email, password_hash, gym_name, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, managerColumns)

	var m Manager
	err := r.db.GetContext(ctx, &m, query,
		req.Name, req.Email, passwordHash, req.GymName, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Manager, error) {
	var m Manager
	query := fmt.Sprintf(`SELECT %s FROM gym_managers WHERE email = $1`, managerColumns)
	if err := r.db.GetContext(ctx, &m, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Manager, error) {
	var m Manager
	query := fmt.Sprintf(`SELECT %s FROM gym_managers WHERE id = $1`, managerColumns)
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM gym_managers WHERE email = $1)`, email)
	return exists, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Manager, int, error) {
	conds := []string{"1=1"}
	args := []interface{}{}
	n := 1

	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR gym_name ILIKE $%d)", n, n, n))
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("subscription_status = $%d", n))
		args = append(args, filter.Status)
		n++
	}

	where := strings.Join(conds, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM gym_managers WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM gym_managers
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, managerColumns, where, n, n+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	managers := []Manager{}
	if err := r.db.SelectContext(ctx, &managers, query, args...); err != nil {
		return nil, 0, err
	}

	return managers, total, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateRequest) (*Manager, error) {
	query := fmt.Sprintf(`
		UPDATE gym_managers
		SET name      = COALESCE($2, name),
		    gym_name  = COALESCE($3, gym_name),
		    phone     = COALESCE($4, phone),
		    address   = COALESCE($5, address),
		    is_active = COALESCE($6, is_active),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, managerColumns)

	var m Manager
	err := r.db.GetContext(ctx, &m, query, id, req.Name, req.GymName, req.Phone, req.Address, req.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gym_managers WHERE id = $1`, id)
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

func (r *repository) SetSubscription(ctx context.Context, id int, subscriptionID int, status SubscriptionStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE gym_managers
		SET current_subscription_id = $2, subscription_status = $3, updated_at = NOW()
		WHERE id = $1
	`, id, subscriptionID, status)
	return err
}

func (r *repository) SetSubscriptionStatus(ctx context.Context, id int, status SubscriptionStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE gym_managers
		SET subscription_status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, status)
	return err
}

func (r *repository) ManagerGate(ctx context.Context, id int) (*auth.ManagerGate, error) {
	var gate auth.ManagerGate
	err := r.db.QueryRowxContext(ctx, `
		SELECT id, is_active, subscription_status
		FROM gym_managers
		WHERE id = $1
	`, id).Scan(&gate.ID, &gate.IsActive, &gate.SubscriptionStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &gate, nil
}
