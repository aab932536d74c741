package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("member not found")

const memberColumns = `id, gym_manager_id, name, phone, email, date_of_birth, gender,
	address, emergency_contact, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tenantID int, req CreateRequest) (*Member, error) {
	query := fmt.Sprintf(`
		INSERT INTO gym_members (gym_manager_id, name, phone, email, date_of_birth, gender, address, emergency_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, memberColumns)

	var m Member
	err := r.db.GetContext(ctx, &m, query,
		tenantID, req.Name, req.Phone, req.Email, req.DateOfBirth, req.Gender, req.Address, req.EmergencyContact)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, tenantID, id int) (*Member, error) {
	var m Member
	query := fmt.Sprintf(`SELECT %s FROM gym_members WHERE id = $1 AND gym_manager_id = $2`, memberColumns)
	if err := r.db.GetContext(ctx, &m, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) List(ctx context.Context, tenantID int, filter ListFilter) ([]Member, int, error) {
	conds := []string{"gym_manager_id = $1"}
	args := []interface{}{tenantID}
	n := 2

	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n))
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	if filter.IsActive != nil {
		conds = append(conds, fmt.Sprintf("is_active = $%d", n))
		args = append(args, *filter.IsActive)
		n++
	}

	where := strings.Join(conds, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM gym_members WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM gym_members
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, memberColumns, where, n, n+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *repository) Update(ctx context.Context, tenantID, id int, req UpdateRequest) (*Member, error) {
	query := fmt.Sprintf(`
		UPDATE gym_members
		SET name              = COALESCE($3, name),
		    phone             = COALESCE($4, phone),
		    email             = COALESCE($5, email),
		    date_of_birth     = COALESCE($6, date_of_birth),
		    gender            = COALESCE($7, gender),
		    address           = COALESCE($8, address),
		    emergency_contact = COALESCE($9, emergency_contact),
		    is_active         = COALESCE($10, is_active),
		    updated_at        = NOW()
		WHERE id = $1 AND gym_manager_id = $2
		RETURNING %s
	`, memberColumns)

	var m Member
	err := r.db.GetContext(ctx, &m, query,
		id, tenantID, req.Name, req.Phone, req.Email, req.DateOfBirth, req.Gender,
		req.Address, req.EmergencyContact, req.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gym_members WHERE id = $1 AND gym_manager_id = $2`, id, tenantID)
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
