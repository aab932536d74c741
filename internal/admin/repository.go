package admin

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash string) (*Admin, error) {
	query := `
		INSERT INTO admins (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at, updated_at
	`

	var admin Admin
	if err := r.db.GetContext(ctx, &admin, query, name, email, passwordHash); err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	var admin Admin
	err := r.db.GetContext(ctx, &admin, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM admins
		WHERE email = $1
	`, email)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Admin, error) {
	var admin Admin
	err := r.db.GetContext(ctx, &admin, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM admins
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`, email)
	return exists, err
}

func (r *repository) AdminExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM admins WHERE id = $1)`, id)
	return exists, err
}
