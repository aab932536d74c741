package plan

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dbx := sqlx.NewDb(db, "sqlmock")
	return NewRepository(dbx), mock, func() { db.Close() }
}

func planRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price_cents", "duration", "duration_unit",
		"features", "max_members", "is_active", "created_at", "updated_at",
	})
}

func TestCreatePlanDefaults(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery(`INSERT INTO subscription_plans.*`).
		WithArgs("Basic", "", int64(49900), 1, UnitMonths, pq.Array([]string{}), -1).
		WillReturnRows(planRows().
			AddRow(1, "Basic", "", int64(49900), 1, "months",
				"{}", -1, true, time.Now(), time.Now()))

	p, err := repo.Create(context.Background(), CreateRequest{
		Name:       "Basic",
		PriceCents: 49900,
		Duration:   1,
	})
	assert.NoError(t, err)
	assert.Equal(t, UnitMonths, p.DurationUnit)
	assert.Equal(t, -1, p.MaxMembers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActivePlansSortedByPrice(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT .* FROM subscription_plans WHERE is_active = true ORDER BY price_cents ASC`).
		WillReturnRows(planRows().
			AddRow(1, "Basic", "", int64(49900), 1, "months", "{}", -1, true, time.Now(), time.Now()).
			AddRow(2, "Pro", "", int64(99900), 1, "months", "{}", -1, true, time.Now(), time.Now()))

	plans, err := repo.List(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, plans, 2)
	assert.LessOrEqual(t, plans[0].PriceCents, plans[1].PriceCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActivePlanSkipsRetired(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT .* FROM subscription_plans WHERE id = \$1 AND is_active = true`).
		WithArgs(3).
		WillReturnRows(planRows())

	_, err := repo.FindActiveByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePlanNotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec(`DELETE FROM subscription_plans WHERE id = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
