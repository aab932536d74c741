package manager

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dbx := sqlx.NewDb(db, "sqlmock")
	return NewRepository(dbx), mock, func() { db.Close() }
}

func managerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "gym_name", "phone", "address",
		"is_active", "subscription_status", "current_subscription_id", "created_at", "updated_at",
	})
}

func TestCreateManagerStartsExpired(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery(`INSERT INTO gym_managers.*`).
		WithArgs("Mona", "mona@ironworks.test", "hash", "Iron Works", nil, nil).
		WillReturnRows(managerRows().
			AddRow(7, "Mona", "mona@ironworks.test", "hash", "Iron Works", nil, nil,
				true, "expired", nil, time.Now(), time.Now()))

	m, err := repo.Create(context.Background(), RegisterRequest{
		Name:    "Mona",
		Email:   "mona@ironworks.test",
		GymName: "Iron Works",
	}, "hash")
	assert.NoError(t, err)
	assert.Equal(t, 7, m.ID)
	assert.Equal(t, StatusExpired, m.SubscriptionStatus)
	assert.Nil(t, m.CurrentSubscriptionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindManagerByEmailNotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT .* FROM gym_managers WHERE email = \$1`).
		WithArgs("nobody@gymdesk.test").
		WillReturnRows(managerRows())

	_, err := repo.FindByEmail(context.Background(), "nobody@gymdesk.test")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListManagersWithSearchAndStatus(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM gym_managers WHERE .*`).
		WithArgs("%iron%", "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT .* FROM gym_managers\s+WHERE .* ORDER BY created_at DESC`).
		WithArgs("%iron%", "active", 10, 0).
		WillReturnRows(managerRows().
			AddRow(7, "Mona", "mona@ironworks.test", "hash", "Iron Works", nil, nil,
				true, "active", 3, time.Now(), time.Now()))

	managers, total, err := repo.List(context.Background(), ListFilter{
		Search: "iron",
		Status: "active",
		Page:   1,
		Limit:  10,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, managers, 1)
	assert.Equal(t, "Iron Works", managers[0].GymName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSubscriptionMirrorsStatus(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec(`UPDATE gym_managers\s+SET current_subscription_id = \$2, subscription_status = \$3.*`).
		WithArgs(7, 42, StatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetSubscription(context.Background(), 7, 42, StatusActive)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteManagerNotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec(`DELETE FROM gym_managers WHERE id = \$1`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManagerGateMissingAccount(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT id, is_active, subscription_status\s+FROM gym_managers\s+WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "subscription_status"}))

	gate, err := repo.ManagerGate(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, gate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
