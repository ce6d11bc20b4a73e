package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"calculators/internal/common/database"
	apperrors "calculators/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileRowColumns = []string{
	"user_id", "title", "first_name", "surname", "phone", "date_of_birth",
	"license_type", "license_period", "occupation", "street_address", "city", "county", "post_code", "driver_history",
}

func newMockStore(t *testing.T) (*ProfilePostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProfilePostgresStore(database.NewPostgresFromDB(db)), mock
}

func TestProfilePostgresStore_FindByUserID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)
		dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(profileRowColumns).
			AddRow("u1", "Mr", "Nam", "Nguyen", "0912345678", dob, "Full", 10, "Engineer",
				nil, "Hanoi", nil, "100000", nil)
		mock.ExpectQuery(`SELECT user_id, title, .* FROM broker_profiles WHERE user_id = \$1`).
			WithArgs("u1").
			WillReturnRows(rows)

		p, err := store.FindByUserID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Nguyen", p.Surname)
		assert.True(t, p.DateOfBirth.Equal(dob))
		assert.Nil(t, p.Address.StreetAddress)
		require.NotNil(t, p.Address.City)
		assert.Equal(t, "Hanoi", *p.Address.City)
		assert.Equal(t, "100000", *p.Address.PostCode)
		assert.Empty(t, p.DriverHistory)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`FROM broker_profiles WHERE user_id = \$1`).
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		_, err := store.FindByUserID(context.Background(), "nobody")
		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("backend failure", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`FROM broker_profiles`).WillReturnError(errors.New("connection reset"))

		_, err := store.FindByUserID(context.Background(), "u1")
		assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
		assert.Equal(t, "connection reset", errors.Unwrap(err).Error())
	})
}

func TestProfilePostgresStore_SaveAndUpdate(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "row written", affected: 1, expected: true},
		{name: "conflict or missing row", affected: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			p := testProfile("u1")

			mock.ExpectExec(`INSERT INTO broker_profiles .* ON CONFLICT \(user_id\) DO NOTHING`).
				WithArgs("u1", "Mr", "Nam", "Nguyen", "0912345678", p.DateOfBirth, "Full", 10, "Engineer",
					nil, "Hanoi", nil, nil, nil).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectExec(`UPDATE broker_profiles SET`).
				WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
					sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
					sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			saved, err := store.Save(context.Background(), p)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, saved)

			updated, err := store.Update(context.Background(), p)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, updated)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfilePostgresStore_Housekeeping(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM broker_profiles`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(`DELETE FROM broker_profiles WHERE user_id = \$1`).WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM broker_profiles`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	exists, err := store.Exists(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, exists)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	deleted, err := store.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, store.DeleteAll(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilePostgresStore_ExecFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`DELETE FROM broker_profiles`).WillReturnError(errors.New("read-only transaction"))

	_, err := store.Delete(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, apperrors.CodeOf(err))
}
