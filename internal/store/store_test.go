package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/medvault/internal/models"
)

var _ models.Store = (*Postgres)(nil)

func TestPostgres_WithTx_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`INSERT INTO doctors`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	err := s.WithTx(context.Background(), func(ctx context.Context, r models.Repositories) error {
		u := &models.User{Email: "d@example.com", Role: models.RoleDoctor}
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		return r.Doctors.Create(ctx, &models.Doctor{UserID: u.ID})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_WithTx_RollsBackOnProfileFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgres(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`INSERT INTO patients`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.WithTx(context.Background(), func(ctx context.Context, r models.Repositories) error {
		u := &models.User{Email: "p@example.com", Role: models.RolePatient}
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		return r.Patients.Create(ctx, &models.Patient{UserID: u.ID})
	})
	require.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Ping(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer raw.Close()

	mock.ExpectPing().WillReturnError(errors.New("gone"))
	s := NewPostgres(sqlxNew(raw))
	assert.EqualError(t, s.Ping(context.Background()), "gone")
}

func sqlxNew(raw *sql.DB) *sqlx.DB { return sqlx.NewDb(raw, "sqlmock") }
