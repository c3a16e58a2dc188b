// Package store implements the credential store and profile persistence on
// top of PostgreSQL.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/medvault/internal/db"
	"github.com/vaughan-dsouza/medvault/internal/models"
)

// Postgres implements models.Store.
type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Users() models.UserRepository {
	return NewUserRepository(s.db)
}

func (s *Postgres) WithTx(ctx context.Context, fn func(ctx context.Context, r models.Repositories) error) error {
	return db.WithTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, repositories(tx))
	})
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func repositories(q db.DBTX) models.Repositories {
	return models.Repositories{
		Users:    NewUserRepository(q),
		Patients: NewPatientRepository(q),
		Doctors:  NewDoctorRepository(q),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
