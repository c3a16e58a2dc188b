package models

import "context"

// UserRepository persists users. Create fills in ID and CreatedAt and
// returns ErrDuplicateEmail when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *Patient) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *Doctor) error
}

// Repositories is a set of repositories bound to the same database handle.
type Repositories struct {
	Users    UserRepository
	Patients PatientRepository
	Doctors  DoctorRepository
}

// Store is the credential store. WithTx runs fn against repositories that
// share one transaction: it commits when fn returns nil and rolls back
// otherwise.
type Store interface {
	Users() UserRepository
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Ping(ctx context.Context) error
}
