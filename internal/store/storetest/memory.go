// Package storetest provides an in-memory models.Store for tests.
package storetest

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/vaughan-dsouza/medvault/internal/models"
)

var _ models.Store = (*Memory)(nil)

// Memory is an in-process models.Store. Transactions are serialized and
// operate on a copy of the data that replaces the original only on commit.
type Memory struct {
	mu   sync.Mutex
	data memData
}

type memData struct {
	users    map[string]models.User
	patients map[int64]models.Patient
	doctors  map[int64]models.Doctor
	userSeq  int64
	profSeq  int64
}

func NewMemory() *Memory {
	return &Memory{data: memData{
		users:    map[string]models.User{},
		patients: map[int64]models.Patient{},
		doctors:  map[int64]models.Doctor{},
	}}
}

func (d memData) clone() memData {
	c := d
	c.users = maps.Clone(d.users)
	c.patients = maps.Clone(d.patients)
	c.doctors = maps.Clone(d.doctors)
	return c
}

func (m *Memory) Users() models.UserRepository {
	return &memUsers{lock: &m.mu, data: &m.data}
}

func (m *Memory) WithTx(ctx context.Context, fn func(ctx context.Context, r models.Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.data.clone()
	repos := models.Repositories{
		Users:    &memUsers{data: &work},
		Patients: &memPatients{data: &work},
		Doctors:  &memDoctors{data: &work},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	m.data = work
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// PatientByUserID returns the patient profile linked to userID.
func (m *Memory) PatientByUserID(userID int64) (models.Patient, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data.patients[userID]
	return p, ok
}

// DoctorByUserID returns the doctor profile linked to userID.
func (m *Memory) DoctorByUserID(userID int64) (models.Doctor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data.doctors[userID]
	return d, ok
}

// UserCount reports how many users are stored.
func (m *Memory) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data.users)
}

// memUsers locks only when lock is set; inside a transaction the caller
// already holds it.
type memUsers struct {
	lock sync.Locker
	data *memData
}

func (r *memUsers) guard() func() {
	if r.lock == nil {
		return func() {}
	}
	r.lock.Lock()
	return r.lock.Unlock
}

func (r *memUsers) Create(_ context.Context, user *models.User) error {
	defer r.guard()()
	if _, ok := r.data.users[user.Email]; ok {
		return models.ErrDuplicateEmail
	}
	r.data.userSeq++
	user.ID = r.data.userSeq
	user.CreatedAt = time.Now().UTC()
	r.data.users[user.Email] = *user
	return nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	defer r.guard()()
	u, ok := r.data.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	defer r.guard()()
	_, ok := r.data.users[email]
	return ok, nil
}

type memPatients struct {
	data *memData
}

func (r *memPatients) Create(_ context.Context, p *models.Patient) error {
	r.data.profSeq++
	p.ID = r.data.profSeq
	r.data.patients[p.UserID] = *p
	return nil
}

type memDoctors struct {
	data *memData
}

func (r *memDoctors) Create(_ context.Context, d *models.Doctor) error {
	r.data.profSeq++
	d.ID = r.data.profSeq
	r.data.doctors[d.UserID] = *d
	return nil
}
