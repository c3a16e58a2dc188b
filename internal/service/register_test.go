package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/medvault/internal/models"
	"github.com/vaughan-dsouza/medvault/internal/service"
	"github.com/vaughan-dsouza/medvault/internal/store/storetest"
)

func TestRegister_Patient(t *testing.T) {
	env := newTestEnv(t, nil)
	env.clock.t = time.Date(2002, 1, 1, 8, 0, 0, 0, time.UTC)

	u, err := env.svc.Register(context.Background(), service.RegisterInput{
		Email:            "pat@example.com",
		Password:         "password123",
		Name:             "Pat",
		Role:             "Patient",
		Phone:            strPtr("555-0100"),
		Address:          strPtr("1 Main St"),
		DateOfBirth:      strPtr("2000-01-01"),
		EmergencyContact: strPtr("Mom 555-0199"),
		BloodGroup:       strPtr("O+"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, u.Role)
	assert.NotEqual(t, "password123", u.Password)

	p, ok := env.mem.PatientByUserID(u.ID)
	require.True(t, ok)
	require.NotNil(t, p.Age)
	assert.Equal(t, 2, *p.Age)
	assert.Equal(t, "Pat", p.Name)
	assert.Equal(t, "555-0100", p.Phone)
	assert.Equal(t, "1 Main St", *p.Address)
	assert.Equal(t, "Mom 555-0199", *p.EmergencyContact)
	assert.Equal(t, "Blood Group: O+", p.MedicalHistory)

	_, ok = env.mem.DoctorByUserID(u.ID)
	assert.False(t, ok)
}

func TestRegister_PatientAge(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		dob   *string
		want  *int
	}{
		{"day before birthday", time.Date(2001, 12, 31, 23, 0, 0, 0, time.UTC), strPtr("2000-01-01"), intPtr(1)},
		{"on birthday", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), strPtr("2000-01-01"), intPtr(26)},
		{"leap day birth", time.Date(2001, 2, 28, 12, 0, 0, 0, time.UTC), strPtr("2000-02-29"), intPtr(0)},
		{"unparseable", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), strPtr("01/01/2000"), nil},
		{"not a date", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), strPtr("2000-13-45"), nil},
		{"empty", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), strPtr(""), nil},
		{"absent", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil},
		{"future", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), strPtr("2030-06-01"), intPtr(-4)},
		{"future same month", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), strPtr("2027-03-01"), intPtr(0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.clock.t = tc.today

			u, err := env.svc.Register(context.Background(), service.RegisterInput{
				Email:       "pat@example.com",
				Password:    "password123",
				Name:        "Pat",
				Role:        "patient",
				DateOfBirth: tc.dob,
			})
			require.NoError(t, err)

			p, ok := env.mem.PatientByUserID(u.ID)
			require.True(t, ok)
			assert.Equal(t, tc.want, p.Age)
		})
	}
}

func intPtr(i int) *int { return &i }

func TestRegister_PatientDefaults(t *testing.T) {
	env := newTestEnv(t, nil)

	u, err := env.svc.Register(context.Background(), service.RegisterInput{
		Email:    "pat@example.com",
		Password: "password123",
		Name:     "Pat",
		Role:     "patient",
	})
	require.NoError(t, err)

	p, ok := env.mem.PatientByUserID(u.ID)
	require.True(t, ok)
	assert.Equal(t, "", p.Phone)
	assert.Nil(t, p.Address)
	assert.Nil(t, p.EmergencyContact)
	assert.Nil(t, p.Age)
	assert.Equal(t, "", p.MedicalHistory)
}

func TestRegister_Doctor(t *testing.T) {
	env := newTestEnv(t, nil)

	u, err := env.svc.Register(context.Background(), service.RegisterInput{
		Email:          "doc@example.com",
		Password:       "password123",
		Name:           "Dr. Grey",
		Role:           "DOCTOR",
		Specialization: strPtr("Cardiology"),
		LicenseNumber:  strPtr("XYZ123"),
		BloodGroup:     strPtr("A-"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, u.Role)

	d, ok := env.mem.DoctorByUserID(u.ID)
	require.True(t, ok)
	assert.Equal(t, "Dr. Grey", d.Name)
	assert.Equal(t, "", d.Phone)
	assert.Equal(t, "Cardiology", *d.Specialization)
	assert.Equal(t, "License Number: XYZ123", d.Bio)

	_, ok = env.mem.PatientByUserID(u.ID)
	assert.False(t, ok)
}

func TestRegister_AdminHasNoProfile(t *testing.T) {
	env := newTestEnv(t, nil)

	u := env.register(t, "root@example.com", "password123", "admin")
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, ok := env.mem.PatientByUserID(u.ID)
	assert.False(t, ok)
	_, ok = env.mem.DoctorByUserID(u.ID)
	assert.False(t, ok)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t, nil)
	env.register(t, "dup@example.com", "password123", "patient")

	_, err := env.svc.Register(context.Background(), service.RegisterInput{
		Email:    "dup@example.com",
		Password: "other-password",
		Name:     "Second",
		Role:     "doctor",
	})
	require.ErrorIs(t, err, models.ErrDuplicateEmail)
	assert.Equal(t, 1, env.mem.UserCount())
}

func TestRegister_InvalidRole(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.svc.Register(context.Background(), service.RegisterInput{
		Email:    "nurse@example.com",
		Password: "password123",
		Name:     "Nurse",
		Role:     "nurse",
	})
	require.ErrorIs(t, err, models.ErrInvalidRole)
	assert.Equal(t, 0, env.mem.UserCount())
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name string
		in   service.RegisterInput
	}{
		{"no email", service.RegisterInput{Password: "pw", Name: "N", Role: "patient"}},
		{"no password", service.RegisterInput{Email: "a@example.com", Name: "N", Role: "patient"}},
		{"no name", service.RegisterInput{Email: "a@example.com", Password: "pw", Role: "patient"}},
		{"no role", service.RegisterInput{Email: "a@example.com", Password: "pw", Name: "N"}},
		{"blank email", service.RegisterInput{Email: "  ", Password: "pw", Name: "N", Role: "patient"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.Register(context.Background(), tc.in)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, env.mem.UserCount())
}

// failingProfiles makes every profile insert fail inside the transaction.
type failingProfiles struct{ *storetest.Memory }

var errProfileWrite = errors.New("profile write failed")

type failPatients struct{}

func (failPatients) Create(context.Context, *models.Patient) error { return errProfileWrite }

type failDoctors struct{}

func (failDoctors) Create(context.Context, *models.Doctor) error { return errProfileWrite }

func (s failingProfiles) WithTx(ctx context.Context, fn func(ctx context.Context, r models.Repositories) error) error {
	return s.Memory.WithTx(ctx, func(ctx context.Context, r models.Repositories) error {
		r.Patients = failPatients{}
		r.Doctors = failDoctors{}
		return fn(ctx, r)
	})
}

func TestRegister_ProfileFailureRollsBackUser(t *testing.T) {
	mem := storetest.NewMemory()
	env := newTestEnv(t, failingProfiles{mem})

	for _, role := range []string{"patient", "doctor"} {
		_, err := env.svc.Register(context.Background(), service.RegisterInput{
			Email:    role + "@example.com",
			Password: "password123",
			Name:     "N",
			Role:     role,
		})
		require.ErrorIs(t, err, errProfileWrite)
	}
	assert.Equal(t, 0, mem.UserCount())

	// Admins have no profile, so the transaction commits.
	_, err := env.svc.Register(context.Background(), service.RegisterInput{
		Email:    "admin@example.com",
		Password: "password123",
		Name:     "N",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mem.UserCount())
}

func TestRegister_ThenLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	env.register(t, "ann@example.com", "s3cret-pass", "doctor")

	res, err := env.svc.Login(context.Background(), "ann@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "doctor", res.User.Role)
}
