package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vaughan-dsouza/medvault/internal/models"
)

// RegisterInput carries a self-service registration. Optional fields are nil
// when absent.
type RegisterInput struct {
	Email            string
	Password         string
	Name             string
	Role             string
	Phone            *string
	Address          *string
	DateOfBirth      *string
	EmergencyContact *string
	BloodGroup       *string
	Specialization   *string
	LicenseNumber    *string
}

// Register creates the user and its role profile in one transaction and
// returns the persisted user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Password == "" || in.Name == "" || strings.TrimSpace(in.Role) == "" {
		return nil, fmt.Errorf("%w: email, password, name and role are required", models.ErrInvalidInput)
	}

	exists, err := s.store.Users().ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		s.log.WarnContext(ctx, "registration rejected", "email", in.Email, "reason", "duplicate email")
		return nil, models.ErrDuplicateEmail
	}

	role, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    in.Email,
		Password: hash,
		Name:     in.Name,
		Role:     role,
	}

	err = s.store.WithTx(ctx, func(ctx context.Context, r models.Repositories) error {
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		return createProfile(ctx, r, buildProfile(user, in, s.now()))
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func createProfile(ctx context.Context, r models.Repositories, p models.Profile) error {
	switch p := p.(type) {
	case *models.Patient:
		return r.Patients.Create(ctx, p)
	case *models.Doctor:
		return r.Doctors.Create(ctx, p)
	}
	return nil
}
