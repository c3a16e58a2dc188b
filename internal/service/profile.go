package service

import (
	"strings"
	"time"

	"github.com/vaughan-dsouza/medvault/internal/models"
)

const dateLayout = "2006-01-02"

// buildProfile derives the role-specific record for a freshly created user.
// Roles without a profile yield nil.
func buildProfile(user *models.User, in RegisterInput, now time.Time) models.Profile {
	switch user.Role {
	case models.RolePatient:
		return &models.Patient{
			UserID:           user.ID,
			Name:             user.Name,
			Phone:            deref(in.Phone),
			Address:          in.Address,
			EmergencyContact: in.EmergencyContact,
			Age:              ageFromDOB(in.DateOfBirth, now),
			MedicalHistory:   labelled(models.BloodGroupLabel, in.BloodGroup),
		}
	case models.RoleDoctor:
		return &models.Doctor{
			UserID:         user.ID,
			Name:           user.Name,
			Phone:          deref(in.Phone),
			Specialization: in.Specialization,
			Bio:            labelled(models.LicenseNumberLabel, in.LicenseNumber),
		}
	}
	return nil
}

// ageFromDOB returns the whole years between dob and now's calendar date, or
// nil if dob is absent or not a valid date. A date after now gives a negative
// age.
func ageFromDOB(dob *string, now time.Time) *int {
	if dob == nil || strings.TrimSpace(*dob) == "" {
		return nil
	}
	birth, err := time.Parse(dateLayout, strings.TrimSpace(*dob))
	if err != nil {
		return nil
	}

	months := (now.Year()*12 + int(now.Month())) - (birth.Year()*12 + int(birth.Month()))
	days := now.Day() - birth.Day()
	switch {
	case months > 0 && days < 0:
		months--
	case months < 0 && days > 0:
		months++
	}
	years := months / 12
	return &years
}

func labelled(label string, v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return ""
	}
	return label + *v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
