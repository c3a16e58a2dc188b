package store

import (
	"context"
	"fmt"

	"github.com/vaughan-dsouza/medvault/internal/db"
	"github.com/vaughan-dsouza/medvault/internal/models"
)

type PatientRepository struct {
	q db.DBTX
}

func NewPatientRepository(q db.DBTX) *PatientRepository {
	return &PatientRepository{q: q}
}

func (r *PatientRepository) Create(ctx context.Context, p *models.Patient) error {
	err := r.q.QueryRowxContext(ctx, `
		INSERT INTO patients (user_id, name, phone, address, emergency_contact, age, medical_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.UserID, p.Name, p.Phone, p.Address, p.EmergencyContact, p.Age, p.MedicalHistory).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

type DoctorRepository struct {
	q db.DBTX
}

func NewDoctorRepository(q db.DBTX) *DoctorRepository {
	return &DoctorRepository{q: q}
}

func (r *DoctorRepository) Create(ctx context.Context, d *models.Doctor) error {
	err := r.q.QueryRowxContext(ctx, `
		INSERT INTO doctors (user_id, name, phone, specialization, bio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, d.UserID, d.Name, d.Phone, d.Specialization, d.Bio).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}
