package models

// Labels prefixed to the free-text fields that carry registration extras.
const (
	BloodGroupLabel    = "Blood Group: "
	LicenseNumberLabel = "License Number: "
)

// Profile is the role-specific record owned by a User. It is implemented
// only by *Patient and *Doctor.
type Profile interface {
	ProfileRole() Role
	sealed()
}

type Patient struct {
	ID               int64   `db:"id" json:"id"`
	UserID           int64   `db:"user_id" json:"user_id"`
	Name             string  `db:"name" json:"name"`
	Phone            string  `db:"phone" json:"phone"`
	Address          *string `db:"address" json:"address"`
	EmergencyContact *string `db:"emergency_contact" json:"emergency_contact"`
	Age              *int    `db:"age" json:"age"`
	MedicalHistory   string  `db:"medical_history" json:"medical_history"`
}

func (*Patient) ProfileRole() Role { return RolePatient }
func (*Patient) sealed()           {}

type Doctor struct {
	ID             int64   `db:"id" json:"id"`
	UserID         int64   `db:"user_id" json:"user_id"`
	Name           string  `db:"name" json:"name"`
	Phone          string  `db:"phone" json:"phone"`
	Specialization *string `db:"specialization" json:"specialization"`
	Bio            string  `db:"bio" json:"bio"`
}

func (*Doctor) ProfileRole() Role { return RoleDoctor }
func (*Doctor) sealed()           {}
