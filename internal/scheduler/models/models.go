// Package models holds the scheduler's persistent entities.
package models

// Role tells which account table an identity lives in.
type Role string

const (
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleCaregiver
}

// Account is a patient or caregiver credential record. Hash is the argon2id
// digest of the password under Salt; the plaintext is never stored.
type Account struct {
	Username string `db:"username"`
	Salt     []byte `db:"salt"`
	Hash     []byte `db:"hash"`
	Role     Role   `db:"-"`
}

// Vaccine is a named dose counter. Doses is never negative.
type Vaccine struct {
	Name  string `db:"name"`
	Doses int64  `db:"doses"`
}

// Appointment is a committed reservation. ID is unique and assigned in
// strictly increasing order.
type Appointment struct {
	ID        int64  `db:"id"`
	Caregiver string `db:"caregiver_username"`
	Vaccine   string `db:"vaccine_name"`
	Patient   string `db:"patient_username"`
	Date      Date   `db:"slot_date"`
}
