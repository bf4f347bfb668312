// Package models defines the data structures shared across CareHub.
package models

import "time"

// Patient statuses as tracked by the referring agencies.
const (
	PatientStatusActive     = "active"
	PatientStatusDischarged = "discharged"
	PatientStatusPending    = "pending"
)

// Patient represents a patient record served to the admin portal.
type Patient struct {
	PatientID   string    `json:"patient_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth string    `json:"date_of_birth"` // YYYY-MM-DD
	MRN         string    `json:"mrn"`
	AgencyID    string    `json:"agency_id"`
	Status      string    `json:"status"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName returns "Last, First" as displayed in the portal.
func (p *Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	if p.FirstName == "" {
		return p.LastName
	}
	return p.LastName + ", " + p.FirstName
}
