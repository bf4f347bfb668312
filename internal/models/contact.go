package models

import "time"

// Contact represents an ancillary user: a physician, case manager, or other
// agency-side contact associated with referrals.
type Contact struct {
	ContactID string    `json:"contact_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // e.g. "physician", "case_manager", "intake"
	AgencyID  string    `json:"agency_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
