package models

import "time"

// Agency represents a home-health or referring agency.
type Agency struct {
	AgencyID  string    `json:"agency_id"`
	Name      string    `json:"name"`
	NPI       string    `json:"npi,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Fax       string    `json:"fax,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Zip       string    `json:"zip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
