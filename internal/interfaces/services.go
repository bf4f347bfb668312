package interfaces

import (
	"context"

	"github.com/jmcnair/carehub/internal/models"
)

// DirectoryService serves patient, agency, and contact data to the REST
// layer. Search and grouping operate over in-memory collections fetched from
// the stores.
type DirectoryService interface {
	GetPatient(ctx context.Context, patientID string) (*models.Patient, error)
	ListPatients(ctx context.Context) ([]*models.Patient, error)
	SearchPatients(ctx context.Context, query string) ([]*models.Patient, error)
	GroupPatients(ctx context.Context, by string) (map[string][]*models.Patient, error)
	PatientsByAgency(ctx context.Context, agencyID string) ([]*models.Patient, error)

	GetAgency(ctx context.Context, agencyID string) (*models.Agency, error)
	ListAgencies(ctx context.Context) ([]*models.Agency, error)

	GetContact(ctx context.Context, contactID string) (*models.Contact, error)
	ListContacts(ctx context.Context) ([]*models.Contact, error)
	SearchContacts(ctx context.Context, query string) ([]*models.Contact, error)
}
