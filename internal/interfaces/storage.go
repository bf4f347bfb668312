// Package interfaces defines service contracts for CareHub
package interfaces

import (
	"context"

	"github.com/jmcnair/carehub/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	InternalStore() InternalStore
	PatientStore() PatientStore
	AgencyStore() AgencyStore
	ContactStore() ContactStore

	// Lifecycle
	Close() error
}

// InternalStore manages staff accounts and system-level KV.
type InternalStore interface {
	GetStaff(ctx context.Context, userID string) (*models.StaffUser, error)
	GetStaffByEmail(ctx context.Context, email string) (*models.StaffUser, error)
	SaveStaff(ctx context.Context, user *models.StaffUser) error
	DeleteStaff(ctx context.Context, userID string) error
	ListStaff(ctx context.Context) ([]*models.StaffUser, error)

	// System key-value (non-user-scoped)
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}

// PatientStore manages patient records as an opaque store: retrieval and
// persistence only, with grouping and search done in memory by callers.
type PatientStore interface {
	Get(ctx context.Context, patientID string) (*models.Patient, error)
	GetAll(ctx context.Context) ([]*models.Patient, error)
	Save(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, patientID string) error
}

// AgencyStore manages agency records.
type AgencyStore interface {
	Get(ctx context.Context, agencyID string) (*models.Agency, error)
	GetAll(ctx context.Context) ([]*models.Agency, error)
	Save(ctx context.Context, agency *models.Agency) error
	Delete(ctx context.Context, agencyID string) error
}

// ContactStore manages ancillary user (contact) records.
type ContactStore interface {
	Get(ctx context.Context, contactID string) (*models.Contact, error)
	GetAll(ctx context.Context) ([]*models.Contact, error)
	Save(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, contactID string) error
}
