// Package directory serves patient, agency, and contact data to the REST layer
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmcnair/carehub/internal/common"
	"github.com/jmcnair/carehub/internal/interfaces"
	"github.com/jmcnair/carehub/internal/models"
)

// Compile-time interface check
var _ interfaces.DirectoryService = (*Service)(nil)

// Service implements DirectoryService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new directory service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// GetPatient retrieves a single patient by id
func (s *Service) GetPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	p, err := s.storage.PatientStore().Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return p, nil
}

// ListPatients retrieves all patients
func (s *Service) ListPatients(ctx context.Context) ([]*models.Patient, error) {
	patients, err := s.storage.PatientStore().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// SearchPatients filters the patient collection by a case-insensitive
// substring match over first name, last name, and MRN.
func (s *Service) SearchPatients(ctx context.Context, query string) ([]*models.Patient, error) {
	patients, err := s.storage.PatientStore().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return patients, nil
	}

	matched := make([]*models.Patient, 0)
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.FirstName), q) ||
			strings.Contains(strings.ToLower(p.LastName), q) ||
			strings.Contains(strings.ToLower(p.MRN), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GroupPatients groups the patient collection in memory by "agency" or
// "status". Patients without a value for the grouping key land under "".
func (s *Service) GroupPatients(ctx context.Context, by string) (map[string][]*models.Patient, error) {
	switch by {
	case "agency", "status":
	default:
		return nil, fmt.Errorf("unsupported grouping %q: must be 'agency' or 'status'", by)
	}

	patients, err := s.storage.PatientStore().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group patients: %w", err)
	}

	groups := make(map[string][]*models.Patient)
	for _, p := range patients {
		key := p.AgencyID
		if by == "status" {
			key = p.Status
		}
		groups[key] = append(groups[key], p)
	}
	return groups, nil
}

// PatientsByAgency filters the patient collection to one agency
func (s *Service) PatientsByAgency(ctx context.Context, agencyID string) ([]*models.Patient, error) {
	patients, err := s.storage.PatientStore().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agency patients: %w", err)
	}

	matched := make([]*models.Patient, 0)
	for _, p := range patients {
		if p.AgencyID == agencyID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetAgency retrieves a single agency by id
func (s *Service) GetAgency(ctx context.Context, agencyID string) (*models.Agency, error) {
	a, err := s.storage.AgencyStore().Get(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get agency: %w", err)
	}
	return a, nil
}

// ListAgencies retrieves all agencies
func (s *Service) ListAgencies(ctx context.Context) ([]*models.Agency, error) {
	agencies, err := s.storage.AgencyStore().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}
	return agencies, nil
}

// GetContact retrieves a single contact by id
func (s *Service) GetContact(ctx context.Context, contactID string) (*models.Contact, error) {
	c, err := s.storage.ContactStore().Get(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// ListContacts retrieves all contacts
func (s *Service) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	contacts, err := s.storage.ContactStore().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// SearchContacts filters the contact collection by a case-insensitive
// substring match over name, role, and agency id.
func (s *Service) SearchContacts(ctx context.Context, query string) ([]*models.Contact, error) {
	contacts, err := s.storage.ContactStore().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return contacts, nil
	}

	matched := make([]*models.Contact, 0)
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Role), q) ||
			strings.Contains(strings.ToLower(c.AgencyID), q) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
