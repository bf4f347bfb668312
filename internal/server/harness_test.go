package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmcnair/carehub/internal/app"
	"github.com/jmcnair/carehub/internal/clients/identity"
	"github.com/jmcnair/carehub/internal/common"
	"github.com/jmcnair/carehub/internal/interfaces"
	"github.com/jmcnair/carehub/internal/models"
	"github.com/jmcnair/carehub/internal/services/directory"
)

// In-memory store fakes for handler tests.

type memInternalStore struct {
	staff map[string]*models.StaffUser
	kv    map[string]string
}

func newMemInternalStore() *memInternalStore {
	return &memInternalStore{
		staff: make(map[string]*models.StaffUser),
		kv:    make(map[string]string),
	}
}

func (m *memInternalStore) GetStaff(ctx context.Context, userID string) (*models.StaffUser, error) {
	u, ok := m.staff[userID]
	if !ok {
		return nil, fmt.Errorf("staff user not found: %s", userID)
	}
	return u, nil
}

func (m *memInternalStore) GetStaffByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	for _, u := range m.staff {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("staff user not found: %s", email)
}

func (m *memInternalStore) SaveStaff(ctx context.Context, user *models.StaffUser) error {
	m.staff[user.UserID] = user
	return nil
}

func (m *memInternalStore) DeleteStaff(ctx context.Context, userID string) error {
	delete(m.staff, userID)
	return nil
}

func (m *memInternalStore) ListStaff(ctx context.Context) ([]*models.StaffUser, error) {
	out := make([]*models.StaffUser, 0, len(m.staff))
	for _, u := range m.staff {
		out = append(out, u)
	}
	return out, nil
}

func (m *memInternalStore) GetSystemKV(ctx context.Context, key string) (string, error) {
	v, ok := m.kv[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return v, nil
}

func (m *memInternalStore) SetSystemKV(ctx context.Context, key, value string) error {
	m.kv[key] = value
	return nil
}

func (m *memInternalStore) Close() error { return nil }

type memPatientStore struct {
	patients map[string]*models.Patient
}

func (m *memPatientStore) Get(ctx context.Context, id string) (*models.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient not found: %s", id)
	}
	return p, nil
}

func (m *memPatientStore) GetAll(ctx context.Context) ([]*models.Patient, error) {
	out := make([]*models.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPatientStore) Save(ctx context.Context, p *models.Patient) error {
	m.patients[p.PatientID] = p
	return nil
}

func (m *memPatientStore) Delete(ctx context.Context, id string) error {
	delete(m.patients, id)
	return nil
}

type memAgencyStore struct {
	agencies map[string]*models.Agency
}

func (m *memAgencyStore) Get(ctx context.Context, id string) (*models.Agency, error) {
	a, ok := m.agencies[id]
	if !ok {
		return nil, fmt.Errorf("agency not found: %s", id)
	}
	return a, nil
}

func (m *memAgencyStore) GetAll(ctx context.Context) ([]*models.Agency, error) {
	out := make([]*models.Agency, 0, len(m.agencies))
	for _, a := range m.agencies {
		out = append(out, a)
	}
	return out, nil
}

func (m *memAgencyStore) Save(ctx context.Context, a *models.Agency) error {
	m.agencies[a.AgencyID] = a
	return nil
}

func (m *memAgencyStore) Delete(ctx context.Context, id string) error {
	delete(m.agencies, id)
	return nil
}

type memContactStore struct {
	contacts map[string]*models.Contact
}

func (m *memContactStore) Get(ctx context.Context, id string) (*models.Contact, error) {
	c, ok := m.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact not found: %s", id)
	}
	return c, nil
}

func (m *memContactStore) GetAll(ctx context.Context) ([]*models.Contact, error) {
	out := make([]*models.Contact, 0, len(m.contacts))
	for _, c := range m.contacts {
		out = append(out, c)
	}
	return out, nil
}

func (m *memContactStore) Save(ctx context.Context, c *models.Contact) error {
	m.contacts[c.ContactID] = c
	return nil
}

func (m *memContactStore) Delete(ctx context.Context, id string) error {
	delete(m.contacts, id)
	return nil
}

type memStorageManager struct {
	internal *memInternalStore
	patients *memPatientStore
	agencies *memAgencyStore
	contacts *memContactStore
}

func newMemStorageManager() *memStorageManager {
	return &memStorageManager{
		internal: newMemInternalStore(),
		patients: &memPatientStore{patients: make(map[string]*models.Patient)},
		agencies: &memAgencyStore{agencies: make(map[string]*models.Agency)},
		contacts: &memContactStore{contacts: make(map[string]*models.Contact)},
	}
}

func (m *memStorageManager) InternalStore() interfaces.InternalStore { return m.internal }
func (m *memStorageManager) PatientStore() interfaces.PatientStore   { return m.patients }
func (m *memStorageManager) AgencyStore() interfaces.AgencyStore     { return m.agencies }
func (m *memStorageManager) ContactStore() interfaces.ContactStore   { return m.contacts }
func (m *memStorageManager) Close() error                            { return nil }

// testServer bundles a server under test with its backing fakes.
type testServer struct {
	*Server
	storage *memStorageManager
}

type testServerOption func(*common.Config)

func withRequireBearer() testServerOption {
	return func(cfg *common.Config) {
		cfg.Auth.RequireBearer = true
	}
}

// newTestServer builds a Server wired to in-memory storage and the given
// identity provider base URL (usually an httptest server).
func newTestServer(t *testing.T, identityBaseURL string, opts ...testServerOption) *testServer {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.Identity.TenantID = "tenant-123"
	cfg.Auth.Identity.ClientID = "client-abc"
	cfg.Auth.Identity.ClientSecret = "secret-xyz"
	cfg.Auth.Identity.Audience = "api://carehub"
	for _, opt := range opts {
		opt(cfg)
	}

	logger := common.NewSilentLogger()
	storage := newMemStorageManager()

	idOpts := []identity.ClientOption{identity.WithLogger(logger)}
	if identityBaseURL != "" {
		idOpts = append(idOpts, identity.WithBaseURL(identityBaseURL))
	}
	idClient := identity.NewClient(identity.Config{
		TenantID:     cfg.Auth.Identity.TenantID,
		ClientID:     cfg.Auth.Identity.ClientID,
		ClientSecret: cfg.Auth.Identity.ClientSecret,
		Scope:        cfg.Auth.Identity.APIScope(),
	}, idOpts...)

	a := &app.App{
		Config:      cfg,
		Logger:      logger,
		Storage:     storage,
		Identity:    idClient,
		Directory:   directory.NewService(storage, logger),
		StartupTime: time.Now(),
	}

	return &testServer{
		Server:  NewServer(a),
		storage: storage,
	}
}
