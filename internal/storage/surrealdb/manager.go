// Package surrealdb implements the storage interfaces on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/jmcnair/carehub/internal/common"
	"github.com/jmcnair/carehub/internal/interfaces"
	"github.com/surrealdb/surrealdb.go"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	internalStore *InternalStore
	patientStore  *PatientStore
	agencyStore   *AgencyStore
	contactStore  *ContactStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// Define tables to ensure they exist (SurrealDB v3 errors on querying non-existent tables)
	tables := []string{"staff", "system_kv", "patient", "agency", "contact"}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.internalStore = NewInternalStore(db, logger)
	m.patientStore = NewPatientStore(db, logger)
	m.agencyStore = NewAgencyStore(db, logger)
	m.contactStore = NewContactStore(db, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// NewManagerWithDB wraps an existing connection, used by tests.
func NewManagerWithDB(db *surrealdb.DB, logger *common.Logger) *Manager {
	return &Manager{
		db:            db,
		logger:        logger,
		internalStore: NewInternalStore(db, logger),
		patientStore:  NewPatientStore(db, logger),
		agencyStore:   NewAgencyStore(db, logger),
		contactStore:  NewContactStore(db, logger),
	}
}

func (m *Manager) InternalStore() interfaces.InternalStore {
	return m.internalStore
}

func (m *Manager) PatientStore() interfaces.PatientStore {
	return m.patientStore
}

func (m *Manager) AgencyStore() interfaces.AgencyStore {
	return m.agencyStore
}

func (m *Manager) ContactStore() interfaces.ContactStore {
	return m.contactStore
}

// Close closes the underlying database connection.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close(context.Background())
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
