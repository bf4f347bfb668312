package surrealdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmcnair/carehub/internal/common"
	"github.com/jmcnair/carehub/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// ContactStore persists ancillary user (contact) records in SurrealDB.
type ContactStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewContactStore(db *surrealdb.DB, logger *common.Logger) *ContactStore {
	return &ContactStore{
		db:     db,
		logger: logger,
	}
}

func (s *ContactStore) Get(ctx context.Context, contactID string) (*models.Contact, error) {
	c, err := surrealdb.Select[models.Contact](ctx, s.db, surrealmodels.NewRecordID("contact", contactID))
	if err != nil {
		return nil, fmt.Errorf("failed to select contact: %w", err)
	}
	if c == nil {
		return nil, errors.New("contact not found")
	}
	return c, nil
}

func (s *ContactStore) GetAll(ctx context.Context) ([]*models.Contact, error) {
	list, err := surrealdb.Select[[]models.Contact](ctx, s.db, surrealmodels.Table("contact"))
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	var contacts []*models.Contact
	if list != nil {
		for i := range *list {
			contacts = append(contacts, &(*list)[i])
		}
	}
	return contacts, nil
}

func (s *ContactStore) Save(ctx context.Context, contact *models.Contact) error {
	sql := "UPSERT type::record('contact', $id) CONTENT $contact"
	vars := map[string]any{"id": contact.ContactID, "contact": contact}

	if _, err := surrealdb.Query[[]models.Contact](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

func (s *ContactStore) Delete(ctx context.Context, contactID string) error {
	_, err := surrealdb.Delete[models.Contact](ctx, s.db, surrealmodels.NewRecordID("contact", contactID))
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
