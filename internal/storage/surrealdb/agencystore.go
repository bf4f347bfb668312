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

// AgencyStore persists agency records in SurrealDB.
type AgencyStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewAgencyStore(db *surrealdb.DB, logger *common.Logger) *AgencyStore {
	return &AgencyStore{
		db:     db,
		logger: logger,
	}
}

func (s *AgencyStore) Get(ctx context.Context, agencyID string) (*models.Agency, error) {
	a, err := surrealdb.Select[models.Agency](ctx, s.db, surrealmodels.NewRecordID("agency", agencyID))
	if err != nil {
		return nil, fmt.Errorf("failed to select agency: %w", err)
	}
	if a == nil {
		return nil, errors.New("agency not found")
	}
	return a, nil
}

func (s *AgencyStore) GetAll(ctx context.Context) ([]*models.Agency, error) {
	list, err := surrealdb.Select[[]models.Agency](ctx, s.db, surrealmodels.Table("agency"))
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}

	var agencies []*models.Agency
	if list != nil {
		for i := range *list {
			agencies = append(agencies, &(*list)[i])
		}
	}
	return agencies, nil
}

func (s *AgencyStore) Save(ctx context.Context, agency *models.Agency) error {
	sql := "UPSERT type::record('agency', $id) CONTENT $agency"
	vars := map[string]any{"id": agency.AgencyID, "agency": agency}

	if _, err := surrealdb.Query[[]models.Agency](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save agency: %w", err)
	}
	return nil
}

func (s *AgencyStore) Delete(ctx context.Context, agencyID string) error {
	_, err := surrealdb.Delete[models.Agency](ctx, s.db, surrealmodels.NewRecordID("agency", agencyID))
	if err != nil {
		return fmt.Errorf("failed to delete agency: %w", err)
	}
	return nil
}
