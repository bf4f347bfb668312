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

// PatientStore persists patient records in SurrealDB.
type PatientStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPatientStore(db *surrealdb.DB, logger *common.Logger) *PatientStore {
	return &PatientStore{
		db:     db,
		logger: logger,
	}
}

func (s *PatientStore) Get(ctx context.Context, patientID string) (*models.Patient, error) {
	p, err := surrealdb.Select[models.Patient](ctx, s.db, surrealmodels.NewRecordID("patient", patientID))
	if err != nil {
		return nil, fmt.Errorf("failed to select patient: %w", err)
	}
	if p == nil {
		return nil, errors.New("patient not found")
	}
	return p, nil
}

func (s *PatientStore) GetAll(ctx context.Context) ([]*models.Patient, error) {
	list, err := surrealdb.Select[[]models.Patient](ctx, s.db, surrealmodels.Table("patient"))
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	var patients []*models.Patient
	if list != nil {
		for i := range *list {
			patients = append(patients, &(*list)[i])
		}
	}
	return patients, nil
}

func (s *PatientStore) Save(ctx context.Context, patient *models.Patient) error {
	sql := "UPSERT type::record('patient', $id) CONTENT $patient"
	vars := map[string]any{"id": patient.PatientID, "patient": patient}

	if _, err := surrealdb.Query[[]models.Patient](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save patient: %w", err)
	}
	return nil
}

func (s *PatientStore) Delete(ctx context.Context, patientID string) error {
	_, err := surrealdb.Delete[models.Patient](ctx, s.db, surrealmodels.NewRecordID("patient", patientID))
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}
