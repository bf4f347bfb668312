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

// InternalStore manages staff accounts and system KV in SurrealDB.
type InternalStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewInternalStore(db *surrealdb.DB, logger *common.Logger) *InternalStore {
	return &InternalStore{
		db:     db,
		logger: logger,
	}
}

func (s *InternalStore) GetStaff(ctx context.Context, userID string) (*models.StaffUser, error) {
	user, err := surrealdb.Select[models.StaffUser](ctx, s.db, surrealmodels.NewRecordID("staff", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to select staff user: %w", err)
	}
	if user == nil {
		return nil, errors.New("staff user not found")
	}
	return user, nil
}

func (s *InternalStore) GetStaffByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	sql := "SELECT * FROM staff WHERE email = $email LIMIT 1"
	vars := map[string]any{"email": email}

	results, err := surrealdb.Query[[]models.StaffUser](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff by email: %w", err)
	}
	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return &(*results)[0].Result[0], nil
	}
	return nil, errors.New("staff user not found")
}

func (s *InternalStore) SaveStaff(ctx context.Context, user *models.StaffUser) error {
	sql := "UPSERT type::record('staff', $id) CONTENT $user"
	vars := map[string]any{"id": user.UserID, "user": user}

	if _, err := surrealdb.Query[[]models.StaffUser](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save staff user: %w", err)
	}
	return nil
}

func (s *InternalStore) DeleteStaff(ctx context.Context, userID string) error {
	_, err := surrealdb.Delete[models.StaffUser](ctx, s.db, surrealmodels.NewRecordID("staff", userID))
	if err != nil {
		return fmt.Errorf("failed to delete staff user: %w", err)
	}
	return nil
}

func (s *InternalStore) ListStaff(ctx context.Context) ([]*models.StaffUser, error) {
	list, err := surrealdb.Select[[]models.StaffUser](ctx, s.db, surrealmodels.Table("staff"))
	if err != nil {
		return nil, fmt.Errorf("failed to list staff users: %w", err)
	}

	var users []*models.StaffUser
	if list != nil {
		for i := range *list {
			users = append(users, &(*list)[i])
		}
	}
	return users, nil
}

// systemKV is the stored shape for system_kv records.
type systemKV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *InternalStore) GetSystemKV(ctx context.Context, key string) (string, error) {
	kv, err := surrealdb.Select[systemKV](ctx, s.db, surrealmodels.NewRecordID("system_kv", key))
	if err != nil {
		return "", fmt.Errorf("failed to select system KV: %w", err)
	}
	if kv == nil {
		return "", errors.New("system KV not found")
	}
	return kv.Value, nil
}

func (s *InternalStore) SetSystemKV(ctx context.Context, key, value string) error {
	sql := "UPSERT type::record('system_kv', $id) CONTENT $kv"
	vars := map[string]any{"id": key, "kv": systemKV{Key: key, Value: value}}

	if _, err := surrealdb.Query[[]systemKV](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to set system KV: %w", err)
	}
	return nil
}

// Close is a no-op; the Manager owns the connection.
func (s *InternalStore) Close() error {
	return nil
}
