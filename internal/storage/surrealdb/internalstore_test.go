package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcnair/carehub/internal/models"
)

func TestInternalStoreStaff(t *testing.T) {
	m := testManager(t)
	store := m.InternalStore()
	ctx := context.Background()

	user := &models.StaffUser{
		UserID:       "user-42",
		Email:        "nurse@example.com",
		Name:         "Test Nurse",
		PasswordHash: "$2a$10$fakehashfortesting",
		Role:         models.RoleStaff,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.SaveStaff(ctx, user))

	got, err := store.GetStaff(ctx, "user-42")
	require.NoError(t, err)
	assert.Equal(t, "nurse@example.com", got.Email)
	assert.Equal(t, "$2a$10$fakehashfortesting", got.PasswordHash)

	byEmail, err := store.GetStaffByEmail(ctx, "nurse@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-42", byEmail.UserID)

	all, err := store.ListStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, store.DeleteStaff(ctx, "user-42"))

	_, err = store.GetStaff(ctx, "user-42")
	assert.Error(t, err)
}

func TestInternalStoreStaffNotFound(t *testing.T) {
	m := testManager(t)
	store := m.InternalStore()
	ctx := context.Background()

	_, err := store.GetStaff(ctx, "ghost")
	assert.Error(t, err)

	_, err = store.GetStaffByEmail(ctx, "ghost@example.com")
	assert.Error(t, err)
}

func TestInternalStoreSystemKV(t *testing.T) {
	m := testManager(t)
	store := m.InternalStore()
	ctx := context.Background()

	require.NoError(t, store.SetSystemKV(ctx, "schema_version", "1"))

	val, err := store.GetSystemKV(ctx, "schema_version")
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	// Overwrite
	require.NoError(t, store.SetSystemKV(ctx, "schema_version", "2"))
	val, err = store.GetSystemKV(ctx, "schema_version")
	require.NoError(t, err)
	assert.Equal(t, "2", val)

	_, err = store.GetSystemKV(ctx, "missing")
	assert.Error(t, err)
}
