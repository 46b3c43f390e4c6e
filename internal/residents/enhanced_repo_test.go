package residents

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

func setupResidentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	residentsEnhanced := `
CREATE TABLE IF NOT EXISTS residents_enhanced (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  unit_id TEXT NOT NULL,
  property_id TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  resident_type TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'resident',
  is_active INTEGER NOT NULL DEFAULT 1,
  is_primary INTEGER NOT NULL DEFAULT 0,
  move_in_date DATETIME NOT NULL,
  move_out_date DATETIME,
  emergency_contact TEXT,
  vehicle_info TEXT,
  pet_info TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(residentsEnhanced).Error)
	return db
}

func createEnhancedResident(t *testing.T, db *gorm.DB, unitID uuid.UUID, isPrimary bool, created time.Time) *models.ResidentEnhanced {
	t.Helper()

	resident := &models.ResidentEnhanced{
		ID:           uuid.New(),
		UnitID:       unitID,
		PropertyID:   uuid.New(),
		FirstName:    "Test",
		LastName:     "Resident",
		ResidentType: enums.OccupancyTypeOwner,
		Role:         enums.UserRoleResident,
		IsActive:     true,
		IsPrimary:    isPrimary,
		MoveInDate:   created,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, db.Create(resident).Error)
	return resident
}

// Concurrent SetPrimary calls serialize on the demote-promote transaction;
// the shared-cache sqlite driver used here cannot run the two writers in
// parallel, so the invariant is exercised sequentially.
func TestEnhancedRepositorySetPrimary_singlePrimaryPerUnit(t *testing.T) {
	db := setupResidentsTestDB(t)
	repo := NewEnhancedRepository(db)
	ctx := context.Background()

	unitID := uuid.New()
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	first := createEnhancedResident(t, db, unitID, true, base)
	second := createEnhancedResident(t, db, unitID, false, base.Add(time.Hour))
	outsider := createEnhancedResident(t, db, uuid.New(), true, base)

	require.NoError(t, repo.SetPrimary(ctx, unitID, second.ID))

	got, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPrimary)

	demoted, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, demoted.IsPrimary, "previous primary should be demoted")

	// Primaries on other units are untouched.
	other, err := repo.FindByID(ctx, outsider.ID)
	require.NoError(t, err)
	assert.True(t, other.IsPrimary)

	var primaries int64
	require.NoError(t, db.Model(&models.ResidentEnhanced{}).
		Where("unit_id = ? AND is_primary = ?", unitID, true).
		Count(&primaries).Error)
	assert.Equal(t, int64(1), primaries)
}

func TestEnhancedRepositorySetPrimary_repeatable(t *testing.T) {
	db := setupResidentsTestDB(t)
	repo := NewEnhancedRepository(db)
	ctx := context.Background()

	unitID := uuid.New()
	resident := createEnhancedResident(t, db, unitID, false, time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, repo.SetPrimary(ctx, unitID, resident.ID))
	require.NoError(t, repo.SetPrimary(ctx, unitID, resident.ID))

	got, err := repo.FindByID(ctx, resident.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPrimary)
}

func TestEnhancedRepositoryList_unitFilterAndOrder(t *testing.T) {
	db := setupResidentsTestDB(t)
	repo := NewEnhancedRepository(db)
	ctx := context.Background()

	unitID := uuid.New()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	older := createEnhancedResident(t, db, unitID, false, base)
	newer := createEnhancedResident(t, db, unitID, false, base.Add(2*time.Hour))
	createEnhancedResident(t, db, uuid.New(), false, base)

	rows, err := repo.List(ctx, EnhancedListFilter{UnitID: &unitID}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, older.ID, rows[0].ID, "oldest row should come first")
	assert.Equal(t, newer.ID, rows[1].ID)
}

func TestEnhancedRepositoryCountByUnit(t *testing.T) {
	db := setupResidentsTestDB(t)
	repo := NewEnhancedRepository(db)
	ctx := context.Background()

	unitID := uuid.New()
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	createEnhancedResident(t, db, unitID, false, base)
	createEnhancedResident(t, db, unitID, false, base.Add(time.Hour))

	count, err := repo.CountByUnit(ctx, unitID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByUnit(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, count)
}
