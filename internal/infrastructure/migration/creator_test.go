package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add targets table", "add_targets_table"},
		{"Add-Targets-Table", "add_targets_table"},
		{"ADD_TARGETS_TABLE", "add_targets_table"},
		{"add__price__index", "add_price_index"},
		{"Backfill 2024", "backfill_2024"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"매출 index", "index"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestList(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_add_targets.up.sql":   {},
		"000002_add_targets.down.sql": {},
		"000010_backfill.up.sql":      {},
		"000001_init_schema.up.sql":   {},
		"000001_init_schema.down.sql": {},
		"README.md":                   {},
		"notes_draft.up.sql":          {},
		"archive":                     {Mode: os.ModeDir},
	}

	files, err := List(fsys)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, []uint{1, 2, 10}, []uint{files[0].Version, files[1].Version, files[2].Version})
	assert.Equal(t, "add_targets", files[1].Name)
	assert.Equal(t, "000010_backfill.down.sql", files[2].DownPath)
	assert.Equal(t, "000010_backfill", files[2].BaseName())
}

func TestList_Embedded(t *testing.T) {
	files, err := List(Source{}.FS())
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, uint(1), files[0].Version)
	assert.Equal(t, "init_schema", files[0].Name)
}

func TestList_MissingDirectory(t *testing.T) {
	files, err := List(Source{Dir: filepath.Join(t.TempDir(), "absent")}.FS())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

	first, err := CreateMigration(dir, "Add targets table", "Monthly quantity goals", now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_targets_table.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_targets_table.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- add_targets_table")
	assert.Contains(t, string(up), "-- Created: 2024-03-15T09:30:00Z")
	assert.Contains(t, string(up), "-- Monthly quantity goals")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")

	second, err := CreateMigration(dir, "price index", "", now)
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version, "numbered after the highest existing version")

	up, err = os.ReadFile(second.UpPath)
	require.NoError(t, err)
	assert.NotContains(t, string(up), "-- \n")
}

func TestCreateMigration_FollowsEmbeddedNumbering(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init_schema.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init_schema.down.sql"), nil, 0o644))

	mf, err := CreateMigration(dir, "add index", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "000002_add_index", mf.BaseName())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "", time.Now())
	assert.Error(t, err)
}

func TestStatusOf(t *testing.T) {
	files := []MigrationFile{{Version: 1, Name: "init_schema"}, {Version: 2, Name: "add_index"}, {Version: 3, Name: "backfill"}}

	status := statusOf(files, 2, true)
	require.Len(t, status, 3)
	assert.True(t, status[0].Applied)
	assert.False(t, status[0].Dirty)
	assert.True(t, status[1].Applied)
	assert.True(t, status[1].Dirty)
	assert.False(t, status[2].Applied)

	for _, s := range statusOf(files, 0, false) {
		assert.False(t, s.Applied)
	}
}
