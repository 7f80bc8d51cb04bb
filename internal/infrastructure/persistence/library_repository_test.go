package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibraryMock(t *testing.T) (*LibraryRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return NewLibraryRepository(db), mock, func() { db.Close() }
}

func libraryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "organization_id", "category", "code", "name", "kind",
		"is_active", "usage_count", "spec", "created_date", "last_modified_date",
	})
}

func TestLibraryRepository_ListForOrganization(t *testing.T) {
	repo, mock, closeFn := newLibraryMock(t)
	defer closeFn()

	now := time.Now()
	rows := libraryRows().
		AddRow("org-entry", "org-1", "groove", "GD-9-12", "Drawer groove", constants.KindDrawerBottom,
			true, 3, `{"width_mm":9,"depth_mm":12,"offset_mm":10}`, now, now).
		AddRow("sys-entry", nil, "groove", "GL-4-10", "Back panel groove", constants.KindBackPanel,
			true, 0, `{"width_mm":4,"depth_mm":10,"offset_mm":12}`, now, now)

	mock.ExpectQuery("SELECT (.+) FROM " + constants.TableLibraryEntry).
		WithArgs("groove", "org-1").
		WillReturnRows(rows)

	entries, err := repo.ListForOrganization(context.Background(), "org-1", constants.CategoryGroove)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Org entries come first, system entries carry a nil org id
	assert.Equal(t, "org-entry", entries[0].ID)
	assert.False(t, entries[0].IsSystem())
	assert.True(t, entries[1].IsSystem())

	// JSON payload column unmarshals into the category variant
	require.NotNil(t, entries[1].Groove)
	assert.Equal(t, 4.0, entries[1].Groove.WidthMm)
	assert.Equal(t, 10.0, entries[1].Groove.DepthMm)
	assert.Nil(t, entries[1].Drill)
}

func TestLibraryRepository_IncrementUsage_AtomicStatement(t *testing.T) {
	repo, mock, closeFn := newLibraryMock(t)
	defer closeFn()

	// The increment must be a single read-free statement; a lost update
	// here is a correctness bug.
	query := "UPDATE " + constants.TableLibraryEntry + " SET usage_count = usage_count + 1 WHERE id = ?"
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs("entry-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementUsage(context.Background(), "entry-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLibraryRepository_IncrementUsage_MissingEntry(t *testing.T) {
	repo, mock, closeFn := newLibraryMock(t)
	defer closeFn()

	mock.ExpectExec("UPDATE " + constants.TableLibraryEntry).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementUsage(context.Background(), "ghost")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestLibraryRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, closeFn := newLibraryMock(t)
	defer closeFn()

	mock.ExpectQuery("SELECT (.+) FROM " + constants.TableLibraryEntry).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	entry, err := repo.GetByID(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestLibraryRepository_Create_SerializesSpec(t *testing.T) {
	repo, mock, closeFn := newLibraryMock(t)
	defer closeFn()

	entry := &models.LibraryEntry{
		ID:       "new-entry",
		Category: constants.CategoryGroove,
		Code:     "GL-6-10",
		Name:     "Light profile groove",
		Kind:     constants.KindLightProfile,
		IsActive: true,
		Groove:   &models.GrooveSpec{WidthMm: 6, DepthMm: 10, OffsetMm: 20},
	}
	orgID := "org-1"
	entry.OrganizationID = &orgID

	mock.ExpectExec("INSERT INTO "+constants.TableLibraryEntry).
		WithArgs("new-entry", "org-1", "groove", "GL-6-10", "Light profile groove", constants.KindLightProfile,
			true, int64(0), `{"width_mm":6,"depth_mm":10,"offset_mm":20}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
