package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/panelops/backend/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDialectMock(t *testing.T) (*DialectRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return NewDialectRepository(db), mock, func() { db.Close() }
}

func TestDialectRepository_Get_BackfillsEmptyCategories(t *testing.T) {
	repo, mock, closeFn := newDialectMock(t)
	defer closeFn()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"organization_id", "aliases", "use_ai_fallback", "auto_learn", "created_date", "last_modified_date",
	}).AddRow("org-1", `{"edgeband":{"ALLEDGE":"2L2W"}}`, false, true, now, now)

	mock.ExpectQuery("SELECT (.+) FROM " + constants.TableDialectConfig).
		WithArgs("org-1").
		WillReturnRows(rows)

	config, err := repo.Get(context.Background(), "org-1")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "2L2W", config.Aliases[constants.CategoryEdgeBand]["ALLEDGE"])
	// Categories missing from the stored document read as empty maps
	for _, c := range constants.AllCategories() {
		assert.NotNil(t, config.Aliases[c], "category %s should be backfilled", c)
	}
	assert.True(t, config.AutoLearn)
}

func TestDialectRepository_Get_Absent(t *testing.T) {
	repo, mock, closeFn := newDialectMock(t)
	defer closeFn()

	mock.ExpectQuery("SELECT (.+) FROM " + constants.TableDialectConfig).
		WithArgs("org-unknown").
		WillReturnError(sql.ErrNoRows)

	config, err := repo.Get(context.Background(), "org-unknown")
	assert.NoError(t, err)
	assert.Nil(t, config)
}

func TestDialectRepository_AddAlias_SingleStatementUpdate(t *testing.T) {
	repo, mock, closeFn := newDialectMock(t)
	defer closeFn()

	// Row is created with defaults first, then the alias lands in one
	// JSON_SET so concurrent learners never clobber each other.
	mock.ExpectExec("INSERT IGNORE INTO " + constants.TableDialectConfig).
		WithArgs("org-1", sqlmock.AnyArg(), false, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("JSON_SET\\(aliases").
		WithArgs("groove", "G-ALL-4-10", "GL-4-10", sqlmock.AnyArg(), "org-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddAlias(context.Background(), "org-1", constants.CategoryGroove, "g-all-4-10 ", "GL-4-10")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialectRepository_RemoveAlias_NoOpWhenMissing(t *testing.T) {
	repo, mock, closeFn := newDialectMock(t)
	defer closeFn()

	mock.ExpectExec("JSON_REMOVE\\(aliases").
		WithArgs("edgeband", "ALLEDGE", sqlmock.AnyArg(), "org-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RemoveAlias(context.Background(), "org-1", constants.CategoryEdgeBand, "alledge")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialectRepository_UpdateFlags(t *testing.T) {
	repo, mock, closeFn := newDialectMock(t)
	defer closeFn()

	mock.ExpectExec("INSERT IGNORE INTO " + constants.TableDialectConfig).
		WithArgs("org-1", sqlmock.AnyArg(), false, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE "+constants.TableDialectConfig+" SET use_ai_fallback").
		WithArgs(true, false, sqlmock.AnyArg(), "org-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateFlags(context.Background(), "org-1", true, false)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
