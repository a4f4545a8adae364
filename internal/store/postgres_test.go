package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westside-labs/rentscout/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgres_Migrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS runs").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateRun(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), []string{"90066"},
			string(model.RunStatusQueued), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(context.Background(), model.DefaultCriteria(), []string{"90066"})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateRunStatus(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE runs SET status").
		WithArgs(string(model.RunStatusSearching), pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.UpdateRunStatus(context.Background(), "run-1", model.RunStatusSearching))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateRunStatus_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE runs SET status").
		WithArgs(string(model.RunStatusComplete), pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateRunStatus(context.Background(), "missing", model.RunStatusComplete)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPostgres_UpdateRunResult_StatusFollowsError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE runs SET result").
		WithArgs(pgxmock.AnyArg(), string(model.RunStatusComplete), pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, s.UpdateRunResult(context.Background(), "run-1", &model.RunResult{Passed: 2}))

	mock.ExpectExec("UPDATE runs SET result").
		WithArgs(pgxmock.AnyArg(), string(model.RunStatusFailed), pgxmock.AnyArg(), "run-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, s.UpdateRunResult(context.Background(), "run-2", &model.RunResult{Error: "boom"}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun(t *testing.T) {
	s, mock := newMockStore(t)

	criteria := model.DefaultCriteria()
	criteriaJSON, err := json.Marshal(criteria)
	require.NoError(t, err)
	resultJSON, err := json.Marshal(&model.RunResult{Passed: 5})
	require.NoError(t, err)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, criteria, zip_codes, status, result, created_at, updated_at FROM runs").
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "criteria", "zip_codes", "status", "result", "created_at", "updated_at"},
		).AddRow("run-1", criteriaJSON, []string{"90066"}, model.RunStatusComplete, resultJSON, now, now))

	run, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, []string{"90066"}, run.ZipCodes)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	assert.Equal(t, criteria.MinRent, run.Criteria.MinRent)
	require.NotNil(t, run.Result)
	assert.Equal(t, 5, run.Result.Passed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveApartments(t *testing.T) {
	s, mock := newMockStore(t)

	apt := testApartment("https://example.com/a", "90066", 1, 92.5)
	mock.ExpectExec("INSERT INTO apartments").
		WithArgs(pgxmock.AnyArg(), "run-1", apt.URL, "90066", 1, 92.5,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveApartments(context.Background(), "run-1", []model.RankedApartment{apt}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListApartments(t *testing.T) {
	s, mock := newMockStore(t)

	apt := testApartment("https://example.com/a", "90066", 1, 92.5)
	data, err := json.Marshal(apt)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT data FROM apartments").
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(data))

	got, err := s.ListApartments(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, apt.URL, got[0].URL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
