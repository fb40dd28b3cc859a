package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/t1250-loader/internal/adapters/commsfs"
	"github.com/target/t1250-loader/internal/data"
	"github.com/target/t1250-loader/internal/domain/model"
	"github.com/target/t1250-loader/internal/testutil"
)

func newPostgresLoader(t *testing.T, db *sql.DB, dir string) *LoaderService {
	t.Helper()
	writer, err := commsfs.NewWriter(commsfs.WriterOptions{Dir: dir})
	require.NoError(t, err)

	lookup := NewAgentLookupService(AgentLookupServiceOptions{Agents: data.NewAgentRepo(db)})
	clock := newFixedClock(testutil.TestTime())
	svc, err := NewLoaderService(LoaderServiceOptions{
		Store:     data.NewStore(db),
		Comms:     writer,
		Callbacks: NewCallbackRegistry(CallbackRegistryOptions{Agents: lookup, Clock: clock}),
		Clock:     clock,
	})
	require.NoError(t, err)
	return svc
}

func markerNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLoaderService_Integration_CommitsAndWritesMarkers(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		testutil.SeedAgent(t, db, "N031")
		dir := filepath.Join(t.TempDir(), "comms")
		svc := newPostgresLoader(t, db, dir)

		bu := model.BusinessUnit{ID: 1, Token: "TOLP", Name: "Toll Priority", Conditions: model.ConditionMap{SendEmail: true}}
		file := testutil.File(
			testutil.NewRecord().WithEmail("jane@example.com").Line(),
			testutil.NewRecord().WithAgent("ZZZZ").WithConnote("999").Line(),
		)

		report, err := svc.ProcessFile(ctx, FileRequest{Name: "T1250_TOLP_20131021141503.txt", BusinessUnit: bu, Reader: strings.NewReader(file)})
		require.NoError(t, err)
		assert.True(t, report.Committed)
		assert.Equal(t, 1, report.Processed)
		assert.Equal(t, 1, report.Skipped)
		require.Len(t, report.CommsEvents, 1)

		assert.Equal(t, 1, testutil.CountRows(t, db, "jobs", "card_ref_nbr = $1", "4156536111"))
		assert.Equal(t, 1, testutil.CountRows(t, db, "job_items", "connote_nbr = $1", "218501217863"))
		assert.Equal(t, 0, testutil.CountRows(t, db, "job_items", "connote_nbr = $1", "999"))
		assert.Equal(t, []string{report.CommsEvents[0].Name()}, markerNames(t, dir))
		assert.True(t, strings.HasPrefix(report.CommsEvents[0].Name(), "email."))
	})
}

func TestLoaderService_Integration_RollsBackWithoutEOF(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		testutil.SeedAgent(t, db, "N031")
		dir := t.TempDir()
		svc := newPostgresLoader(t, db, dir)

		bu := model.BusinessUnit{ID: 1, Token: "TOLP", Conditions: model.ConditionMap{SendEmail: true}}
		truncated := testutil.NewRecord().WithEmail("jane@example.com").Line() + "\n"

		report, err := svc.ProcessFile(context.Background(), FileRequest{Name: "T1250_TOLP_20131021141503.txt", BusinessUnit: bu, Reader: strings.NewReader(truncated)})
		require.ErrorIs(t, err, ErrMissingEOF)
		assert.False(t, report.Committed)
		assert.Equal(t, 0, testutil.CountRows(t, db, "jobs", ""))
		assert.Empty(t, markerNames(t, dir))
	})
}

func TestLoaderService_Integration_DryRunLeavesNoTrace(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		testutil.SeedAgent(t, db, "N031")
		dir := t.TempDir()
		svc := newPostgresLoader(t, db, dir)

		bu := model.BusinessUnit{ID: 1, Token: "TOLP", Conditions: model.ConditionMap{SendEmail: true}}
		file := testutil.File(testutil.NewRecord().WithEmail("jane@example.com").Line())

		report, err := svc.ProcessFile(context.Background(), FileRequest{Name: "T1250_TOLP_20131021141503.txt", BusinessUnit: bu, Reader: strings.NewReader(file), DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Processed)
		assert.False(t, report.Committed)
		assert.Equal(t, 0, testutil.CountRows(t, db, "jobs", ""))
		assert.Empty(t, markerNames(t, dir))
	})
}
