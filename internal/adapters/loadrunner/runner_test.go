package loadrunner

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/t1250-loader/internal/domain/model"
	"github.com/target/t1250-loader/internal/mocks"
	"github.com/target/t1250-loader/internal/observability/statsd"
	"github.com/target/t1250-loader/internal/service"
)

type fakeLoader struct {
	calls  []service.FileRequest
	bodies []string
	err    error
}

func (f *fakeLoader) ProcessFile(_ context.Context, req service.FileRequest) (*model.LoadReport, error) {
	body, _ := io.ReadAll(req.Reader)
	f.calls = append(f.calls, req)
	f.bodies = append(f.bodies, string(body))
	report := &model.LoadReport{
		File:         req.Name,
		BusinessUnit: req.BusinessUnit.Name,
		DryRun:       req.DryRun,
		Records:      1,
		Committed:    f.err == nil && !req.DryRun,
	}
	return report, f.err
}

type units map[string]model.BusinessUnit

func (u units) ByToken(token string) (model.BusinessUnit, bool) {
	bu, ok := u[strings.ToUpper(token)]
	return bu, ok
}

var testUnits = units{"TOLP": {ID: 1, Name: "Toll Priority", Token: "TOLP"}}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunner_LoadsFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "T1250_TOLP_20131021141503.txt", "a\n%%EOF\n")
	second := writeFile(t, dir, "T1250_tolp_20131021141504.txt", "b\n%%EOF\n")

	loader := &fakeLoader{}
	var rec statsd.Recorder
	r, err := NewRunner(RunnerOptions{Loader: loader, BusinessUnits: testUnits, Metrics: &rec})
	require.NoError(t, err)

	sum, err := r.Run(context.Background(), []string{first, second}, true)
	require.NoError(t, err)
	assert.Zero(t, sum.Failed())
	require.Len(t, loader.calls, 2)
	assert.Equal(t, "T1250_TOLP_20131021141503.txt", loader.calls[0].Name)
	assert.Equal(t, int64(1), loader.calls[0].BusinessUnit.ID)
	assert.True(t, loader.calls[0].DryRun)
	assert.Equal(t, []string{"a\n%%EOF\n", "b\n%%EOF\n"}, loader.bodies)

	files := 0
	for _, m := range rec.Metrics() {
		if m.Name == "load.files" {
			files++
			assert.Equal(t, "dry_run", m.Tags["result"])
		}
	}
	assert.Equal(t, 2, files)
}

func TestRunner_FailuresAreNotifiedAndCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockLoadReportNotifier(ctrl)

	dir := t.TempDir()
	unknown := writeFile(t, dir, "T1250_XXXX_20131021141503.txt", "%%EOF\n")
	badName := writeFile(t, dir, "consignments.txt", "%%EOF\n")
	good := writeFile(t, dir, "T1250_TOLP_20131021141503.txt", "%%EOF\n")

	loadErr := errors.New("db down")
	loader := &fakeLoader{err: loadErr}

	notifier.EXPECT().
		NotifyLoad(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, report *model.LoadReport, err error) error {
			require.Error(t, err)
			assert.NotEmpty(t, report.File)
			return nil
		}).
		Times(3)

	r, err := NewRunner(RunnerOptions{Loader: loader, BusinessUnits: testUnits, Notifier: notifier})
	require.NoError(t, err)

	sum, err := r.Run(context.Background(), []string{unknown, badName, good}, false)
	require.Error(t, err)
	assert.Equal(t, 3, sum.Failed())
	require.Len(t, sum.Outcomes, 3)

	assert.ErrorIs(t, sum.Outcomes[0].Err, ErrUnknownBusinessUnit)
	assert.Nil(t, sum.Outcomes[0].Report)
	assert.Error(t, sum.Outcomes[1].Err)
	assert.ErrorIs(t, sum.Outcomes[2].Err, loadErr)
	assert.NotNil(t, sum.Outcomes[2].Report)
	assert.Len(t, loader.calls, 1)
}

func TestRunner_StopsBetweenFilesOnCancel(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "T1250_TOLP_20131021141503.txt", "%%EOF\n")
	second := writeFile(t, dir, "T1250_TOLP_20131021141504.txt", "%%EOF\n")

	ctx, cancel := context.WithCancel(context.Background())
	loader := &cancelingLoader{cancel: cancel}
	r, err := NewRunner(RunnerOptions{Loader: loader, BusinessUnits: testUnits})
	require.NoError(t, err)

	sum, err := r.Run(ctx, []string{first, second}, false)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, []string{second}, sum.Pending)
	require.Len(t, sum.Outcomes, 1)
	assert.NoError(t, sum.Outcomes[0].Err)
}

type cancelingLoader struct {
	cancel context.CancelFunc
	calls  int
}

func (l *cancelingLoader) ProcessFile(ctx context.Context, req service.FileRequest) (*model.LoadReport, error) {
	l.calls++
	l.cancel()
	if ctx.Err() != nil {
		return nil, errors.New("in-flight file saw cancellation")
	}
	return &model.LoadReport{File: req.Name, Committed: true}, nil
}

func TestNewRunner_Validation(t *testing.T) {
	_, err := NewRunner(RunnerOptions{BusinessUnits: testUnits})
	require.Error(t, err)
	_, err = NewRunner(RunnerOptions{Loader: &fakeLoader{}})
	require.Error(t, err)
}
