package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/t1250-loader/internal/domain/model"
	"github.com/target/t1250-loader/internal/observability/statsd"
)

func TestEmitFileLoad_Committed(t *testing.T) {
	var rec statsd.Recorder
	report := &model.LoadReport{
		BusinessUnit:    "Toll Priority",
		Records:         5,
		Skipped:         1,
		JobsCreated:     3,
		JobItemsCreated: 4,
		CommsEvents:     []model.CommsEvent{{Channel: model.ChannelEmail, JobItemID: 1, Template: model.TemplateBody}},
		Committed:       true,
		Duration:        250 * time.Millisecond,
	}

	EmitFileLoad(&rec, report, nil)

	files, ok := rec.Find("load.files")
	require.True(t, ok)
	assert.Equal(t, float64(1), files.Value)
	assert.Equal(t, "committed", files.Tags["result"])
	assert.Equal(t, "Toll Priority", files.Tags["bu"])
	assert.Equal(t, "false", files.Tags["dry_run"])
	assert.NotContains(t, files.Tags, "error_class")

	for name, want := range map[string]float64{
		"load.records":           5,
		"load.records_skipped":   1,
		"load.jobs_created":      3,
		"load.job_items_created": 4,
		"load.comms_events":      1,
		"load.duration":          250,
	} {
		m, ok := rec.Find(name)
		require.True(t, ok, name)
		assert.Equal(t, want, m.Value, name)
	}
}

type classed struct{}

func (classed) Error() string      { return "no eof" }
func (classed) ErrorClass() string { return "missing_eof" }

func TestEmitFileLoad_Failure(t *testing.T) {
	var rec statsd.Recorder
	EmitFileLoad(&rec, &model.LoadReport{BusinessUnit: "Toll Priority", Records: 2}, classed{})

	files, ok := rec.Find("load.files")
	require.True(t, ok)
	assert.Equal(t, "rolled_back", files.Tags["result"])
	assert.Equal(t, "missing_eof", files.Tags["error_class"])

	_, ok = rec.Find("load.duration")
	assert.False(t, ok)
}

func TestResult(t *testing.T) {
	assert.Equal(t, ResultDryRun, Result(&model.LoadReport{DryRun: true}, nil))
	assert.Equal(t, ResultCommitted, Result(&model.LoadReport{Committed: true}, nil))
	assert.Equal(t, ResultRolledBack, Result(&model.LoadReport{Committed: true}, errors.New("x")))
	assert.Equal(t, ResultRolledBack, Result(nil, nil))
}

func TestEmitFileLoad_NilSafe(t *testing.T) {
	EmitFileLoad(nil, &model.LoadReport{}, nil)
	var rec statsd.Recorder
	EmitFileLoad(&rec, nil, nil)
	assert.Empty(t, rec.Metrics())
}

func TestCloneTags(t *testing.T) {
	assert.Nil(t, CloneTags(nil))
	src := map[string]string{"a": "1"}
	cp := CloneTags(src)
	cp["a"] = "2"
	assert.Equal(t, "1", src["a"])
}
