package isolate_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stunt.dev/pkg/stunt/internal/fixture"
	"stunt.dev/pkg/stunt/isolate"
)

// lintReporter counts AssertClean complaints without failing the real test.
type lintReporter struct {
	failures int
}

func (r *lintReporter) Helper() {}

func (r *lintReporter) Errorf(string, ...any) { r.failures++ }

func TestCallLogged_RotateKeepsTheLoggerLive(t *testing.T) {
	var buf bytes.Buffer

	orig := fixture.Log
	fixture.Log = slog.New(slog.NewTextHandler(&buf, nil))

	defer func() { fixture.Log = orig }()

	swapped := fixture.Log

	r, err := isolate.CallLogged(fixture.Rotate)
	require.NoError(t, err)
	defer r.Close()

	probe := r.Probe()
	require.NotNil(t, probe)

	require.True(t, probe.AssertClean(t))
	require.NoError(t, probe.Err())

	records := probe.Records()
	require.Len(t, records, 1)
	assert.Equal(t, slog.LevelInfo, records[0].Level)
	assert.Equal(t, "journal rotated", records[0].Message)
	require.Len(t, records[0].Attrs, 2)

	// Interposed loggers are not doubles; the value seams still are.
	_, doubled := r.Double("Log")
	assert.False(t, doubled)

	kept, ok := r.Args().Get("kept")
	require.True(t, ok)

	limitD, ok := r.Double("RetryLimit")
	require.True(t, ok)

	want := fmt.Sprintf("INFO journal rotated kept=%d limit=%d", kept, limitD.Value())
	assert.Equal(t, []string{want}, probe.Messages())

	diff, err := probe.DiffMessages([]string{want})
	require.NoError(t, err)
	assert.Empty(t, diff)

	// The record also reached the handler behind the seam.
	assert.Contains(t, buf.String(), `msg="journal rotated"`)
	assert.Contains(t, buf.String(), "kept=")

	assert.NotSame(t, swapped, fixture.Log)
	require.NoError(t, r.Close())
	assert.Same(t, swapped, fixture.Log)
}

func TestCallLogged_SuppressedLevelsStaySuppressed(t *testing.T) {
	var buf bytes.Buffer

	orig := fixture.Log
	fixture.Log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))

	defer func() { fixture.Log = orig }()

	r, err := isolate.CallLogged(fixture.Rotate)
	require.NoError(t, err)
	defer r.Close()

	// The probe sees the record; the downstream handler's threshold holds.
	require.Len(t, r.Probe().Records(), 1)
	assert.Zero(t, buf.Len())
}

func TestCallLogged_RotateSloppyFailsTheLint(t *testing.T) {
	r, err := isolate.CallLogged(fixture.RotateSloppy)
	require.NoError(t, err)
	defer r.Close()

	probe := r.Probe()
	require.NotNil(t, probe)

	failures := probe.Failures()
	require.Len(t, failures, 2)
	assert.Contains(t, failures[0].Reason, "dangling log argument")
	assert.Equal(t, "unexpanded printf verb in message", failures[1].Reason)

	err = probe.Err()
	require.Error(t, err)
	assert.ErrorContains(t, err, "dangling log argument")
	assert.ErrorContains(t, err, "unexpanded printf verb")

	reporter := &lintReporter{}
	assert.False(t, probe.AssertClean(reporter))
	assert.Equal(t, 2, reporter.failures)
}

func TestCallLogged_ExcludedValueSeamStaysReal(t *testing.T) {
	r, err := isolate.CallLogged(fixture.Rotate, isolate.Exclude("RetryLimit"))
	require.NoError(t, err)
	defer r.Close()

	_, doubled := r.Double("RetryLimit")
	assert.False(t, doubled)

	assert.Equal(t, map[string]string{"RetryLimit": "excluded"}, skippedReasons(r))

	messages := r.Probe().Messages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "limit=3")
}

func TestCall_PlainCallDoublesTheLogger(t *testing.T) {
	orig := fixture.Log

	r, err := isolate.Call(fixture.Rotate)
	require.NoError(t, err)
	defer r.Close()

	assert.Nil(t, r.Probe())

	logD, ok := r.Double("Log")
	require.True(t, ok)

	kept, ok := r.Args().Get("kept")
	require.True(t, ok)

	limitD, ok := r.Double("RetryLimit")
	require.True(t, ok)

	calls := logD.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, mock.Arguments{
		"INFO",
		"journal rotated",
		fmt.Sprintf("kept=%d", kept),
		fmt.Sprintf("limit=%d", limitD.Value()),
	}, calls[0])

	require.NoError(t, r.Close())
	assert.Same(t, orig, fixture.Log)
}
