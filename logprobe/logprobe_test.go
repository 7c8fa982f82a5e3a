package logprobe_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stunt.dev/pkg/stunt/logprobe"
)

func TestProbe_CapturesAndRendersRecords(t *testing.T) {
	probe := logprobe.New()
	logger := probe.Logger()

	logger.Info("journal rotated", "kept", 4)
	logger.Warn("backlog high", "depth", 12)

	require.Equal(t, []string{
		"INFO journal rotated kept=4",
		"WARN backlog high depth=12",
	}, probe.Messages())

	records := probe.Records()
	require.Len(t, records, 2)
	assert.Equal(t, slog.LevelInfo, records[0].Level)
	assert.Equal(t, "journal rotated", records[0].Message)

	assert.Empty(t, probe.Failures())
	assert.NoError(t, probe.Err())
}

func TestProbe_ForwardsOnlyWhatDownstreamKeeps(t *testing.T) {
	var sink bytes.Buffer

	downstream := slog.NewTextHandler(&sink, &slog.HandlerOptions{Level: slog.LevelWarn})

	probe := logprobe.New()
	logger := slog.New(probe.Wrap(downstream))

	logger.Info("suppressed downstream")
	logger.Warn("kept downstream")

	require.Len(t, probe.Messages(), 2)

	out := sink.String()
	assert.NotContains(t, out, "suppressed downstream")
	assert.Contains(t, out, "kept downstream")
}

func TestProbe_FlagsDanglingArguments(t *testing.T) {
	probe := logprobe.New()

	probe.Logger().Info("journal rotated", 7)

	failures := probe.Failures()
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Reason, "dangling log argument")
	require.Error(t, probe.Err())
}

func TestProbe_FlagsUnexpandedVerbs(t *testing.T) {
	probe := logprobe.New()

	probe.Logger().Info("journal rotated to %d", "kept", 4)

	failures := probe.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "unexpanded printf verb in message", failures[0].Reason)
}

func TestProbe_FlagsFormattingErrorMarkers(t *testing.T) {
	probe := logprobe.New()

	probe.Logger().Error("rotate failed: %!s(MISSING)")

	failures := probe.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "formatting error in message", failures[0].Reason)
}

func TestProbe_PlainPercentProseStaysClean(t *testing.T) {
	probe := logprobe.New()

	probe.Logger().Info("rotation 100% done")

	assert.Empty(t, probe.Failures())
	assert.NoError(t, probe.Err())
}

func TestProbe_BoundAttrsAndGroupsTravel(t *testing.T) {
	probe := logprobe.New()

	probe.Logger().With("job", "nightly").WithGroup("io").Info("read", "bytes", 9)

	records := probe.Records()
	require.Len(t, records, 1)

	assert.Equal(t, []string{"io"}, records[0].Groups)
	assert.Equal(t, "INFO read job=nightly bytes=9", records[0].Line)
}

type recordingT struct {
	helpers int
	errors  []string
}

func (r *recordingT) Helper() { r.helpers++ }

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}

func TestProbe_AssertCleanReportsEveryFailure(t *testing.T) {
	probe := logprobe.New()

	probe.Logger().Info("fine", "kept", 1)
	probe.Logger().Info("broken", 2)
	probe.Logger().Info("also broken %v")

	rt := &recordingT{}
	clean := probe.AssertClean(rt)

	assert.False(t, clean)
	assert.Len(t, rt.errors, 2)

	fresh := logprobe.New()
	fresh.Logger().Info("fine", "kept", 1)

	rt = &recordingT{}
	assert.True(t, fresh.AssertClean(rt))
	assert.Empty(t, rt.errors)
}

func TestProbe_DiffMessages(t *testing.T) {
	probe := logprobe.New()

	probe.Logger().Info("journal rotated", "kept", 4)

	diff, err := probe.DiffMessages([]string{"INFO journal rotated kept=4"})
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = probe.DiffMessages([]string{"INFO journal rotated kept=5"})
	require.NoError(t, err)
	assert.Contains(t, diff, "-INFO journal rotated kept=5")
	assert.Contains(t, diff, "+INFO journal rotated kept=4")
}

func TestProbe_ResetForgetsCapture(t *testing.T) {
	probe := logprobe.New()
	logger := probe.Logger()

	logger.Info("before", 1)
	require.NotEmpty(t, probe.Messages())
	require.NotEmpty(t, probe.Failures())

	probe.Reset()

	assert.Empty(t, probe.Messages())
	assert.Empty(t, probe.Failures())

	logger.Info("after", "kept", 2)
	assert.Len(t, probe.Messages(), 1)
}