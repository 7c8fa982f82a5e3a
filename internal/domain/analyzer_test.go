package domain

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"stunt.dev/pkg/stunt/internal/adapter"
	m "stunt.dev/pkg/stunt/internal/model"
)

func newTestAnalyzer() *ASTScopeAnalyzer {
	return NewASTScopeAnalyzer(
		adapter.NewRuntimeFuncLocator(),
		adapter.NewLocalGoSourceAdapter(),
		adapter.NewLocalSourceFSAdapter(),
	)
}

// Analysis fixtures. The engine locates these through the runtime tables and
// reads their declarations back out of this file.

var (
	testGauge   = 7
	testEmitter = func(event string) {}
	lastStamp   = "none"
)

func stageRelease(name string, dryRun bool) string {
	testEmitter(name)

	if dryRun {
		return lastStamp
	}

	return stamp(name, testGauge)
}

func stamp(name string, gauge int) string {
	_ = gauge
	return name
}

func makeCounter() func() int {
	n := 0

	return func() int {
		n++
		return n + testGauge
	}
}

type ledger struct {
	entries int
}

func (l *ledger) Post(amount int) int {
	l.entries++
	return amount + testGauge
}

func (l ledger) Snapshot() int {
	return l.entries
}

func TestAnalyze_PlainFunction(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(stageRelease)
	require.NoError(t, err)

	require.Equal(t, "stunt.dev/pkg/stunt/internal/domain", analysis.ID.PkgPath)
	require.Equal(t, "stageRelease", analysis.ID.FuncName)
	require.Equal(t, m.ReceiverNone, analysis.Sig.ReceiverKind)

	require.Len(t, analysis.Sig.Params, 2)
	require.Equal(t, "name", analysis.Sig.Params[0].Name)
	require.Equal(t, "dryRun", analysis.Sig.Params[1].Name)

	require.Equal(t, []string{"testEmitter", "lastStamp", "stamp", "testGauge"}, freeKeys(analysis.Free))

	require.Equal(t, "stunt.dev/pkg/stunt/internal/model", analysis.Imports["m"])
}

func TestAnalyze_PointerMethodExpression(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze((*ledger).Post)
	require.NoError(t, err)

	require.Equal(t, m.ReceiverInstance, analysis.Sig.ReceiverKind)
	require.Equal(t, "l", analysis.Sig.Receiver)
	require.Equal(t, "ledger", analysis.ID.TypeName)
	require.True(t, analysis.ID.Pointer)
	require.Equal(t, "ledger.Post", analysis.ID.Dotted())

	require.Len(t, analysis.Sig.Params, 1)
	require.Equal(t, "amount", analysis.Sig.Params[0].Name)

	require.Equal(t, []string{"testGauge"}, freeKeys(analysis.Free))
}

func TestAnalyze_ValueMethodExpression(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(ledger.Snapshot)
	require.NoError(t, err)

	require.Equal(t, m.ReceiverType, analysis.Sig.ReceiverKind)
	require.Equal(t, "ledger", analysis.ID.TypeName)
	require.False(t, analysis.ID.Pointer)
	require.Empty(t, analysis.Free)
}

func TestAnalyze_BoundMethodValue(t *testing.T) {
	l := &ledger{}

	analysis, err := newTestAnalyzer().Analyze(l.Post)
	require.NoError(t, err)

	require.True(t, analysis.ID.Bound)
	require.Equal(t, m.ReceiverNone, analysis.Sig.ReceiverKind)
	require.Len(t, analysis.Sig.Params, 1)
	require.Equal(t, []string{"testGauge"}, freeKeys(analysis.Free))
}

func TestAnalyze_PackageLevelLiteral(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(testEmitter)
	require.NoError(t, err)

	require.True(t, analysis.ID.Literal)
	require.Equal(t, m.ReceiverNone, analysis.Sig.ReceiverKind)
	require.Len(t, analysis.Sig.Params, 1)
	require.Equal(t, "event", analysis.Sig.Params[0].Name)
	require.Empty(t, analysis.Free)
}

func TestAnalyze_ClosureSeesEnclosingNamesAsFree(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(makeCounter())
	require.NoError(t, err)

	require.True(t, analysis.ID.Literal)
	require.Equal(t, []string{"n", "testGauge"}, freeKeys(analysis.Free))
}

func TestAnalyze_NonCallableFails(t *testing.T) {
	_, err := newTestAnalyzer().Analyze(42)
	require.ErrorIs(t, err, m.ErrAnalysisUnavailable)
}

func TestAnalyze_NilCallableFails(t *testing.T) {
	var fn func()

	_, err := newTestAnalyzer().Analyze(fn)
	require.ErrorIs(t, err, m.ErrAnalysisUnavailable)
}

func TestAnalyze_MadeFunctionHasNoSource(t *testing.T) {
	made := reflect.MakeFunc(
		reflect.TypeOf(func() {}),
		func([]reflect.Value) []reflect.Value { return nil },
	).Interface()

	_, err := newTestAnalyzer().Analyze(made)
	require.ErrorIs(t, err, m.ErrAnalysisUnavailable)
}

func TestAnalyze_RepeatedCallsHitTheParseCache(t *testing.T) {
	analyzer := newTestAnalyzer()

	first, err := analyzer.Analyze(stageRelease)
	require.NoError(t, err)

	second, err := analyzer.Analyze(stageRelease)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, freeKeys(first.Free), freeKeys(second.Free))
}
