// Package logprobe interposes on slog handlers during isolation. A probe
// sees every record a target emits — without silencing the real logger —
// and lints each one for the mistakes structured logging invites: values
// with no key, and printf verbs in messages nothing will ever expand.
package logprobe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
)

// badKey is the key slog assigns to a dangling key/value argument.
const badKey = "!BADKEY"

// verbPattern matches the printf verbs people reach for out of habit. The
// flag set deliberately omits ' ' so prose like "100% done" stays clean.
var verbPattern = regexp.MustCompile(`%[-+#0]?\d*(?:\.\d+)?[sdvqxXfFgGeEtTwb]`)

// Record is one captured log record: handler-bound attributes first, then
// the record's own, with the open group names kept alongside.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   []slog.Attr
	Groups  []string
	Line    string // rendered "LEVEL message key=value ..."
}

// Failure is one record the lint rejected.
type Failure struct {
	Record Record
	Reason string
}

// TestingT is the slice of testing.TB that AssertClean needs.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
}

// Probe accumulates records and lint failures from every handler it wraps.
// One probe can sit in front of any number of loggers; all of them feed the
// same capture. Safe for concurrent use.
type Probe struct {
	mu       sync.Mutex
	records  []Record
	failures []Failure
}

// New returns an empty probe.
func New() *Probe {
	return &Probe{}
}

// Wrap returns a handler that records and lints every record, then forwards
// it to next when next would keep it. A nil next captures only.
func (p *Probe) Wrap(next slog.Handler) slog.Handler {
	return &interposer{probe: p, next: next}
}

// Logger is a capture-only convenience: a logger only the probe sees.
func (p *Probe) Logger() *slog.Logger {
	return slog.New(p.Wrap(nil))
}

// Records returns the captured records in emission order.
func (p *Probe) Records() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Record, len(p.records))
	copy(out, p.records)

	return out
}

// Messages returns the rendered record lines in emission order.
func (p *Probe) Messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.records))
	for i, r := range p.records {
		out[i] = r.Line
	}

	return out
}

// Failures returns the records the lint rejected.
func (p *Probe) Failures() []Failure {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Failure, len(p.failures))
	copy(out, p.failures)

	return out
}

// Err joins every lint failure into one error, nil when the capture is
// clean.
func (p *Probe) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	errs := make([]error, len(p.failures))
	for i, f := range p.failures {
		errs[i] = fmt.Errorf("%s: %s", f.Reason, f.Record.Line)
	}

	return errors.Join(errs...)
}

// AssertClean fails t once per lint failure and reports whether the capture
// was clean.
func (p *Probe) AssertClean(t TestingT) bool {
	t.Helper()

	failures := p.Failures()
	for _, f := range failures {
		t.Errorf("log record failed lint: %s (%s)", f.Reason, f.Record.Line)
	}

	return len(failures) == 0
}

// DiffMessages renders the unified difference between the wanted lines and
// the captured ones, empty when they agree.
func (p *Probe) DiffMessages(want []string) (string, error) {
	got := p.Messages()

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(want, "\n")),
		B:        difflib.SplitLines(strings.Join(got, "\n")),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
}

// Reset forgets captured records and failures; wrapped handlers stay wired.
func (p *Probe) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.records = nil
	p.failures = nil
}

func (p *Probe) observe(rec Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.records = append(p.records, rec)

	for _, a := range rec.Attrs {
		if a.Key == badKey {
			p.failures = append(p.failures, Failure{
				Record: rec,
				Reason: fmt.Sprintf("dangling log argument %v", a.Value),
			})
		}
	}

	switch {
	case strings.Contains(rec.Message, "%!"):
		p.failures = append(p.failures, Failure{Record: rec, Reason: "formatting error in message"})
	case verbPattern.MatchString(rec.Message):
		p.failures = append(p.failures, Failure{Record: rec, Reason: "unexpanded printf verb in message"})
	}
}

// interposer is the slog.Handler the probe hands out. It claims every
// level so nothing escapes capture, and consults the downstream handler
// before forwarding so suppressed levels stay suppressed.
type interposer struct {
	probe  *Probe
	next   slog.Handler
	attrs  []slog.Attr
	groups []string
}

func (h *interposer) Enabled(context.Context, slog.Level) bool { return true }

func (h *interposer) Handle(ctx context.Context, r slog.Record) error {
	h.probe.observe(h.snapshot(r))

	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}

	return nil
}

func (h *interposer) WithAttrs(attrs []slog.Attr) slog.Handler {
	var next slog.Handler
	if h.next != nil {
		next = h.next.WithAttrs(attrs)
	}

	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &interposer{probe: h.probe, next: next, attrs: merged, groups: h.groups}
}

func (h *interposer) WithGroup(name string) slog.Handler {
	var next slog.Handler
	if h.next != nil {
		next = h.next.WithGroup(name)
	}

	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)

	return &interposer{probe: h.probe, next: next, attrs: h.attrs, groups: groups}
}

func (h *interposer) snapshot(r slog.Record) Record {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	rec := Record{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
		Groups:  h.groups,
	}
	rec.Line = renderLine(rec)

	return rec
}

func renderLine(rec Record) string {
	var b strings.Builder

	b.WriteString(rec.Level.String())
	b.WriteByte(' ')
	b.WriteString(rec.Message)

	for _, a := range rec.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}

	return b.String()
}
