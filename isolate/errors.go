package isolate

import m "stunt.dev/pkg/stunt/internal/model"

// Sentinel errors of session construction. Both fire before any rebinding,
// so a failed Open never leaves partial patches behind.
var (
	// ErrAnalysisUnavailable reports a callable whose declaration cannot be
	// located, read or parsed.
	ErrAnalysisUnavailable = m.ErrAnalysisUnavailable

	// ErrAmbiguousReceiver reports a callable whose runtime identity and
	// declared receiver shape disagree, or whose declared parameters do not
	// line up with its value's arity.
	ErrAmbiguousReceiver = m.ErrAmbiguousReceiver
)
