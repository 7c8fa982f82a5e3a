package model

import "errors"

// ErrAnalysisUnavailable is returned when a target callable has no
// introspectable source (assembly stubs, reflect-made functions, binaries
// built without the package's files on disk). Fatal, never retried.
var ErrAnalysisUnavailable = errors.New("callable source is unavailable for analysis")

// ErrAmbiguousReceiver is returned when the receiver kind of a target
// cannot be determined (nil targets, non-functions, unparsable symbols).
// Fatal at session open, before any rebinding.
var ErrAmbiguousReceiver = errors.New("receiver kind is ambiguous")
