package fixture

// Rotate trims the report backlog and logs the outcome the right way.
func Rotate(kept int) {
	Log.Info("journal rotated", "kept", kept, "limit", RetryLimit)
}

// RotateSloppy logs the way nobody should: a printf verb with no printf
// and a value with no key.
func RotateSloppy(kept int) {
	Log.Info("journal rotated to %d", kept)
}
