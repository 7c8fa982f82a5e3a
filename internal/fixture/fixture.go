// Package fixture is the seam corpus the engine's own tests isolate. It is
// deliberately ordinary code: package-level seams a team would declare for
// their side effects, and callables that lean on them.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"stunt.dev/pkg/stunt/builtins"
	"stunt.dev/pkg/stunt/internal/fixture/remote"
	"stunt.dev/pkg/stunt/namespace"
)

// Package seams. Everything a test would want out of the way lives behind
// a var.
var (
	// Render turns a value into its report form.
	Render = func(v any) string { return fmt.Sprintf("%v", v) }

	// SendReport ships a rendered report of the given size to a collector.
	SendReport = func(addr string, size int) error {
		if addr == "" {
			return errors.New("fixture: empty collector address")
		}

		return nil
	}

	// Stamp is the clock seam.
	Stamp = func() int64 { return time.Now().Unix() }

	// RetryLimit caps delivery attempts.
	RetryLimit = 3

	// Greeting opens every report.
	Greeting = "status"

	// ErrVault is reported while the vault stays sealed.
	ErrVault = errors.New("fixture: vault sealed")

	// Log is the package logger seam.
	Log = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var _ = namespace.Register(
	namespace.Var("Render", &Render),
	namespace.Var("SendReport", &SendReport),
	namespace.Var("Stamp", &Stamp),
	namespace.Var("RetryLimit", &RetryLimit),
	namespace.Var("Greeting", &Greeting),
	namespace.Var("ErrVault", &ErrVault),
	namespace.Var("Log", &Log),
)

// Deliver renders the payload and ships it, retrying up to the budget.
func Deliver(addr string, payload any) error {
	line := Render(payload)

	var err error

	for attempt := 0; attempt < RetryLimit; attempt++ {
		if err = SendReport(addr, len(line)); err == nil {
			return nil
		}
	}

	return err
}

// Broadcast ships one report per collector address.
func Broadcast(payload any, addrs ...string) error {
	line := Render(payload)

	for _, addr := range addrs {
		if err := SendReport(addr, len(line)); err != nil {
			return err
		}
	}

	return nil
}

// Checksum fingerprints a payload for report deduplication.
func Checksum(v any) string {
	return fmt.Sprintf("%s-%x", Greeting, builtins.ID(v))
}

// Audit reports both ambient views of a payload.
func Audit(v any) (int, string) {
	return builtins.Length(v), fmt.Sprint(builtins.TypeOf(v))
}

// Mirror fetches a remote document and renders it locally.
func Mirror(url string) (string, error) {
	doc, err := remote.Fetch(url)
	if err != nil {
		return "", fmt.Errorf("mirror %s: %w", url, err)
	}

	return Render(doc), nil
}

// OpenVault refuses until someone turns the sealing key. Nothing does.
func OpenVault(key string) error {
	return fmt.Errorf("open vault %q: %w", key, ErrVault)
}

// Publish ships a heartbeat and then insists on the sealed vault.
func Publish(addr string) {
	if err := SendReport(addr, len(Greeting)); err != nil {
		panic(err)
	}

	MustOpenVault(Greeting)
}

// MustOpenVault is OpenVault for callers without an error path.
func MustOpenVault(key string) {
	if err := OpenVault(key); err != nil {
		panic(err)
	}
}

// Clamp bounds v to [0, limit]. It depends on nothing.
func Clamp(v, limit int) int {
	if v < 0 {
		return 0
	}

	if v > limit {
		return limit
	}

	return v
}
