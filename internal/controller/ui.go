// Package controller provides output adapters for presenting isolation plans.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "stunt.dev/pkg/stunt/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModePlan StartMode = iota
	ModeBrowse
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithPlanMode sets the UI to one-shot plan reporting.
func WithPlanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModePlan
	}
}

// WithBrowseMode sets the UI to interactive plan browsing.
func WithBrowseMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeBrowse
	}
}

// UI defines the interface for presenting isolation plans.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayScanInfo(ctx context.Context, roots int, threads int)
	DisplayPlans(ctx context.Context, format m.PlanFormat, plans []m.PackagePlan, err error) error
	DisplayCoverage(ctx context.Context, cov m.Coverage)
	DisplayDiff(ctx context.Context, before, after m.Path, diff string) error
	BrowsePlans(ctx context.Context, plans []m.PackagePlan) error
}

// NewUI picks the interactive TUI on terminals and the plain writer
// everywhere else.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
