package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "stunt.dev/pkg/stunt/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayScanInfo shows what is about to be scanned.
func (s *SimpleUI) DisplayScanInfo(ctx context.Context, roots int, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Planning %d path(s) with %d worker(s)\n", roots, threads)
}

// DisplayPlans prints the per-package plans or the scan error.
func (s *SimpleUI) DisplayPlans(ctx context.Context, format m.PlanFormat, plans []m.PackagePlan, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("plan error: %v\n", err)
		return err
	}

	if format == m.FormatYAML {
		doc, marshalErr := yaml.Marshal(plans)
		if marshalErr != nil {
			return fmt.Errorf("encode plans: %w", marshalErr)
		}

		s.printf("%s", doc)

		return nil
	}

	for _, plan := range plans {
		s.printf("\n%s", renderPlanTable(plan))
	}

	return nil
}

func renderPlanTable(plan m.PackagePlan) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Function", "Reference", "Line", "Verdict"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	functionsCount := 0
	refsCount := 0

	for _, fn := range plan.Functions() {
		functionsCount++

		if len(fn.Refs) == 0 {
			table.Append([]string{functionLabel(fn), "(no free names)", fmt.Sprintf("%d", fn.Line), ""})
			continue
		}

		for _, ref := range fn.Refs {
			table.Append([]string{
				functionLabel(fn),
				refLabel(ref),
				fmt.Sprintf("%d", ref.Line),
				string(ref.Verdict),
			})

			refsCount++
		}
	}

	table.SetFooter([]string{
		plan.ImportPath,
		fmt.Sprintf("Functions %d", functionsCount),
		"",
		fmt.Sprintf("Refs %d", refsCount),
	})

	table.Render()

	return tableBuffer.String()
}

func functionLabel(fn m.FunctionPlan) string {
	if fn.Receiver != "" {
		return fn.Receiver + "." + fn.Function
	}

	return fn.Function
}

func refLabel(ref m.PlannedReference) string {
	if ref.Sel != "" {
		return ref.Name + "." + ref.Sel
	}

	return ref.Name
}

// DisplayCoverage prints the final isolation coverage.
func (s *SimpleUI) DisplayCoverage(ctx context.Context, cov m.Coverage) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Isolation coverage: %.2f%% (%d/%d references patchable)\n", cov.Score()*100, cov.Patchable, cov.Total)
}

// DisplayDiff prints the unified diff between two saved plans.
func (s *SimpleUI) DisplayDiff(ctx context.Context, before, after m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("No plan changes between %s and %s\n", before, after)
		return nil
	}

	s.printf("%s", diff)

	return nil
}

// BrowsePlans prints the saved plans; plain output has no interactive mode.
func (s *SimpleUI) BrowsePlans(ctx context.Context, plans []m.PackagePlan) error {
	return s.DisplayPlans(ctx, m.FormatTable, plans, nil)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
