package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"stunt.dev/pkg/stunt/internal/adapter"
	"stunt.dev/pkg/stunt/internal/controller"
	m "stunt.dev/pkg/stunt/internal/model"
	pkg "stunt.dev/pkg/stunt/pkg"
)

// PlanArgs contains the arguments for planning a set of packages.
type PlanArgs struct {
	Paths        []m.Path
	Output       m.Path
	Format       m.PlanFormat
	Parallel     uint
	IncludeTests bool
	UseCache     bool
	Exclude      []string
}

// ViewArgs contains the arguments for browsing a saved plan.
type ViewArgs struct {
	Plan m.Path
}

// DiffArgs contains the arguments for comparing two saved plans.
type DiffArgs struct {
	Before m.Path
	After  m.Path
}

// Workflow is the planning workflow behind the CLI: scan packages, persist
// the plan, browse and compare saved plans.
type Workflow interface {
	Plan(ctx context.Context, args PlanArgs) error
	View(ctx context.Context, args ViewArgs) error
	Diff(ctx context.Context, args DiffArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.PlanStore
	controller.UI
	PackageStreamer
	Planner
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	planStore adapter.PlanStore,
	ui controller.UI,
	streamer PackageStreamer,
	planner Planner,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		PlanStore:       planStore,
		UI:              ui,
		PackageStreamer: streamer,
		Planner:         planner,
	}
}

// Plan scans every package under args.Paths in parallel, displays the plans,
// and saves them when an output path is set.
func (w *workflow) Plan(ctx context.Context, args PlanArgs) error {
	if err := w.Start(ctx, controller.WithPlanMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	threads := int(args.Parallel)
	if threads < 1 {
		threads = 1
	}

	// YAML output has to stay machine-readable, so the banner and the
	// coverage footer are suppressed for it.
	if args.Format != m.FormatYAML {
		w.DisplayScanInfo(ctx, len(args.Paths), threads)
	}

	plans, err := w.scan(ctx, args, threads, w.cachedPlans(args))
	if err != nil {
		_ = w.DisplayPlans(ctx, args.Format, nil, err)
		w.Close(ctx)
		slog.Error("Failed to plan packages", "error", err)

		return fmt.Errorf("plan packages: %w", err)
	}

	if err := w.DisplayPlans(ctx, args.Format, plans, nil); err != nil {
		w.Close(ctx)
		slog.Error("Failed to display plans", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	coverage, err := w.tally(plans)
	if err != nil {
		w.Close(ctx)
		slog.Error("Failed to tally coverage", "error", err)

		return fmt.Errorf("tally coverage: %w", err)
	}

	if args.Format != m.FormatYAML {
		w.DisplayCoverage(ctx, coverage)
	}

	if args.Output != "" {
		if err := w.Save(args.Output, plans); err != nil {
			w.Close(ctx)
			slog.Error("Failed to save plan", "error", err)

			return fmt.Errorf("save plan: %w", err)
		}
	}

	// Wait for UI to be closed by user (press 'q')
	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// View loads a saved plan and hands it to the UI for browsing.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithBrowseMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	plans, err := w.Load(args.Plan)
	if err != nil {
		w.Close(ctx)
		slog.Error("Failed to load plan", "error", err)

		return fmt.Errorf("load plan: %w", err)
	}

	if err := w.BrowsePlans(ctx, plans); err != nil {
		w.Close(ctx)
		slog.Error("Failed to browse plan", "error", err)

		return fmt.Errorf("browse: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// Diff compares two saved plans and displays their unified difference.
func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	if err := w.Start(ctx, controller.WithPlanMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	diff, err := w.renderDiff(args.Before, args.After)
	if err != nil {
		w.Close(ctx)
		slog.Error("Failed to diff plans", "error", err)

		return fmt.Errorf("diff plans: %w", err)
	}

	if err := w.DisplayDiff(ctx, args.Before, args.After, diff); err != nil {
		w.Close(ctx)
		slog.Error("Failed to display diff", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// scan streams package directories and plans them in parallel, reusing
// cached plans for directories whose files did not change.
func (w *workflow) scan(ctx context.Context, args PlanArgs, threads int, cached map[m.Path]m.PackagePlan) ([]m.PackagePlan, error) {
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	dirs := w.Get(gctx, args.Paths, args.Exclude, threads)

	var (
		plansMutex sync.Mutex
		plans      []m.PackagePlan
	)

	for dir := range dirs {
		currentDir := dir

		group.Go(func() error {
			plan, ok := w.cachedPlan(cached, currentDir, args.IncludeTests)
			if !ok {
				var err error

				plan, err = w.PlanPackage(currentDir, args.IncludeTests)
				if errors.Is(err, ErrNoGoFiles) {
					// Discovery surfaces test-only directories; with tests
					// excluded there is nothing to plan in them.
					return nil
				}

				if err != nil {
					return fmt.Errorf("plan %s: %w", currentDir, err)
				}
			}

			plansMutex.Lock()

			plans = append(plans, plan)

			plansMutex.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := gctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(plans, func(i, j int) bool { return plans[i].Dir < plans[j].Dir })

	return plans, nil
}

// cachedPlans loads the previous run from args.Output so unchanged packages
// can skip re-planning. A missing or unreadable plan just disables the cache.
func (w *workflow) cachedPlans(args PlanArgs) map[m.Path]m.PackagePlan {
	if !args.UseCache || args.Output == "" {
		return nil
	}

	saved, err := w.Load(args.Output)
	if err != nil {
		slog.Debug("No usable plan cache", "path", args.Output, "error", err)
		return nil
	}

	cached := make(map[m.Path]m.PackagePlan, len(saved))
	for _, plan := range saved {
		cached[plan.Dir] = plan
	}

	return cached
}

var errPlanStale = errors.New("cached plan is stale")

// cachedPlan re-hashes the directory's Go files and reuses the saved plan
// only when the file set and every fingerprint match.
func (w *workflow) cachedPlan(cached map[m.Path]m.PackagePlan, dir m.Path, includeTests bool) (m.PackagePlan, bool) {
	saved, ok := cached[dir]
	if !ok {
		return m.PackagePlan{}, false
	}

	savedHashes := make(map[m.Path]string, len(saved.Files))
	for _, file := range saved.Files {
		savedHashes[file.File] = file.Hash
	}

	current := 0

	err := w.Walk(dir, false, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}

		if !includeTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}

		hash, err := w.HashFile(m.Path(path))
		if err != nil {
			return err
		}

		if savedHashes[m.Path(path)] != hash {
			return errPlanStale
		}

		current++

		return nil
	})
	if err != nil {
		return m.PackagePlan{}, false
	}

	// A deleted file changes the plan too, so the counts must agree.
	if current != len(saved.Files) {
		return m.PackagePlan{}, false
	}

	slog.Debug("Reusing cached plan", "dir", dir)

	return saved, true
}

// tally spools the plans to disk and folds them into a coverage summary.
func (w *workflow) tally(plans []m.PackagePlan) (m.Coverage, error) {
	spool, err := pkg.NewSpool[m.PackagePlan]()
	if err != nil {
		return m.Coverage{}, fmt.Errorf("spool plans: %w", err)
	}

	defer func() {
		_ = spool.Close()
	}()

	if err := spool.AppendBatch(plans); err != nil {
		return m.Coverage{}, fmt.Errorf("spool plans: %w", err)
	}

	return coverageFromPlans(spool)
}

// renderDiff loads both plans and formats their differences as a unified
// diff over the YAML encoding.
func (w *workflow) renderDiff(before, after m.Path) (string, error) {
	beforePlans, err := w.Load(before)
	if err != nil {
		return "", err
	}

	afterPlans, err := w.Load(after)
	if err != nil {
		return "", err
	}

	beforeText, err := yaml.Marshal(beforePlans)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", before, err)
	}

	afterText, err := yaml.Marshal(afterPlans)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", after, err)
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(beforeText)),
		B:        difflib.SplitLines(string(afterText)),
		FromFile: string(before),
		ToFile:   string(after),
		Context:  3,
	})
}
