package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "stunt.dev/pkg/stunt/internal/model"
)

// TUI implements UI for interactive terminals. One-shot reports render the
// same way SimpleUI renders them; BrowsePlans runs a Bubble Tea session.
type TUI struct {
	cmd   *cobra.Command
	plain *SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd, plain: NewSimpleUI(cmd)}
}

// Start initializes the UI.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	return p.plain.Start(ctx, options...)
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	p.plain.Close(ctx)
}

// Wait blocks until the UI is closed. The browse session blocks inside
// BrowsePlans instead, so there is nothing left to wait for.
func (p *TUI) Wait(ctx context.Context) {
	p.plain.Wait(ctx)
}

// DisplayScanInfo shows what is about to be scanned.
func (p *TUI) DisplayScanInfo(ctx context.Context, roots int, threads int) {
	p.plain.DisplayScanInfo(ctx, roots, threads)
}

// DisplayPlans prints the per-package plans or the scan error.
func (p *TUI) DisplayPlans(ctx context.Context, format m.PlanFormat, plans []m.PackagePlan, err error) error {
	return p.plain.DisplayPlans(ctx, format, plans, err)
}

// DisplayCoverage prints the final isolation coverage.
func (p *TUI) DisplayCoverage(ctx context.Context, cov m.Coverage) {
	p.plain.DisplayCoverage(ctx, cov)
}

// DisplayDiff prints the unified diff between two saved plans.
func (p *TUI) DisplayDiff(ctx context.Context, before, after m.Path, diff string) error {
	return p.plain.DisplayDiff(ctx, before, after, diff)
}

// BrowsePlans walks a saved plan function by function: a selectable list on
// top, the selected function's references in a viewport below.
func (p *TUI) BrowsePlans(ctx context.Context, plans []m.PackagePlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newBrowseModel(plans)

	// Get initial terminal size
	if f, ok := p.cmd.OutOrStdout().(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
			model.layout()
		}
	}

	// If the whole plan fits on one screen, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.cmd.OutOrStdout(), model.plainView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

var (
	browseTitleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	browseSelectStyle = lipgloss.NewStyle().Reverse(true)
	browseHelpStyle   = lipgloss.NewStyle().Faint(true)

	verdictStyles = map[m.Verdict]lipgloss.Style{
		m.VerdictPatch:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		m.VerdictBuiltinSeam:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		m.VerdictErrorValue:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		m.VerdictReceiver:     lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		m.VerdictCrossPackage: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		m.VerdictUnresolved:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}

	verdictDefaultStyle = lipgloss.NewStyle().Faint(true)
)

func styleVerdict(v m.Verdict) string {
	if style, ok := verdictStyles[v]; ok {
		return style.Render(string(v))
	}

	return verdictDefaultStyle.Render(string(v))
}

// browseEntry is one selectable function of the loaded plan.
type browseEntry struct {
	pkg string
	fn  m.FunctionPlan
}

func entryTitle(entry browseEntry) string {
	return entry.pkg + "." + functionLabel(entry.fn)
}

// browseReservedLines accounts for the title, the separator above the detail
// pane and the help footer.
const browseReservedLines = 4

// browseModel represents the Bubble Tea model for browsing function plans.
type browseModel struct {
	entries  []browseEntry
	index    int // selected entry
	top      int // first visible list row
	detail   viewport.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

func newBrowseModel(plans []m.PackagePlan) browseModel {
	var entries []browseEntry

	for _, plan := range plans {
		for _, fn := range plan.Functions() {
			entries = append(entries, browseEntry{pkg: plan.ImportPath, fn: fn})
		}
	}

	return browseModel{entries: entries}
}

func (bm browseModel) Init() tea.Cmd {
	return nil
}

func (bm browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.width = msg.Width
		bm.height = msg.Height
		bm.layout()

		return bm, nil

	case tea.KeyMsg:
		return bm.handleKeyPress(msg)
	}

	return bm, nil
}

func (bm browseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // only quit keys are special-cased
	case tea.KeyCtrlC, tea.KeyEsc:
		bm.quitting = true
		return bm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		bm.quitting = true
		return bm, tea.Quit

	case "down", "j":
		bm.moveSelection(1)
		return bm, nil

	case "up", "k":
		bm.moveSelection(-1)
		return bm, nil

	case "g", "home":
		bm.moveSelection(-len(bm.entries))
		return bm, nil

	case "G", "end":
		bm.moveSelection(len(bm.entries))
		return bm, nil
	}

	// Everything else (pgup/pgdown, mouse wheel) scrolls the detail pane.
	var cmd tea.Cmd
	bm.detail, cmd = bm.detail.Update(msg)

	return bm, cmd
}

func (bm *browseModel) moveSelection(delta int) {
	bm.index += delta

	if bm.index < 0 {
		bm.index = 0
	}

	if bm.index >= len(bm.entries) {
		bm.index = len(bm.entries) - 1
	}

	if bm.index < 0 {
		bm.index = 0
	}

	bm.scrollListToSelection()
	bm.detail.SetContent(bm.currentDetail())
	bm.detail.GotoTop()
}

func (bm *browseModel) scrollListToSelection() {
	listHeight := bm.listHeight()

	if bm.index < bm.top {
		bm.top = bm.index
	}

	if bm.index >= bm.top+listHeight {
		bm.top = bm.index - listHeight + 1
	}

	if bm.top < 0 {
		bm.top = 0
	}
}

// listHeight reserves roughly a third of the screen for the function list.
func (bm browseModel) listHeight() int {
	if bm.height == 0 {
		return 10
	}

	h := (bm.height - browseReservedLines) / 3
	if h < 3 {
		h = 3
	}

	return h
}

func (bm *browseModel) layout() {
	detailHeight := bm.height - bm.listHeight() - browseReservedLines
	if detailHeight < 3 {
		detailHeight = 3
	}

	if !bm.ready {
		bm.detail = viewport.New(bm.width, detailHeight)
		bm.ready = true
	} else {
		bm.detail.Width = bm.width
		bm.detail.Height = detailHeight
	}

	bm.detail.SetContent(bm.currentDetail())
	bm.scrollListToSelection()
}

func (bm browseModel) currentDetail() string {
	if len(bm.entries) == 0 {
		return "no functions in this plan\n"
	}

	return detailFor(bm.entries[bm.index])
}

func detailFor(entry browseEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s:%d (%s receiver)\n", entry.fn.File, entry.fn.Line, entry.fn.ReceiverKind)

	if len(entry.fn.Params) > 0 {
		fmt.Fprintf(&b, "params: %s\n", strings.Join(entry.fn.Params, ", "))
	}

	if len(entry.fn.Refs) == 0 {
		b.WriteString("  no free names\n")
		return b.String()
	}

	for _, ref := range entry.fn.Refs {
		fmt.Fprintf(&b, "  %4d  %-24s %s", ref.Line, refLabel(ref), styleVerdict(ref.Verdict))

		if ref.Reason != "" {
			fmt.Fprintf(&b, "  %s", browseHelpStyle.Render(ref.Reason))
		}

		b.WriteString("\n")
	}

	return b.String()
}

// needsPagination reports whether the plan is too large to print in one go.
func (bm browseModel) needsPagination() bool {
	if len(bm.entries) == 0 || bm.height == 0 {
		return false
	}

	lines := 0
	for _, entry := range bm.entries {
		lines += 2 + len(entry.fn.Refs)
	}

	return lines > bm.height
}

// plainView renders every function with its detail, for output that fits a
// single screen or is not a terminal.
func (bm browseModel) plainView() string {
	var b strings.Builder

	if len(bm.entries) == 0 {
		b.WriteString("no functions in this plan\n")
		return b.String()
	}

	for _, entry := range bm.entries {
		b.WriteString(entryTitle(entry))
		b.WriteString("\n")
		b.WriteString(detailFor(entry))
		b.WriteString("\n")
	}

	return b.String()
}

func (bm browseModel) View() string {
	if bm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(browseTitleStyle.Render(fmt.Sprintf("stunt plan: %d function(s)", len(bm.entries))))
	b.WriteString("\n")

	listHeight := bm.listHeight()

	end := bm.top + listHeight
	if end > len(bm.entries) {
		end = len(bm.entries)
	}

	for i := bm.top; i < end; i++ {
		row := fmt.Sprintf("  %s (%d refs)", entryTitle(bm.entries[i]), len(bm.entries[i].fn.Refs))

		if i == bm.index {
			row = browseSelectStyle.Render(">" + row[1:])
		}

		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("-", max(bm.width, 1)))
	b.WriteString("\n")

	if bm.ready {
		b.WriteString(bm.detail.View())
		b.WriteString("\n")
	}

	b.WriteString(browseHelpStyle.Render("up/k down/j: select | pgup/pgdn: scroll detail | g/G: first/last | q: quit"))

	return b.String()
}
