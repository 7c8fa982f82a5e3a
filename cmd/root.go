// Package cmd provides the root command and CLI setup for stunt.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"stunt.dev/pkg/stunt/internal/adapter"
	"stunt.dev/pkg/stunt/internal/controller"
	"stunt.dev/pkg/stunt/internal/domain"
	m "stunt.dev/pkg/stunt/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var sourceAdapter adapter.GoSourceAdapter
var planStore adapter.PlanStore
var streamer domain.PackageStreamer
var planner domain.Planner
var workflow domain.Workflow
var ui controller.UI

// planOutputFlag is a root-level flag shared by commands that read/write saved plans.
var planOutputFlag string

// noCacheFlag disables incremental re-planning when set.
var noCacheFlag bool

// excludePatterns is a root-level flag that filters directories for applicable commands.
var excludePatterns []string

// verboseFlag switches logging to debug level.
var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	sourceAdapter = adapter.NewLocalGoSourceAdapter()
	planStore = adapter.NewYAMLPlanStore()
	streamer = domain.NewPackageStreamer(fsAdapter)
	planner = domain.NewASTPlanner(fsAdapter, sourceAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		planStore,
		ui,
		streamer,
		planner,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

const rootLongDescription = `Stunt isolates the dependencies of a function under test by patching the
package-level bindings it reaches for and restoring them afterwards. This
tool statically plans that isolation: it reports, per function, which names
the engine would double, which stay real, and which it cannot reach.

` + pathPatternsHelp

const planLongDescription = `Plan dependency isolation for the given paths (default: current directory).

For every function the planner lists the free names its body references and
the verdict the isolation engine would reach for each one at run time.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stunt",
		Short: "Dependency isolation planner for Go tests",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&planOutputFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"file the isolation plan is saved to and loaded from",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noCacheFlag, noCacheFlagName, viper.GetBool(noCacheFlagName), "disable cached incremental planning (re-scan everything)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noCacheFlagName), noCacheFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude directories matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		args = []string{"."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(normalizePattern(arg)))
	}

	return paths
}

// normalizePattern maps Go-style "./..." patterns onto plain directory
// roots. Every root is scanned recursively, so the wildcard suffix carries
// no extra meaning here.
func normalizePattern(arg string) string {
	if arg == "..." {
		return "."
	}

	return strings.TrimSuffix(arg, "/...")
}
