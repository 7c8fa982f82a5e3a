package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stunt.dev/pkg/stunt/internal/domain"
	m "stunt.dev/pkg/stunt/internal/model"
)

var planParallelFlag int
var planTestsFlag bool
var planFormatFlag string

// planCmd represents the plan command.
var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [paths...]",
		Short: "Plan dependency isolation for packages",
		Long:  planLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			paths := parsePaths(args)
			useCache := !viper.GetBool(noCacheFlagName)
			planPath := m.Path(viper.GetString(outputFlagName))

			threads := viper.GetInt(planParallelConfigKey)
			if threads < 1 {
				threads = 1
			}

			return workflow.Plan(context.Background(), domain.PlanArgs{
				Paths:        paths,
				Output:       planPath,
				Format:       parsePlanFormat(viper.GetString(planFormatConfigKey)),
				Parallel:     uint(threads),
				IncludeTests: viper.GetBool(planTestsConfigKey),
				UseCache:     useCache,
				Exclude:      viper.GetStringSlice(excludeConfigKey),
			})
		},
	}

	configurePlanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func configurePlanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&planParallelFlag, planParallelFlagName, "p", viper.GetInt(planParallelConfigKey), "number of parallel workers for package planning")
	bindFlagToConfig(cmd.Flags().Lookup(planParallelFlagName), planParallelConfigKey)

	cmd.Flags().BoolVarP(&planTestsFlag, planTestsFlagName, "t", viper.GetBool(planTestsConfigKey), "include _test.go files in the plan")
	bindFlagToConfig(cmd.Flags().Lookup(planTestsFlagName), planTestsConfigKey)

	cmd.Flags().StringVarP(&planFormatFlag, planFormatFlagName, "f", viper.GetString(planFormatConfigKey), "output format: table or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(planFormatFlagName), planFormatConfigKey)
}

// parsePlanFormat falls back to the table renderer on unknown values.
func parsePlanFormat(value string) m.PlanFormat {
	if m.PlanFormat(strings.ToLower(strings.TrimSpace(value))) == m.FormatYAML {
		return m.FormatYAML
	}

	return m.FormatTable
}
