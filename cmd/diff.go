package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"stunt.dev/pkg/stunt/internal/domain"
	m "stunt.dev/pkg/stunt/internal/model"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <before> <after>",
		Short: "Compare two saved isolation plans",
		Long: `Compare two saved isolation plans and print a unified diff of what
changed: functions gained or lost, verdicts that moved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Diff(context.Background(), domain.DiffArgs{
				Before: m.Path(args[0]),
				After:  m.Path(args[1]),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
