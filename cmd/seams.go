package cmd

import (
	"reflect"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	// Builtin seams register themselves on import; the table should show
	// them even when nothing else is linked in.
	_ "stunt.dev/pkg/stunt/builtins"
	"stunt.dev/pkg/stunt/namespace"
)

// seamsCmd represents the seams command.
var seamsCmd = newSeamsCmd()

func newSeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seams",
		Short: "List the registered binding seams",
		Long: `List every binding registered in this process and the engine's default
policy for it. Outside a binary that links your packages, only the engine
builtins show up.`,
		Args: cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, _ []string) {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Namespace", "Name", "Type", "Default"})
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetColumnAlignment([]int{
				tablewriter.ALIGN_LEFT,
				tablewriter.ALIGN_LEFT,
				tablewriter.ALIGN_LEFT,
				tablewriter.ALIGN_LEFT,
			})

			rows := 0

			for _, path := range namespace.Paths() {
				ns, ok := namespace.Lookup(path)
				if !ok {
					continue
				}

				for _, name := range ns.Names() {
					binding, ok := ns.Resolve(name)
					if !ok {
						continue
					}

					table.Append([]string{path, name, binding.Type().String(), defaultPolicy(path, binding)})
					rows++
				}
			}

			if rows == 0 {
				cmd.Println("no seams registered")
				return
			}

			table.Render()
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(seamsCmd)
}

var errShape = reflect.TypeOf((*error)(nil)).Elem()

// defaultPolicy describes what an isolation session does with the binding
// when the caller supplies no include or exclude overrides: builtins other
// than the identity seam and error-shaped values stay real.
func defaultPolicy(path string, b *namespace.Binding) string {
	if path == namespace.BuiltinPath {
		if b.Name() == "ID" {
			return "doubled"
		}

		return "real unless included"
	}

	t := b.Type()
	if t.Implements(errShape) || (t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(errShape)) {
		return "real unless included"
	}

	return "doubled"
}
