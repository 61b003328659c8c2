package cli

import (
	"fmt"

	"github.com/projkit/projkit/internal/blueprint"
	"github.com/projkit/projkit/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	blueprintOut       string
	blueprintTemplates bool
)

func init() {
	blueprintCmd.Flags().StringVarP(&blueprintOut, "out", "o", "", "Write the blueprint to a file instead of stdout")
	blueprintCmd.Flags().BoolVar(&blueprintTemplates, "templates", false, "List the built-in template resources")
	rootCmd.AddCommand(blueprintCmd)
}

var blueprintCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Print the built-in blueprint",
	Long: `Print the built-in blueprint as YAML. Save it with --out, edit it, and pass
it to 'generate' to produce a customized project.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if blueprintTemplates {
			names, err := scaffold.Names()
			if err != nil {
				return fmt.Errorf("listing templates: %w", err)
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}

		data := blueprint.DefaultYAML()
		if blueprintOut == "" {
			_, err := out.Write(data)
			return err
		}
		if err := scaffold.WriteFile(blueprintOut, data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", blueprintOut)
		return nil
	},
}
