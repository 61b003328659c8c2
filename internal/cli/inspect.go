package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/projkit/projkit/internal/archive"
	"github.com/spf13/cobra"
)

var inspectExtract string

func init() {
	inspectCmd.Flags().StringVar(&inspectExtract, "extract", "", "Extract the archive into this directory")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.zip>",
	Short: "List the contents of a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	entries, err := archive.List(path)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tCOMPRESSED\tMETHOD")
	var total uint64
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", e.Name, e.Size, e.CompressedSize, e.MethodName())
		total += e.Size
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d file(s), %d bytes\n", len(entries), total)

	if inspectExtract == "" {
		return nil
	}
	if err := archive.Extract(path, inspectExtract); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Extracted to %s\n", inspectExtract)
	return nil
}
