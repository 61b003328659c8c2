package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/projkit/projkit/internal/pipeline"
	"github.com/spf13/cobra"
)

var archiveOutput string

func init() {
	archiveCmd.Flags().StringVarP(&archiveOutput, "output", "o", "", "Archive path (default: ./<dir-name>.zip)")
	rootCmd.AddCommand(archiveCmd)
}

var archiveCmd = &cobra.Command{
	Use:   "archive <dir>",
	Short: "Package a directory into a zip archive",
	Long: `Package every regular file under <dir> into a deflate-compressed zip
archive. Entry names start with the directory's own name, so extracting the
archive recreates <dir-name>/... .`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		target := archiveOutput
		if target == "" {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", dir, err)
			}
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			target = filepath.Join(cwd, filepath.Base(abs)+".zip")
		}
		return pipeline.CreateArchive(cmd.OutOrStdout(), dir, target)
	},
}
