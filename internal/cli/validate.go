package cli

import (
	"errors"
	"fmt"

	"github.com/projkit/projkit/internal/blueprint"
	"github.com/projkit/projkit/internal/manifest"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <blueprint.yaml>",
	Short: "Check a blueprint without generating anything",
	Long: `Validate a blueprint against the blueprint schema, reject entries that
would escape the project root, and report manifest fields a package manager
would refuse. Manifest findings are warnings; schema and path problems fail.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Blueprint validation: %s\n", path)

	result, err := blueprint.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return fmt.Errorf("blueprint validation failed: %w", err)
	}
	if !result.Valid {
		return reportIssues(cmd, path, result.Issues)
	}

	bp, err := blueprint.Load(path)
	if err != nil {
		var inv *blueprint.InvalidError
		if errors.As(err, &inv) {
			return reportIssues(cmd, path, inv.Issues)
		}
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return err
	}
	fmt.Fprintf(out, "  [ OK ] Valid blueprint: %s (%d directories, %d files)\n", bp.Name, len(bp.Directories), len(bp.Files))

	if bp.Manifest == nil {
		return nil
	}
	issues := manifest.Check(&bp.Manifest.Data)
	if len(issues) == 0 {
		fmt.Fprintf(out, "  [ OK ] Manifest %s (v%s)\n", bp.Manifest.Data.Name, bp.Manifest.Data.Version)
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintf(out, "  [WARN] %s: %s\n", bp.ManifestPath(), issue)
	}
	return nil
}

func reportIssues(cmd *cobra.Command, path string, issues []blueprint.ValidationIssue) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(out, "    - %s\n", issue)
	}
	return fmt.Errorf("blueprint %s has %d validation issue(s)", path, len(issues))
}
