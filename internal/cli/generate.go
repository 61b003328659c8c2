package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/projkit/projkit/internal/blueprint"
	"github.com/projkit/projkit/internal/config"
	"github.com/projkit/projkit/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	genOutputDir  string
	genArchiveDir string
	genNoArchive  bool
	genClean      bool
	genPublish    bool
	genName       string
	genQuiet      bool
)

func init() {
	generateCmd.Flags().StringVar(&genOutputDir, "output-dir", "", "Parent directory of the project root (default: config output_dir)")
	generateCmd.Flags().StringVar(&genArchiveDir, "archive-dir", "", "Directory for the zip archive (default: output directory)")
	generateCmd.Flags().BoolVar(&genNoArchive, "no-archive", false, "Skip packaging the project")
	generateCmd.Flags().BoolVar(&genClean, "clean", false, "Remove an existing project root before generating")
	generateCmd.Flags().BoolVar(&genPublish, "publish", false, "Upload the archive to the configured bucket")
	generateCmd.Flags().StringVar(&genName, "name", "", "Override the project root name")
	generateCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:     "generate [blueprint.yaml]",
	Aliases: []string{"new"},
	Short:   "Generate a project from a blueprint",
	Long: `Create the project tree described by a blueprint, write its boilerplate
files and manifest, and package it as <name>.zip.

Without an argument the built-in Electron desktop blueprint is used.
Templates referenced by a blueprint file are looked up next to that file
first, then in the built-in set.

Examples:
  projkit generate
  projkit generate app.yaml --output-dir ./build --archive-dir ./dist
  projkit generate --name my-clinic-app --no-archive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	bp, templates, err := loadBlueprint(args)
	if err != nil {
		return err
	}
	if genName != "" {
		if err := bp.SetName(genName); err != nil {
			return err
		}
	}

	outputDir := genOutputDir
	if outputDir == "" {
		outputDir = config.OutputDir()
	}
	archiveDir := genArchiveDir
	if archiveDir == "" {
		archiveDir = config.ArchiveDir()
	}

	out := cmd.OutOrStdout()
	var progress io.Writer = out
	if genQuiet {
		progress = io.Discard
	}

	res, err := pipeline.Run(progress, pipeline.Options{
		Blueprint:   bp,
		Templates:   templates,
		OutputDir:   outputDir,
		ArchiveDir:  archiveDir,
		SkipArchive: genNoArchive,
		Clean:       genClean,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(progress, "\nGenerated %s (%d directories, %d files)\n", res.Root, len(res.Directories), generatedFiles(res))
	if res.Archive != "" {
		fmt.Fprintf(out, "%s\n", res.Archive)
	}

	if !genPublish {
		return nil
	}
	if res.Archive == "" {
		return fmt.Errorf("nothing to publish: archiving is disabled")
	}
	return publishArchive(cmd, res.Archive)
}

// loadBlueprint reads the blueprint named by args, or the built-in one when
// args is empty. The returned fs.FS is the blueprint's directory, used for
// template lookup.
func loadBlueprint(args []string) (*blueprint.Blueprint, fs.FS, error) {
	if len(args) == 0 {
		bp, err := blueprint.Default()
		return bp, nil, err
	}

	bp, err := blueprint.Load(args[0])
	if err != nil {
		return nil, nil, err
	}
	dir, err := filepath.Abs(filepath.Dir(args[0]))
	if err != nil {
		return nil, nil, fmt.Errorf("resolving blueprint directory: %w", err)
	}
	return bp, os.DirFS(dir), nil
}

func generatedFiles(res *pipeline.Result) int {
	n := len(res.Files)
	if res.Manifest != "" {
		n++
	}
	return n
}
