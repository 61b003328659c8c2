package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/projkit/projkit/internal/archive"
	"github.com/projkit/projkit/internal/blueprint"
	"github.com/projkit/projkit/internal/manifest"
	"github.com/projkit/projkit/internal/platform"
	"github.com/projkit/projkit/internal/scaffold"
)

// Options configures a generation run.
type Options struct {
	// Blueprint describes the project. Required.
	Blueprint *blueprint.Blueprint

	// Templates is searched for template resources before the built-in set.
	// Typically the directory holding the blueprint file.
	Templates fs.FS

	// OutputDir is the parent directory of the project root. Defaults to ".".
	OutputDir string

	// ArchiveDir receives the archive. Defaults to OutputDir.
	ArchiveDir string

	// SkipArchive disables packaging regardless of the blueprint.
	SkipArchive bool

	// Clean removes an existing project root before building.
	Clean bool
}

// Result describes what a run produced.
type Result struct {
	Root        string   // project root on disk
	Directories []string // blueprint directories ensured under Root
	Files       []string // boilerplate files written, relative to Root
	Manifest    string   // manifest path on disk, empty when none
	Archive     string   // archive path, empty when packaging was skipped
	Warnings    []string // non-fatal manifest problems
}

// Boilerplate is the output of the WriteBoilerplate step.
type Boilerplate struct {
	Files    []string
	Manifest string
	Warnings []string
}

// Run executes the generation steps in order and stops at the first failure.
// The returned Result is populated with everything completed so far, even on
// error.
func Run(w io.Writer, opts Options) (*Result, error) {
	if w == nil {
		w = io.Discard
	}
	bp := opts.Blueprint
	if bp == nil {
		return nil, errors.New("no blueprint given")
	}
	if !blueprint.ValidName(bp.Name) {
		return nil, fmt.Errorf("invalid project name %q: must be a single path segment", bp.Name)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	archiveDir := opts.ArchiveDir
	if archiveDir == "" {
		archiveDir = outputDir
	}

	res := &Result{Root: filepath.Join(outputDir, bp.Name)}

	if opts.Clean {
		if err := clean(w, res.Root); err != nil {
			fmt.Fprintf(w, "  [FAIL] clean: %v\n", err)
			return res, err
		}
	}

	fmt.Fprintf(w, "Scaffold %s:\n", bp.Name)
	if err := BuildScaffold(w, res.Root, bp.Directories); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return res, err
	}
	res.Directories = append(res.Directories, bp.Directories...)

	fmt.Fprintln(w, "Boilerplate:")
	var renderer *scaffold.Renderer
	if opts.Templates != nil {
		renderer = scaffold.NewRenderer(opts.Templates)
	} else {
		renderer = scaffold.NewRenderer()
	}
	out, err := WriteBoilerplate(w, res.Root, bp, renderer)
	if out != nil {
		res.Files = out.Files
		res.Manifest = out.Manifest
		res.Warnings = out.Warnings
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return res, err
	}

	fmt.Fprintln(w, "Archive:")
	if opts.SkipArchive || !bp.ArchiveEnabled() {
		fmt.Fprintln(w, "  [SKIP] archiving disabled")
		return res, nil
	}
	archivePath := filepath.Join(archiveDir, bp.ArchiveName())
	if err := CreateArchive(w, res.Root, archivePath); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return res, err
	}
	res.Archive = archivePath
	return res, nil
}

// BuildScaffold creates root and every directory entry beneath it.
func BuildScaffold(w io.Writer, root string, dirs []string) error {
	return scaffold.EnsureTree(w, root, dirs)
}

// WriteBoilerplate writes the blueprint's files and, when the blueprint
// declares one, its application manifest. Manifest check problems are
// returned as warnings and reported on w; they never fail the step.
func WriteBoilerplate(w io.Writer, root string, bp *blueprint.Blueprint, r *scaffold.Renderer) (*Boilerplate, error) {
	out := &Boilerplate{}

	files, err := scaffold.WriteBoilerplate(w, root, bp.Files, r, renderData(bp))
	out.Files = files
	if err != nil {
		return out, err
	}

	if bp.Manifest == nil {
		return out, nil
	}

	rel := bp.ManifestPath()
	if dir := path.Dir(rel); dir != "." {
		if err := scaffold.EnsureTree(nil, root, []string{dir}); err != nil {
			return out, err
		}
	}
	target := filepath.Join(root, filepath.FromSlash(rel))
	if err := manifest.Write(target, &bp.Manifest.Data); err != nil {
		return out, &scaffold.FilesystemError{Op: "write", Path: target, Entry: rel, Err: err}
	}
	fmt.Fprintf(w, "  [ OK ] Wrote %s\n", target)
	out.Manifest = target

	for _, issue := range manifest.Check(&bp.Manifest.Data) {
		msg := fmt.Sprintf("%s: %s", rel, issue)
		fmt.Fprintf(w, "  [WARN] %s\n", msg)
		out.Warnings = append(out.Warnings, msg)
	}
	return out, nil
}

// CreateArchive packages root into archivePath. The archive's directory is
// created when missing.
func CreateArchive(w io.Writer, root, archivePath string) error {
	if err := os.MkdirAll(filepath.Dir(archivePath), platform.DirMode); err != nil {
		return &archive.ArchiveError{Op: "create", Path: archivePath, Err: err}
	}
	if err := archive.Directory(root, archivePath); err != nil {
		return err
	}
	fmt.Fprintf(w, "  [ OK ] Archived %s -> %s\n", root, archivePath)
	return nil
}

func clean(w io.Writer, root string) error {
	if _, err := os.Lstat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("removing %s: %w", root, err)
	}
	fmt.Fprintf(w, "  [ OK ] Removed %s\n", root)
	return nil
}

// renderData collects template variables. The product name prefers the
// manifest's build.productName, then the product_name variable, then the
// project name.
func renderData(bp *blueprint.Blueprint) scaffold.RenderData {
	data := scaffold.RenderData{
		Project:     bp.Name,
		ProductName: bp.Name,
		Description: bp.Description,
		Vars:        bp.Variables,
	}
	if data.Vars == nil {
		data.Vars = map[string]string{}
	}
	if v := bp.Variables["product_name"]; v != "" {
		data.ProductName = v
	}
	if bp.Manifest == nil {
		return data
	}

	m := bp.Manifest.Data
	data.Version = m.Version
	if data.Description == "" {
		data.Description = m.Description
	}
	if m.Build != nil && m.Build.ProductName != "" {
		data.ProductName = m.Build.ProductName
	}
	return data
}
