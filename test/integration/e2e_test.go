//go:build integration

package integration_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/projkit/projkit/internal/archive"
	"github.com/projkit/projkit/internal/blueprint"
	"github.com/projkit/projkit/internal/manifest"
	"github.com/projkit/projkit/internal/pipeline"
	"github.com/projkit/projkit/internal/scaffold"
)

// TestFullFlowGenerateAndExtract runs the default blueprint end to end:
// generate -> archive -> extract -> compare with the tree on disk.
func TestFullFlowGenerateAndExtract(t *testing.T) {
	env := setupTestEnv(t)
	bp := loadDefault(t)

	var out bytes.Buffer
	res, err := pipeline.Run(&out, pipeline.Options{
		Blueprint:  bp,
		OutputDir:  env.OutputDir,
		ArchiveDir: env.ArchiveDir,
	})
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}

	// Step 1: every blueprint directory exists.
	for _, dir := range bp.Directories {
		assertDirExists(t, filepath.Join(res.Root, filepath.FromSlash(dir)))
	}

	// Step 2: manifest fidelity.
	m, err := manifest.Read(filepath.Join(res.Root, "package.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	if !reflect.DeepEqual(m, &bp.Manifest.Data) {
		t.Error("manifest on disk differs from blueprint data")
	}
	if m.Build == nil {
		t.Fatal("manifest has no build block")
	}
	nsis := m.Build.NSIS
	if nsis == nil || nsis.OneClick == nil || *nsis.OneClick || nsis.AllowToChangeInstallationDirectory == nil || !*nsis.AllowToChangeInstallationDirectory {
		t.Errorf("nsis settings not preserved: %+v", m.Build)
	}
	if len(m.Scripts) != 11 {
		t.Errorf("scripts = %d, want 11", len(m.Scripts))
	}

	// Step 3: archive round trip reproduces the regular files.
	assertFileExists(t, filepath.Join(env.ArchiveDir, "AI-Doctor-Helper-Complete.zip"))
	if err := archive.Extract(res.Archive, env.ExtractDir); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := snapshot(t, res.Root)
	got := snapshot(t, filepath.Join(env.ExtractDir, "AI-Doctor-Helper-Complete"))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extracted files = %v, want %v", sortedKeys(got), sortedKeys(want))
	}

	// Empty directories are not stored.
	assertNotExists(t, filepath.Join(env.ExtractDir, "AI-Doctor-Helper-Complete", "docs"))
}

// TestRerunLeavesTreeUnchanged covers idempotence of the whole pipeline.
func TestRerunLeavesTreeUnchanged(t *testing.T) {
	env := setupTestEnv(t)
	bp := loadDefault(t)
	opts := pipeline.Options{Blueprint: bp, OutputDir: env.OutputDir, ArchiveDir: env.ArchiveDir}

	first, err := pipeline.Run(nil, opts)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before := snapshot(t, first.Root)

	second, err := pipeline.Run(nil, opts)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !reflect.DeepEqual(snapshot(t, second.Root), before) {
		t.Error("rerun changed the generated tree")
	}

	entries, err := archive.List(second.Archive)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(before) {
		t.Errorf("archive has %d entries, tree has %d files", len(entries), len(before))
	}
}

// TestCollisionStopsBeforeArchive checks that a file blocking a directory
// aborts the run with a filesystem error and no archive.
func TestCollisionStopsBeforeArchive(t *testing.T) {
	env := setupTestEnv(t)
	bp := loadDefault(t)

	root := filepath.Join(env.OutputDir, bp.Name)
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "bundles"), []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := pipeline.Run(nil, pipeline.Options{Blueprint: bp, OutputDir: env.OutputDir, ArchiveDir: env.ArchiveDir})
	var fsErr *scaffold.FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("Run error = %v, want *scaffold.FilesystemError", err)
	}
	if !strings.HasPrefix(fsErr.Entry, "bundles/") {
		t.Errorf("Entry = %q, want a bundles/ entry", fsErr.Entry)
	}
	if !errors.Is(err, scaffold.ErrNotDir) {
		t.Errorf("error should match ErrNotDir: %v", err)
	}

	// Entries listed before the failure were created; later ones were not.
	assertDirExists(t, filepath.Join(root, "src", "models"))
	assertNotExists(t, filepath.Join(root, "data"))
	assertNotExists(t, filepath.Join(env.ArchiveDir, bp.Name+".zip"))
}

// TestCustomBlueprintFromDisk drives a user blueprint with local templates
// and an executable script.
func TestCustomBlueprintFromDisk(t *testing.T) {
	env := setupTestEnv(t)
	bpDir := t.TempDir()

	doc := `name: svc
directories: [cmd, internal/api]
variables:
  port: "8080"
files:
  - path: README.md
    template: readme.md.tmpl
  - path: scripts/run.sh
    content: "#!/bin/sh\nexec ./svc\n"
    executable: true
archive:
  name: svc-0.1.0.zip
`
	if err := os.WriteFile(filepath.Join(bpDir, "svc.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bpDir, "readme.md.tmpl"), []byte("# {{ .Project }} on :{{ index .Vars \"port\" }}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	bp, err := blueprint.Load(filepath.Join(bpDir, "svc.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	res, err := pipeline.Run(nil, pipeline.Options{
		Blueprint:  bp,
		Templates:  os.DirFS(bpDir),
		OutputDir:  env.OutputDir,
		ArchiveDir: env.ArchiveDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	readme, err := os.ReadFile(filepath.Join(res.Root, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(readme) != "# svc on :8080\n" {
		t.Errorf("README.md = %q", readme)
	}

	entries, err := archive.List(filepath.Join(env.ArchiveDir, "svc-0.1.0.zip"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	wantNames := []string{"svc/README.md", "svc/scripts/run.sh"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("archive entries = %v, want %v", names, wantNames)
	}
}

func loadDefault(t *testing.T) *blueprint.Blueprint {
	t.Helper()
	bp, err := blueprint.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return bp
}
