package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestVersionCommand(t *testing.T) {
	isolate(t)
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-10-01"

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"version"}, "projkit version 1.2.3 (commit: abc123, built: 2026-10-01)"},
		{"short", []string{"version", "--short"}, "1.2.3"},
		{"json", []string{"version", "--json"}, `"commit": "abc123"`},
		{"json module", []string{"version", "--json"}, `"module": "github.com/projkit/projkit"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			if err != nil {
				t.Fatalf("version error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want containing %q", out, tt.want)
			}
		})
	}
}

func TestGenerateDefaultAndInspect(t *testing.T) {
	tmp := isolate(t)

	out, err := executeCommand(t, "generate", "--output-dir", tmp)
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}

	root := filepath.Join(tmp, "AI-Doctor-Helper-Complete")
	for _, rel := range []string{"package.json", "src/main/index.js", "src/preload/preload.js"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	archivePath := filepath.Join(tmp, "AI-Doctor-Helper-Complete.zip")
	if !strings.Contains(out, archivePath) {
		t.Errorf("output should name the archive %s:\n%s", archivePath, out)
	}

	dest := filepath.Join(tmp, "unpacked")
	out, err = executeCommand(t, "inspect", archivePath, "--extract", dest)
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	if !strings.Contains(out, "AI-Doctor-Helper-Complete/package.json") {
		t.Errorf("inspect output missing package.json entry:\n%s", out)
	}
	if !strings.Contains(out, "deflate") {
		t.Errorf("inspect output missing method column:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dest, "AI-Doctor-Helper-Complete", "package.json")); err != nil {
		t.Errorf("extracted package.json missing: %v", err)
	}
}

func TestGenerateFromFileWithOverrides(t *testing.T) {
	tmp := isolate(t)
	bpDir := filepath.Join(tmp, "bp")
	writeFile(t, filepath.Join(bpDir, "app.yaml"), `
name: app
directories: [src]
files:
  - path: src/hello.txt
    template: hello.txt.tmpl
`)
	writeFile(t, filepath.Join(bpDir, "hello.txt.tmpl"), "hello {{ .Project }}\n")

	out := filepath.Join(tmp, "out")
	if _, err := executeCommand(t, "new", filepath.Join(bpDir, "app.yaml"), "--output-dir", out, "--name", "renamed", "--no-archive", "--quiet"); err != nil {
		t.Fatalf("generate error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "renamed", "src", "hello.txt"))
	if err != nil {
		t.Fatalf("reading rendered file: %v", err)
	}
	if string(data) != "hello renamed\n" {
		t.Errorf("hello.txt = %q", data)
	}
	if _, err := os.Stat(filepath.Join(out, "renamed.zip")); !os.IsNotExist(err) {
		t.Error("--no-archive should not produce an archive")
	}
}

func TestGenerateRejectsBadName(t *testing.T) {
	tmp := isolate(t)
	if _, err := executeCommand(t, "generate", "--output-dir", tmp, "--name", "../escape"); err == nil {
		t.Error("generate with an unsafe --name should fail")
	}
}

func TestGeneratePublishWithoutArchive(t *testing.T) {
	tmp := isolate(t)
	_, err := executeCommand(t, "generate", "--output-dir", tmp, "--no-archive", "--publish", "--quiet")
	if err == nil || !strings.Contains(err.Error(), "nothing to publish") {
		t.Errorf("error = %v, want nothing to publish", err)
	}
}

func TestArchiveCommand(t *testing.T) {
	tmp := isolate(t)
	src := filepath.Join(tmp, "demo")
	writeFile(t, filepath.Join(src, "a.txt"), "alpha")

	out, err := executeCommand(t, "archive", src)
	if err != nil {
		t.Fatalf("archive error: %v", err)
	}
	// Default output lands in the working directory.
	if _, err := os.Stat(filepath.Join(tmp, "demo.zip")); err != nil {
		t.Errorf("demo.zip not created: %v", err)
	}
	if !strings.Contains(out, "[ OK ] Archived") {
		t.Errorf("output = %q", out)
	}

	custom := filepath.Join(tmp, "dist", "custom.zip")
	if _, err := executeCommand(t, "archive", src, "--output", custom); err != nil {
		t.Fatalf("archive --output error: %v", err)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Errorf("custom archive not created: %v", err)
	}
}

func TestValidateCommand(t *testing.T) {
	tmp := isolate(t)

	tests := []struct {
		name    string
		doc     string
		wantErr bool
		want    string
	}{
		{"valid", "name: app\ndirectories: [src]\n", false, "[ OK ] Valid blueprint: app"},
		{"schema issue", "directories: [src]\n", true, "[FAIL]"},
		{"escaping entry", "name: app\ndirectories: [../out]\n", true, "/directories/0"},
		{"manifest warning", `
name: app
directories: []
manifest:
  data:
    name: app
    version: latest
    main: index.js
`, false, "[WARN] package.json: version:"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmp, "bp"+string(rune('a'+i))+".yaml")
			writeFile(t, path, tt.doc)

			out, err := executeCommand(t, "validate", path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate error = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want containing %q", out, tt.want)
			}
		})
	}
}

func TestBlueprintCommand(t *testing.T) {
	tmp := isolate(t)

	out, err := executeCommand(t, "blueprint")
	if err != nil {
		t.Fatalf("blueprint error: %v", err)
	}
	if !strings.Contains(out, "name: AI-Doctor-Helper-Complete") {
		t.Errorf("stdout missing blueprint name:\n%s", out)
	}

	path := filepath.Join(tmp, "saved", "blueprint.yaml")
	if _, err := executeCommand(t, "blueprint", "--out", path); err != nil {
		t.Fatalf("blueprint --out error: %v", err)
	}
	if _, err := executeCommand(t, "validate", path); err != nil {
		t.Errorf("saved blueprint does not validate: %v", err)
	}

	out, err = executeCommand(t, "blueprint", "--templates")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "electron/main.js.tmpl") {
		t.Errorf("--templates output = %q", out)
	}
}

func TestPublishRequiresConfig(t *testing.T) {
	tmp := isolate(t)
	archivePath := filepath.Join(tmp, "x.zip")
	writeFile(t, archivePath, "")

	_, err := executeCommand(t, "publish", archivePath)
	if err == nil || !strings.Contains(err.Error(), "endpoint is required") {
		t.Errorf("publish error = %v, want missing endpoint", err)
	}
}

func TestConfigSetGet(t *testing.T) {
	isolate(t)

	if _, err := executeCommand(t, "config", "set", "publish.bucket", "scaffolds"); err != nil {
		t.Fatalf("config set error: %v", err)
	}
	out, err := executeCommand(t, "config", "get", "publish.bucket")
	if err != nil {
		t.Fatalf("config get error: %v", err)
	}
	if strings.TrimSpace(out) != "scaffolds" {
		t.Errorf("config get = %q, want scaffolds", out)
	}
}

// ─── Test Helpers ───────────────────────────────────────────────────────────

// isolate points the config home at a temp dir, clears publish settings from
// the environment, and runs the test from that dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("PROJKIT_HOME", filepath.Join(tmp, ".projkit"))
	for _, key := range []string{"OUTPUT_DIR", "ARCHIVE_DIR", "PUBLISH_ENDPOINT", "PUBLISH_BUCKET", "PUBLISH_ACCESS_KEY", "PUBLISH_SECRET_KEY"} {
		t.Setenv("PROJKIT_"+key, "")
	}
	t.Chdir(tmp)
	return tmp
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default, since flag
// variables are package globals shared between executions.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
