//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // PROJKIT_HOME
	OutputDir  string // parent of generated project roots
	ArchiveDir string // where archives are written
	ExtractDir string // where archives are unpacked for comparison
}

// setupTestEnv creates isolated temp directories and points PROJKIT_HOME at
// one of them so no user configuration leaks into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		OutputDir:  t.TempDir(),
		ArchiveDir: t.TempDir(),
		ExtractDir: t.TempDir(),
	}
	t.Setenv("PROJKIT_HOME", env.HomeDir)
	return env
}

// snapshot maps every regular file under root (slash-separated, relative to
// root's parent) to its content.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	base := filepath.Dir(root)
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return files
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected %s to be a file, got directory", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %s to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to not exist, got err = %v", path, err)
	}
}
