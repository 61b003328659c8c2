package blueprint

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed default.yaml
var defaultBlueprint []byte

var rootNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// DefaultYAML returns the raw built-in blueprint document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultBlueprint))
	copy(out, defaultBlueprint)
	return out
}

// Default returns the built-in blueprint.
func Default() (*Blueprint, error) {
	b, err := Parse(defaultBlueprint)
	if err != nil {
		return nil, fmt.Errorf("built-in blueprint: %w", err)
	}
	return b, nil
}

// Load reads, validates and decodes the blueprint at path.
func Load(path string) (*Blueprint, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading blueprint %s: %w", path, err)
	}
	return b, nil
}

// Parse validates data against the blueprint schema and decodes it. Schema
// violations are reported together in a single *InvalidError.
func Parse(data []byte) (*Blueprint, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Issues: result.Issues}
	}

	var b Blueprint
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decoding blueprint: %w", err)
	}

	if issues := checkPaths(&b); len(issues) > 0 {
		return nil, &InvalidError{Issues: issues}
	}
	return &b, nil
}

// InvalidError is returned when a blueprint document does not describe a
// usable project.
type InvalidError struct {
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return "invalid blueprint: " + strings.Join(msgs, "; ")
}

// ValidName reports whether name can be used as a project root: a single
// path segment that starts with a letter or digit.
func ValidName(name string) bool {
	return rootNamePattern.MatchString(name)
}

// SetName overrides the project root name after loading. The name must be a
// single path-safe segment.
func (b *Blueprint) SetName(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid project name %q: must match %s", name, rootNamePattern)
	}
	b.Name = name
	return nil
}

// checkPaths rejects entries that would land outside the project root.
func checkPaths(b *Blueprint) []ValidationIssue {
	var issues []ValidationIssue
	for i, dir := range b.Directories {
		if !isLocal(dir) {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("/directories/%d", i),
				Message: fmt.Sprintf("%q must be a relative path inside the project root", dir),
				Keyword: "path",
			})
		}
	}
	for i, f := range b.Files {
		if !isLocal(f.Path) {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("/files/%d/path", i),
				Message: fmt.Sprintf("%q must be a relative path inside the project root", f.Path),
				Keyword: "path",
			})
		}
	}
	if p := b.ManifestPath(); p != "" && !isLocal(p) {
		issues = append(issues, ValidationIssue{
			Path:    "/manifest/path",
			Message: fmt.Sprintf("%q must be a relative path inside the project root", p),
			Keyword: "path",
		})
	}
	return issues
}

func isLocal(p string) bool {
	return filepath.IsLocal(filepath.FromSlash(p))
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
