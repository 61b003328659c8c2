package manifest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// npm rejects names longer than this.
const maxNameLength = 214

var namePattern = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// Issue is a single problem found by Check.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// Check reports the fields of m that a package manager would refuse.
// An empty result means the manifest is usable as-is.
func Check(m *Manifest) []Issue {
	var issues []Issue

	switch {
	case m.Name == "":
		issues = append(issues, Issue{"name", "is required"})
	case len(m.Name) > maxNameLength:
		issues = append(issues, Issue{"name", fmt.Sprintf("exceeds %d characters", maxNameLength)})
	case !namePattern.MatchString(m.Name):
		issues = append(issues, Issue{"name", fmt.Sprintf("%q is not a valid package name", m.Name)})
	}

	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		issues = append(issues, Issue{"version", fmt.Sprintf("%q is not a semantic version", m.Version)})
	}

	if strings.TrimSpace(m.Main) == "" {
		issues = append(issues, Issue{"main", "entry point is required"})
	}

	issues = append(issues, checkRanges("dependencies", m.Dependencies)...)
	issues = append(issues, checkRanges("devDependencies", m.DevDependencies)...)

	if m.Build != nil {
		if m.Build.AppID == "" {
			issues = append(issues, Issue{"build.appId", "is required when build is set"})
		}
		if m.Build.ProductName == "" {
			issues = append(issues, Issue{"build.productName", "is required when build is set"})
		}
	}

	return issues
}

// checkRanges validates version ranges in sorted key order so the report is
// stable. Non-registry specifiers (URLs, file:, git:, npm: aliases) and dist
// tags are left to the package manager.
func checkRanges(field string, deps map[string]string) []Issue {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []Issue
	for _, name := range names {
		rng := strings.TrimSpace(deps[name])
		if rng == "" || rng == "latest" || rng == "next" || strings.Contains(rng, ":") {
			continue
		}
		if _, err := semver.NewConstraint(rng); err != nil {
			issues = append(issues, Issue{
				Field:   field + "." + name,
				Message: fmt.Sprintf("%q is not a valid version range", rng),
			})
		}
	}
	return issues
}
