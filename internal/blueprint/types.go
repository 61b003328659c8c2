package blueprint

import "github.com/projkit/projkit/internal/manifest"

// Blueprint describes one generated project.
type Blueprint struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Variables   map[string]string `yaml:"variables,omitempty" json:"variables,omitempty"`
	Directories []string          `yaml:"directories" json:"directories"`
	Files       []File            `yaml:"files,omitempty" json:"files,omitempty"`
	Manifest    *ManifestFile     `yaml:"manifest,omitempty" json:"manifest,omitempty"`
	Archive     Archive           `yaml:"archive,omitempty" json:"archive,omitempty"`
}

// File is a boilerplate file written under the project root. Exactly one of
// Template (an embedded template resource) or Content (inline text) is set.
type File struct {
	Path       string `yaml:"path" json:"path"`
	Template   string `yaml:"template,omitempty" json:"template,omitempty"`
	Content    string `yaml:"content,omitempty" json:"content,omitempty"`
	Executable bool   `yaml:"executable,omitempty" json:"executable,omitempty"`
}

// ManifestFile places the application manifest inside the project root.
type ManifestFile struct {
	Path string            `yaml:"path,omitempty" json:"path,omitempty"`
	Data manifest.Manifest `yaml:"data" json:"data"`
}

// Archive controls packaging of the finished tree.
type Archive struct {
	Enabled *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
}

// ArchiveEnabled reports whether the project should be packaged. Packaging
// is on unless the blueprint turns it off.
func (b *Blueprint) ArchiveEnabled() bool {
	return b.Archive.Enabled == nil || *b.Archive.Enabled
}

// ArchiveName returns the archive file name, <name>.zip unless overridden.
func (b *Blueprint) ArchiveName() string {
	if b.Archive.Name != "" {
		return b.Archive.Name
	}
	return b.Name + ".zip"
}

// ManifestPath returns the manifest location relative to the project root.
func (b *Blueprint) ManifestPath() string {
	if b.Manifest == nil {
		return ""
	}
	if b.Manifest.Path != "" {
		return b.Manifest.Path
	}
	return manifest.FileName
}
