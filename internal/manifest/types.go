package manifest

// Manifest describes a generated application's identity, command aliases,
// dependencies and packaging configuration. Field names follow package.json;
// the yaml tags let a blueprint embed the same document.
type Manifest struct {
	Name            string            `yaml:"name" json:"name"`
	Version         string            `yaml:"version" json:"version"`
	Description     string            `yaml:"description,omitempty" json:"description,omitempty"`
	Main            string            `yaml:"main" json:"main"`
	Scripts         map[string]string `yaml:"scripts,omitempty" json:"scripts,omitempty"`
	Keywords        []string          `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Author          string            `yaml:"author,omitempty" json:"author,omitempty"`
	License         string            `yaml:"license,omitempty" json:"license,omitempty"`
	DevDependencies map[string]string `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
	Dependencies    map[string]string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Build           *Build            `yaml:"build,omitempty" json:"build,omitempty"`

	// Extra holds fields without a typed counterpart ("private", "engines",
	// ...). They are written after the typed fields in sorted key order.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Build is the electron-builder packaging block.
type Build struct {
	AppID       string       `yaml:"appId" json:"appId"`
	ProductName string       `yaml:"productName" json:"productName"`
	Directories *Directories `yaml:"directories,omitempty" json:"directories,omitempty"`
	Files       []string     `yaml:"files,omitempty" json:"files,omitempty"`
	Win         *WinTarget   `yaml:"win,omitempty" json:"win,omitempty"`
	NSIS        *NSIS        `yaml:"nsis,omitempty" json:"nsis,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Directories configures where build output lands.
type Directories struct {
	Output string `yaml:"output" json:"output"`
}

// WinTarget selects the Windows installer target and icon.
type WinTarget struct {
	Target string `yaml:"target" json:"target"`
	Icon   string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// NSIS holds installer options. Unset flags are omitted; false is written as
// false.
type NSIS struct {
	OneClick                           *bool `yaml:"oneClick,omitempty" json:"oneClick,omitempty"`
	AllowToChangeInstallationDirectory *bool `yaml:"allowToChangeInstallationDirectory,omitempty" json:"allowToChangeInstallationDirectory,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Bool returns a pointer to v, for optional flags.
func Bool(v bool) *bool { return &v }

// FileName is the conventional manifest file name.
const FileName = "package.json"
