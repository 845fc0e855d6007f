// Package core provides the business logic for modrow.
// It has zero UI dependencies and is independently testable.
package core

// Config represents the modrow configuration stored at ~/.modrow/config.json.
type Config struct {
	Settings Settings `json:"settings"`
}

// Settings holds user preferences and remote source parameters.
type Settings struct {
	APIBaseURL       string `json:"apiBaseURL" yaml:"apiBaseURL"`
	UserAgent        string `json:"userAgent" yaml:"userAgent"`
	Workers          int    `json:"workers" yaml:"workers"`
	RequestTimeout   string `json:"requestTimeout" yaml:"requestTimeout"` // Go duration, e.g. "30s"
	DefaultDirectory string `json:"defaultDirectory" yaml:"defaultDirectory"`
	DefaultLoader    string `json:"defaultLoader" yaml:"defaultLoader"`
}

// CatalogEntry is a package identifier as listed by a collection.
type CatalogEntry string

// PackageMetadata is the human-facing description of a package.
type PackageMetadata struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// BuildArtifact is one published build of a package.
type BuildArtifact struct {
	ID            string   `json:"id"`
	ProjectID     string   `json:"projectId"`
	VersionNumber string   `json:"versionNumber,omitempty"`
	GameVersions  []string `json:"gameVersions"`
	Loaders       []string `json:"loaders"`
	Files         []File   `json:"files"`
}

// File is a downloadable artifact attached to a build.
type File struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Primary  bool   `json:"primary"`
}

// InventoryItem is a package file found in the target directory.
type InventoryItem struct {
	ID       string `json:"id" yaml:"id"`
	Filename string `json:"filename" yaml:"filename"`
}

// Action is the reconciliation verdict for one package.
type Action string

const (
	ActionSkip    Action = "skip"
	ActionInstall Action = "install"
	ActionReplace Action = "replace"
)

// Decision is computed once per package per run and never persisted.
type Decision struct {
	Action      Action `json:"action" yaml:"action"`
	OldFilename string `json:"oldFilename,omitempty" yaml:"oldFilename,omitempty"` // set for ActionReplace
}

// Target describes what a run reconciles toward.
type Target struct {
	CollectionID   string
	RuntimeVersion string // e.g. "1.20.4"
	Loader         string // e.g. "fabric"
	Directory      string
	UpdateExisting bool
}

// Outcome is the result of reconciling a single package.
type Outcome struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Decision    Decision `json:"decision" yaml:"decision"`
	Reason      string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Filename    string   `json:"filename,omitempty" yaml:"filename,omitempty"`
	Build       string   `json:"build,omitempty" yaml:"build,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Installed   bool     `json:"installed" yaml:"installed"`
	Err         error    `json:"-" yaml:"-"`
	ErrorString string   `json:"error,omitempty" yaml:"error,omitempty"`
}
