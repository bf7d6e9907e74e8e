package types

import "time"

// Defaults applied when a configuration value is left empty.
const (
	DefaultDataDir        = "data"
	DefaultExtractTimeout = 30 * time.Second
	DefaultMaxPages       = 20
	DefaultExtractBinary  = "pdftotext"
	DefaultMaxResults     = 20
	DefaultDebounce       = 2 * time.Second
	DefaultPortalURL      = "https://criaah.github.io/medmaps/explorar.html"
)

// CatalogConfig locates the persisted catalog.
type CatalogConfig struct {
	// DataDir contains maps_index.json and the maps/ detail directory (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data-dir"`
}

// IngestConfig holds settings for the ingestion stage. Empty metadata
// overrides fall back to the classifiers.
type IngestConfig struct {
	// Specialty overrides path-based specialty classification when set.
	Specialty string `json:"specialty,omitempty" yaml:"specialty,omitempty" mapstructure:"specialty"`

	// Tag overrides keyword-based tag classification when set.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty" mapstructure:"tag"`

	// Access is the access level assigned to new maps (default free).
	Access Access `json:"access" yaml:"access" mapstructure:"access"`

	// MoveTo, when set, receives successfully ingested source files.
	MoveTo string `json:"move_to,omitempty" yaml:"move_to,omitempty" mapstructure:"move-to"`

	// Limit caps the number of files processed in a batch (0 = no limit).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`

	// DryRun reports what would be ingested without writing anything.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry-run"`
}

// ExtractionConfig holds settings for the external text-extraction tool.
type ExtractionConfig struct {
	// Timeout bounds a single extraction (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxPages limits extraction to the first pages of a document (default 20).
	MaxPages int `json:"max_pages" yaml:"max_pages" mapstructure:"max-pages"`

	// Binary is the pdftotext executable (default "pdftotext").
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`

	// Image is an optional container image used when the binary is missing.
	Image string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
}

// SearchConfig holds settings for the catalog search index.
type SearchConfig struct {
	// MaxResults limits query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max-results"`
}

// MirrorConfig holds settings for the remote mirror export.
type MirrorConfig struct {
	// PortalURL is the base URL of the map viewer; the map id is appended
	// as the "map" query parameter.
	PortalURL string `json:"portal_url" yaml:"portal_url" mapstructure:"portal-url"`
}

// WatchConfig holds settings for inbox watching.
type WatchConfig struct {
	// Inbox is the directory to watch for new source files.
	Inbox string `json:"inbox" yaml:"inbox" mapstructure:"inbox"`

	// Debounce is the quiet period before a changed file is ingested (default 2s).
	Debounce time.Duration `json:"debounce" yaml:"debounce" mapstructure:"debounce"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	// Level is debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all stage configurations, as read from medmaps.yaml.
type Config struct {
	Catalog CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Ingest  IngestConfig     `json:"ingest" yaml:"ingest" mapstructure:"ingest"`
	Extract ExtractionConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Search  SearchConfig     `json:"search" yaml:"search" mapstructure:"search"`
	Mirror  MirrorConfig     `json:"mirror" yaml:"mirror" mapstructure:"mirror"`
	Watch   WatchConfig      `json:"watch" yaml:"watch" mapstructure:"watch"`
	Log     LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}
