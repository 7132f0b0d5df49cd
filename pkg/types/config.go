package types

import "errors"

// Config holds the settings read from config.yaml, the environment and
// command-line flags.
type Config struct {
	Store        string `mapstructure:"store" yaml:"store"`
	Currency     string `mapstructure:"currency" yaml:"currency"`
	ExportDir    string `mapstructure:"export_dir" yaml:"export_dir"`
	ExportFormat string `mapstructure:"export_format" yaml:"export_format"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string `mapstructure:"log_file" yaml:"log_file"`
}

// Supported store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Supported export formats. Legacy writes each product as a JSON string
// inside the outer object; nested embeds it as an object.
const (
	ExportLegacy = "legacy"
	ExportNested = "nested"
)

// Config validation errors.
var (
	ErrStoreEmpty          = errors.New("store must not be empty")
	ErrStoreUnknown        = errors.New("unknown store")
	ErrExportFormatUnknown = errors.New("unknown export format")
	ErrCurrencyEmpty       = errors.New("currency must not be empty")
)

// knownStores lists the stores that Validate accepts.
var knownStores = map[string]bool{
	StoreMemory: true,
	StoreSQLite: true,
}

// knownExportFormats lists the export formats that Validate accepts.
var knownExportFormats = map[string]bool{
	ExportLegacy: true,
	ExportNested: true,
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Store:        StoreMemory,
		Currency:     "£",
		ExportDir:    ".",
		ExportFormat: ExportLegacy,
		LogLevel:     "warn",
		LogFile:      "stderr",
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Store == "" {
		return ErrStoreEmpty
	}
	if !knownStores[c.Store] {
		return ErrStoreUnknown
	}
	if !knownExportFormats[c.ExportFormat] {
		return ErrExportFormatUnknown
	}
	if c.Currency == "" {
		return ErrCurrencyEmpty
	}
	return nil
}
