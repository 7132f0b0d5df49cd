package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/basket/internal/paths"
	"github.com/mesh-intelligence/basket/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// envPrefix namespaces the environment overrides, e.g. BASKET_STORE.
	envPrefix = "BASKET"

	// dotEnvFile is read from the working directory before the environment
	// is consulted. Variables already set in the environment win.
	dotEnvFile = ".env"
)

// Config keys.
const (
	cfgKeyStore        = "store"
	cfgKeyCurrency     = "currency"
	cfgKeyExportDir    = "export_dir"
	cfgKeyExportFormat = "export_format"
	cfgKeyLogLevel     = "log_level"
	cfgKeyLogFile      = "log_file"
)

// flagKeys maps command-line flags to the config keys they override.
var flagKeys = map[string]string{
	"export-dir": cfgKeyExportDir,
	"store":      cfgKeyStore,
	"log-level":  cfgKeyLogLevel,
}

// loadConfig resolves the configuration with the precedence
// flag > environment (.env included) > config.yaml > defaults.
// A missing config.yaml is not an error.
func loadConfig(configDirFlag string, flagSet *pflag.FlagSet) (types.Config, error) {
	var cfg types.Config

	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return cfg, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	def := types.DefaultConfig()
	v.SetDefault(cfgKeyStore, def.Store)
	v.SetDefault(cfgKeyCurrency, def.Currency)
	v.SetDefault(cfgKeyExportDir, def.ExportDir)
	v.SetDefault(cfgKeyExportFormat, def.ExportFormat)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogFile, def.LogFile)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flagSet != nil {
		for name, key := range flagKeys {
			if f := flagSet.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return cfg, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ExportFormat = strings.ToLower(cfg.ExportFormat)
	cfg.Store = strings.ToLower(cfg.Store)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
