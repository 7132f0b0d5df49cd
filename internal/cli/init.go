package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/basket/internal/paths"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// configHeader is written above the marshalled defaults in a new config.yaml.
const configHeader = `# Basket configuration.
# Every key can be overridden with a BASKET_<KEY> environment variable.
`

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory and a default config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(flags.configDir)
			if err != nil {
				return sysError(fmt.Errorf("resolve config dir: %w", err))
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create config directory: %w", err))
			}

			path := paths.ConfigFile(configDir)
			created, err := writeConfigIfMissing(path)
			if err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
			}
			return nil
		},
	}
}

// writeConfigIfMissing creates config.yaml with the default values. An
// existing file is left untouched and created is false.
func writeConfigIfMissing(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := types.DefaultConfig()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
