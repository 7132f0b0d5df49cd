// Package cli implements the basket command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/basket/internal/cart"
	"github.com/mesh-intelligence/basket/internal/logging"
	"github.com/mesh-intelligence/basket/internal/memory"
	"github.com/mesh-intelligence/basket/internal/shell"
	"github.com/mesh-intelligence/basket/internal/sqlite"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error returned by the root command to a process exit
// code. Errors without a code come from cobra's own flag and argument
// parsing and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	exportDir string
	store     string
	logLevel  string
}

// NewRootCmd creates the top-level "basket" command. Run without a
// subcommand it starts the interactive shell on the command's input and
// output streams.
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "basket",
		Short: "An interactive shopping cart",
		Long: "Basket runs an interactive session that adds, removes and edits\n" +
			"products in a cart, prints a cost summary and exports the cart as JSON.",
		Args:          cobra.NoArgs,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, &flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&flags.exportDir, "export-dir", "", "directory that receives exported carts")
	pf.StringVar(&flags.store, "store", "", "cart store backend: memory or sqlite")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(&flags))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func runShell(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags.configDir, cmd.Flags())
	if err != nil {
		return userError(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return userError(err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := newStore(cfg.Store)
	if err != nil {
		return sysError(err)
	}
	c := cart.New(store)
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("closing cart", zap.Error(err))
		}
	}()

	logger.Debug("configuration loaded",
		zap.String("store", cfg.Store),
		zap.String("export_dir", cfg.ExportDir),
		zap.String("export_format", cfg.ExportFormat),
	)

	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), c, shell.Options{
		Currency:     cfg.Currency,
		ExportDir:    cfg.ExportDir,
		ExportFormat: cfg.ExportFormat,
		Logger:       logger,
	})
	if err := sh.Run(); err != nil {
		return sysError(err)
	}
	return nil
}

// newStore opens the cart store named by kind.
func newStore(kind string) (types.Store, error) {
	switch kind {
	case types.StoreMemory:
		return memory.NewStore(), nil
	case types.StoreSQLite:
		s, err := sqlite.NewStore()
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, types.ErrStoreUnknown)
	}
}
