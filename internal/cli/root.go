// Package cli implements the colblock command: building, dumping and
// inspecting block files from the command line.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/arloliu/bytecol/internal/logger"
)

// EnvPrefix prefixes the environment variables that override flags, e.g.
// COLBLOCK_COMPRESSION=zstd or COLBLOCK_LOG_LEVEL=debug.
const EnvPrefix = "COLBLOCK"

var version = "0.1.0"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

// NewRootCommand builds the colblock command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	defaults := logger.DefaultConfig()

	root := &cobra.Command{
		Use:           "colblock",
		Short:         "Build, dump and inspect columnar block files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			log, err := logger.New(logger.Config{
				Level:       a.v.GetString("log-level"),
				Encoding:    a.v.GetString("log-format"),
				OutputPaths: defaults.OutputPaths,
			})
			if err != nil {
				return err
			}
			a.log = log.Named("colblock")

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync() // stderr may not support fsync
		},
	}

	root.PersistentFlags().String("log-level", defaults.Level, "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", defaults.Encoding, "Log encoding (console or json)")

	root.AddCommand(newEncodeCommand(a))
	root.AddCommand(newDumpCommand(a))
	root.AddCommand(newInspectCommand(a))

	return root
}
