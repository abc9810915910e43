package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/config"
	"github.com/chazu/geograph/pkg/logging"
)

// cli holds state shared by every subcommand once the root command's
// pre-run hook has loaded configuration.
type cli struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
	app        *App
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "geograph",
		Short:         "Build and evaluate procedural geometry node graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(log)
			c.cfg, c.log = cfg, log
			c.app = NewApp(cfg, log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML or TOML config file")

	root.AddCommand(
		newEvalCmd(c),
		newExportCmd(c),
		newConvertCmd(c),
		newInspectCmd(c),
		newNodesCmd(c),
	)
	return root
}
