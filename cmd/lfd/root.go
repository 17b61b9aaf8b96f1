package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/statlearn/lfd/config"
	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/experiment/exercises"
	"github.com/statlearn/lfd/internal/console"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	registry *experiment.Registry
	out      *console.Printer
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New(), registry: exercises.Registry()}
	root := &cobra.Command{
		Use:           "lfd",
		Short:         "Run Learning From Data homework experiments.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "configuration file path")
	flags.String("log-level", config.Default().LogLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", config.Default().LogFormat, "log format (json, text, console)")
	flags.Bool("no-color", false, "disable colored output")

	root.AddCommand(newRunCommand(a), newListCommand(a), newPlotCommand(a))
	return root
}

// setup loads the configuration, installs the logger and routes warnings.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		a.v.Set(config.KeyColor, false)
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(a.v, path)
	if err != nil {
		return a.fail(cmd, err)
	}
	a.cfg = cfg
	a.out = console.NewPrinter(cmd.OutOrStdout(), cfg.Color)

	if err := log.SetupLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
		return a.fail(cmd, errors.NewConfigurationError(config.KeyLogFormat, err.Error()))
	}
	errors.SetWarningHandler(func(w error) {
		log.GetLogger().Warn(w.Error())
	})
	log.GetLogger().Debug("configuration loaded",
		log.RunsKey, cfg.Runs,
		log.RandomSeedKey, cfg.Seed,
		log.WorkersKey, cfg.Workers,
	)
	return nil
}

// fail reports err on stderr and returns it so cobra exits non-zero.
func (a *app) fail(cmd *cobra.Command, err error) error {
	p := console.NewPrinter(cmd.ErrOrStderr(), a.cfg == nil || a.cfg.Color)
	fmt.Fprintln(cmd.ErrOrStderr(), p.Text("error: "+err.Error(), console.Red))
	return err
}
