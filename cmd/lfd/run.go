package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/statlearn/lfd/config"
	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/internal/console"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/pkg/log"
)

func newRunCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one experiment and report the closest answer.",
		Example: `  lfd run -l 2 -e 7
  lfd run -l 2 -e 8 --variant b -r 3 --runs 500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, _ := cmd.Flags().GetInt("list")
			exercise, _ := cmd.Flags().GetInt("exercise")
			variant, _ := cmd.Flags().GetString("variant")
			if err := a.run(cmd, experiment.Key(list, exercise, variant)); err != nil {
				return a.fail(cmd, err)
			}
			return nil
		},
	}
	d := config.Default()
	flags := cmd.Flags()
	flags.IntP("list", "l", 0, "homework list number")
	flags.IntP("exercise", "e", 0, "exercise number")
	flags.String("variant", "", "exercise variant suffix, e.g. b")
	flags.IntP("repeat", "r", d.Repeat, "how many times to run the experiment")
	flags.BoolP("clear", "c", d.Clear, "clear the screen before running")
	flags.Int("runs", d.Runs, "Monte-Carlo trials per run")
	flags.Uint64("seed", d.Seed, "base random seed")
	flags.Int("workers", d.Workers, "worker goroutines (0 = one per CPU)")
	_ = cmd.MarkFlagRequired("list")
	_ = cmd.MarkFlagRequired("exercise")
	return cmd
}

// run executes the experiment at key cfg.Repeat times. Repetition i uses
// seed cfg.Seed+i so that repetitions differ but the whole session is
// reproducible.
func (a *app) run(cmd *cobra.Command, key string) error {
	entry, err := a.registry.Lookup(key)
	if err != nil {
		return err
	}
	cfg, p := a.cfg, a.out
	if cfg.Clear {
		p.ClearScreen()
	}

	fmt.Fprintf(p.Out, "%s %s: %s\n", p.Text("Running experiment", console.Orange),
		p.Text(entry.Key, console.Green), entry.Title)
	p.Divider("-", 0)
	if cfg.Repeat > 1 {
		fmt.Fprintf(p.Out, "%s %s %s\n\n", p.Text("The experiment will run", console.Magenta),
			p.Text(fmt.Sprint(cfg.Repeat), console.Green), p.Text("times.", console.Magenta))
	}
	p.Println("Statement:", console.Cyan)
	p.Println(entry.Statement, console.White)
	p.Divider("-", 0)

	logger := log.GetLogger().With(log.ExperimentKey, entry.Key)
	for i := 0; i < cfg.Repeat; i++ {
		if cfg.Repeat > 1 {
			fmt.Fprintf(p.Out, "\n%s %s %s %s:\n\n", p.Text("Run", console.Magenta),
				p.Text(fmt.Sprint(i+1), console.Yellow), p.Text("of", console.Magenta),
				p.Text(fmt.Sprint(cfg.Repeat), console.Green))
			p.Divider("-", 0)
		}
		opts := experiment.RunOptions{
			Runs:    cfg.Runs,
			Seed:    cfg.Seed + uint64(i),
			Workers: cfg.Workers,
			Logger:  logger,
		}
		var bar *progressbar.ProgressBar
		if entry.Trials {
			bar = newProgressBar(cmd, cfg.Runs, entry.Key)
			opts.Progress = func() { _ = bar.Add(1) }
		}
		report, err := entry.Run(cmd.Context(), opts)
		if bar != nil {
			_ = bar.Finish()
		}
		if err != nil {
			return errors.Wrapf(err, "experiment %s", entry.Key)
		}
		if err := renderReport(p, report); err != nil {
			return err
		}
		p.Divider("-", 0)
	}
	return nil
}

func newProgressBar(cmd *cobra.Command, runs int, key string) *progressbar.ProgressBar {
	return progressbar.NewOptions(runs,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("experiment "+key),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}
