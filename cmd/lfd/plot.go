package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/statlearn/lfd/core/model"
	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/internal/console"
	"github.com/statlearn/lfd/linear"
	"github.com/statlearn/lfd/pkg/errors"
	"github.com/statlearn/lfd/preprocessing"
	"github.com/statlearn/lfd/viz"
)

func newPlotCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Fit linear regression on one random dataset and plot it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.plot(cmd); err != nil {
				return a.fail(cmd, err)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Int("points", 100, "number of training points")
	flags.Float64("noise", 0, "fraction of labels to flip")
	flags.String("out", "trial.png", "output image path (.png, .svg, .pdf)")
	flags.Bool("quadratic", false, "fit on (1, x1, x2, x1x2, x1², x2²)")
	flags.Uint64("seed", 1, "random seed")
	return cmd
}

func (a *app) plot(cmd *cobra.Command) error {
	points, _ := cmd.Flags().GetInt("points")
	noise, _ := cmd.Flags().GetFloat64("noise")
	out, _ := cmd.Flags().GetString("out")
	quadratic, _ := cmd.Flags().GetBool("quadratic")
	if points <= 0 {
		return errors.NewConfigurationError("points", fmt.Sprintf("must be at least 1, got %d", points))
	}

	gen := experiment.NewGenerator(rand.New(rand.NewPCG(a.cfg.Seed, 0)))
	ds, err := gen.NoisyDataset(points, noise)
	if err != nil {
		return err
	}
	var tr model.Transformer
	if quadratic {
		tr = preprocessing.Quadratic{}
	}
	X, err := experiment.Transform(tr, ds.X)
	if err != nil {
		return err
	}
	lr := linear.NewLinearRegression()
	if err := experiment.FitSigned(lr, X, ds.Y); err != nil {
		return err
	}
	ein, err := experiment.InSampleError(lr, X, ds.Y)
	if err != nil {
		return err
	}
	if err := viz.PlotTrial(ds, lr.Weights(), out); err != nil {
		return err
	}

	p := a.out
	fmt.Fprintf(p.Out, "%s %s\n", p.Text("target", console.Orange), ds.Target)
	fmt.Fprintf(p.Out, "%s %.4f (%d flipped)\n", p.Text("E_in", console.Orange), ein, len(ds.Flipped))
	fmt.Fprintf(p.Out, "%s %s\n", p.Text("wrote", console.Green), out)
	return nil
}
