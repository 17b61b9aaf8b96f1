// Command lfd runs the homework experiments of the Learning From Data
// course: PLA, linear regression and Boolean target counting, each averaged
// over many Monte-Carlo trials.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
