package main

import (
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/statlearn/lfd/experiment"
	"github.com/statlearn/lfd/internal/console"
)

// renderReport prints the metrics, the vote tally and the chosen answer.
func renderReport(p *console.Printer, r *experiment.Report) error {
	fmt.Fprintf(p.Out, "%s (%d trials", p.Text(r.Title, console.BrightBlue), r.Runs)
	if r.Skipped > 0 {
		fmt.Fprintf(p.Out, ", %s", p.Text(fmt.Sprintf("%d skipped", r.Skipped), console.Yellow))
	}
	fmt.Fprintln(p.Out, ")")

	if len(r.Metrics) > 0 {
		table := tablewriter.NewWriter(p.Out)
		table.Header("Metric", "Mean", "Std", "Closest")
		for _, m := range r.Metrics {
			closest := ""
			if m.Closest != nil {
				closest = fmt.Sprintf("[%s] %g", m.Closest.Letter, m.Closest.Value)
			}
			std := "-"
			if m.StdDev > 0 {
				std = fmt.Sprintf("%.4f", m.StdDev)
			}
			row := []string{m.Name, fmt.Sprintf("%.4f", m.Value), std, closest}
			if err := table.Append(row); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(r.Votes) > 0 {
		letters := lo.Keys(r.Votes)
		sort.Strings(letters)
		table := tablewriter.NewWriter(p.Out)
		table.Header("Choice", "Votes")
		for _, l := range letters {
			if err := table.Append([]string{l, fmt.Sprint(r.Votes[l])}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Fprintf(p.Out, "%s %s\n", p.Text("Answer:", console.Orange), p.Text("["+r.Answer+"]", console.BrightGreen))
	if r.Note != "" {
		p.Println(r.Note, console.Gray)
	}
	return nil
}

// renderEntries prints the registered experiments as a table.
func renderEntries(p *console.Printer, entries []experiment.Entry) error {
	table := tablewriter.NewWriter(p.Out)
	table.Header("Key", "Title", "Monte-Carlo")
	for _, e := range entries {
		if err := table.Append([]string{e.Key, e.Title, lo.Ternary(e.Trials, "yes", "no")}); err != nil {
			return err
		}
	}
	return table.Render()
}
