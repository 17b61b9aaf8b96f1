package exercises

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/statlearn/lfd/experiment"
)

// UnobservedPoints are the three inputs outside the training set in the
// boolean-target exercise.
var UnobservedPoints = [][]int{{1, 0, 1}, {1, 1, 0}, {1, 1, 1}}

const booleanStatement = `Score = 3·(targets agreeing with g on all 3 unobserved points)
      + 2·(targets agreeing on exactly 2) + 1·(targets agreeing on exactly 1).
Which hypothesis g agrees the most with the possible target functions?
[a] g(x) = 1
[b] g(x) = 0
[c] g is XOR: 1 if the number of 1s in x is odd
[d] g is the complement of XOR
[e] they are all equivalent (same score for [a] to [d])`

func booleanTargets() experiment.Entry {
	key := experiment.Key(List, 6, "")
	return experiment.Entry{
		Key:       key,
		Title:     "Boolean target functions on unobserved points",
		Statement: booleanStatement,
		Run: func(ctx context.Context, opts experiment.RunOptions) (*experiment.Report, error) {
			hypotheses := experiment.StandardHypotheses()
			report := &experiment.Report{Key: key, Title: "Boolean target functions on unobserved points"}

			scores := make([]int, len(hypotheses))
			for i, h := range hypotheses {
				s, err := experiment.ScoreHypothesis(h, UnobservedPoints)
				if err != nil {
					return nil, err
				}
				scores[i] = s
				if err := report.AddMetric("score "+h.Name, float64(s)); err != nil {
					return nil, err
				}
			}

			if len(lo.Uniq(scores)) == 1 {
				report.Answer = "e"
				report.Note = fmt.Sprintf("every hypothesis scores %d", scores[0])
			} else {
				best := 0
				for i, s := range scores {
					if s > scores[best] {
						best = i
					}
				}
				report.Answer = string(rune('a' + best))
				report.Note = fmt.Sprintf("%s scores highest (%d)", hypotheses[best].Name, scores[best])
			}
			logger(opts, key).Debug("hypotheses scored", "answer", report.Answer)
			return report, nil
		},
	}
}
