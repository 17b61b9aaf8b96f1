// Package lfd reproduces the Monte-Carlo homework experiments of the Learning
// From Data course in Go.
//
// The module is organised the way a small ML library is: models with a
// Fit/Predict API, a hand-written linear algebra kernel, and an experiment
// layer that repeats randomized trials on worker goroutines and averages them.
//
// # Packages
//
//   - core/linalg: row-major matrices with Gauss-Jordan inversion
//   - core/model: estimator interfaces, label encodings and fit state
//   - core/parallel: index-partitioned worker pools
//   - linear: the Perceptron Learning Algorithm and closed-form linear regression
//   - preprocessing: the identity and quadratic feature maps
//   - metrics: classification error and agreement
//   - experiment: synthetic data, the trial harness and the registry
//   - experiment/exercises: the registered homework exercises
//   - viz: plots of single trials
//   - cmd/lfd: the command-line interface
//
// # Quick Start
//
//	gen := experiment.NewGenerator(rand.New(rand.NewPCG(1, 2)))
//	ds := gen.Dataset(100)
//
//	lr := linear.NewLinearRegression()
//	if err := experiment.FitSigned(lr, ds.X, ds.Y); err != nil {
//	    log.Fatal(err)
//	}
//	ein, _ := experiment.InSampleError(lr, ds.X, ds.Y)
//	fmt.Printf("E_in = %.3f\n", ein)
//
// From the command line:
//
//	lfd list
//	lfd run -l 2 -e 7 --runs 1000
//	lfd plot --points 100 --noise 0.1 --out trial.png
//
// # Error Handling
//
// Errors carry stack traces from github.com/cockroachdb/errors and structured
// types from pkg/errors, so callers can match them:
//
//	if errors.Is(err, errors.ErrSingularMatrix) {
//	    // skip this trial
//	}
//
// Non-fatal conditions such as a PLA that did not converge are reported through
// errors.Warn and routed to the logger by the CLI.
package lfd
