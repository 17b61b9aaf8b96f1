package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model: "Perceptron", "LinearRegression".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed: "fit", "predict".
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging: "linalg", "experiment".
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"

	// NoiseKey records the fraction of labels flipped in a generated dataset.
	NoiseKey = "data.noise"
)

// Training progress and results.
const (
	DurationMsKey   = "perf.duration_ms"
	LearningRateKey = "hyperparams.learning_rate"
	MaxIterKey      = "hyperparams.max_iter"
	IterationKey    = "training.iteration"
	ConvergedKey    = "training.converged"
	ErrorRateKey    = "metrics.error_rate"
)

// Experiment harness.
const (
	ExperimentKey = "experiment.key"
	TrialKey      = "experiment.trial"
	RunsKey       = "experiment.runs"
	SkippedKey    = "experiment.skipped"
	WorkersKey    = "experiment.workers"
	RandomSeedKey = "config.random_seed"
)

// Error context.
const (
	ErrorCodeKey = "error.code"
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationInvert  = "invert"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
