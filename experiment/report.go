package experiment

// Metric is one reported quantity, optionally matched to answer choices.
type Metric struct {
	Name  string
	Value float64
	// StdDev is the spread of Value across trials, 0 for closed-form values.
	StdDev float64
	// Closest is set when the metric is compared against answer choices.
	Closest *Choice
}

// Report is the outcome of one experiment run.
type Report struct {
	Key     string
	Title   string
	Runs    int
	Skipped int
	Metrics []Metric
	// Votes counts, per candidate letter, the trials that picked it.
	Votes map[string]int
	// Answer is the letter of the chosen alternative.
	Answer string
	// Note is a one-line human summary of how Answer was reached.
	Note string
}

// AddMetric appends a metric. When choices are given the closest one is
// recorded on the metric as well.
func (r *Report) AddMetric(name string, value float64, choices ...Choice) error {
	m := Metric{Name: name, Value: value}
	if len(choices) > 0 {
		c, err := Closest(value, choices)
		if err != nil {
			return err
		}
		m.Closest = &c
	}
	r.Metrics = append(r.Metrics, m)
	return nil
}

// AddSummaryMetric appends the mean of the named metric in s together with
// its standard deviation.
func (r *Report) AddSummaryMetric(s *Summary, name string, choices ...Choice) error {
	if err := r.AddMetric(name, s.Means[name], choices...); err != nil {
		return err
	}
	r.Metrics[len(r.Metrics)-1].StdDev = s.StdDevs[name]
	return nil
}
