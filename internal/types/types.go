package types

// BlackPeriod is a closed interval flagged as black by the detector.
// Times are seconds from the start of the source.
type BlackPeriod struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// Midpoint returns the temporal center of the period.
func (p BlackPeriod) Midpoint() float64 {
	return p.Start + p.Duration/2
}

// ContentPeriod is an interval between black periods. A nil End means the
// period is open-ended and extends to the end of the source; at most one
// such period exists per sequence and it is always the last.
type ContentPeriod struct {
	Start float64  `json:"start"`
	End   *float64 `json:"end"`
}

// Report is the verbose-mode document printed to stdout before cutting.
type Report struct {
	BlackPeriods   []BlackPeriod   `json:"black_periods"`
	ContentPeriods []ContentPeriod `json:"content_periods"`
}
