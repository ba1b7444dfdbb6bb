package predictor

import (
	"fmt"
	"math"
)

// Stats holds prediction statistics for one simulation run.
type Stats struct {
	// Predictions is the total number of branch predictions made.
	Predictions uint64
	// Correct is the number of correct predictions.
	Correct uint64
	// Mispredictions is the number of incorrect predictions.
	Mispredictions uint64
}

// record accounts for one prediction outcome.
func (s *Stats) record(correct bool) {
	s.Predictions++
	if correct {
		s.Correct++
	} else {
		s.Mispredictions++
	}
}

// HasData reports whether at least one prediction was made. Rates are
// undefined when it returns false.
func (s Stats) HasData() bool {
	return s.Predictions > 0
}

// Accuracy returns the prediction accuracy as a percentage, or NaN when no
// predictions were made.
func (s Stats) Accuracy() float64 {
	if s.Predictions == 0 {
		return math.NaN()
	}
	return float64(s.Correct) / float64(s.Predictions) * 100
}

// MispredictionRate returns the misprediction rate as a percentage, or NaN
// when no predictions were made.
func (s Stats) MispredictionRate() float64 {
	if s.Predictions == 0 {
		return math.NaN()
	}
	return float64(s.Mispredictions) / float64(s.Predictions) * 100
}

// TableDump exposes the final contents of one counter table, in table order.
type TableDump struct {
	// Name is the table's report heading ("BIMODAL", "GSHARE", "CHOOSER").
	Name string
	// Counters is the table contents, index 0 first.
	Counters []Counter
}

// Predictor is a branch direction predictor driven one trace event at a time.
type Predictor interface {
	// PredictAndUpdate predicts the branch at addr, trains the predictor
	// with the actual outcome, and reports whether the prediction was
	// correct. State mutation is part of the contract: tables and history
	// change on every call.
	PredictAndUpdate(addr uint64, taken bool) bool

	// Stats returns the accumulated prediction statistics.
	Stats() Stats

	// Tables returns the final contents of every table the predictor owns.
	// Hybrid returns them in chooser, gshare, bimodal order.
	Tables() []TableDump

	// Reset restores the predictor to its freshly constructed state.
	Reset()
}

// New constructs the predictor described by config. The scheme is dispatched
// here, once; construction fails if the configuration is invalid.
func New(config Config) (Predictor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid predictor config: %w", err)
	}

	switch config.Scheme {
	case SchemeBimodal:
		return NewBimodal(config.M2), nil
	case SchemeGshare:
		return NewGshare(config.M1, config.N), nil
	case SchemeHybrid:
		return NewHybrid(config.K, config.M1, config.N, config.M2), nil
	default:
		return nil, fmt.Errorf("unknown branch predictor scheme %q", config.Scheme)
	}
}
