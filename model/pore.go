package model

import (
	"errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrModelSize indicates the pore model table does not hold exactly one
// state per possible k-mer.
var ErrModelSize = errors.New("model: pore model table size must be 4^k")

// StateParams are the Gaussian parameters of the signal level emitted
// while one k-mer occupies the pore.
type StateParams struct {
	LevelMean float64
	LevelStdv float64
}

// PoreModel maps k-mer ranks to signal-level states. The table is
// indexed directly by Alphabet rank, so States[r] describes the k-mer
// with rank r.
type PoreModel struct {
	k      int
	states []StateParams
}

// NewPoreModel builds a pore model for k-mers of length k from a table
// of 4^k states in rank order.
func NewPoreModel(k int, states []StateParams) (*PoreModel, error) {
	if k < 1 {
		return nil, ErrBadK
	}
	if len(states) != 1<<(2*k) {
		return nil, ErrModelSize
	}
	return &PoreModel{k: k, states: states}, nil
}

// K returns the k-mer length the model was trained for.
func (pm *PoreModel) K() int { return pm.k }

// State returns the Gaussian parameters for the k-mer with this rank.
func (pm *PoreModel) State(rank uint32) StateParams { return pm.states[rank] }

// Calibration maps model-space levels into one read's measured current
// range: level' = level×Scale + Shift, stdv' = stdv×Var.
type Calibration struct {
	Shift float64
	Scale float64
	Var   float64
}

// IdentityCalibration returns the neutral calibration.
func IdentityCalibration() Calibration { return Calibration{Shift: 0, Scale: 1, Var: 1} }

// Scorer scores one read's event levels against a scaled pore model.
// It implements align.EmissionScorer. One Scorer belongs to one
// alignment invocation; it holds no mutable state and is cheap to build.
type Scorer struct {
	levels []float64
	pm     *PoreModel
	cal    Calibration
}

// NewScorer combines a read's per-event signal levels with the pore
// model and calibration of the strand being aligned.
func NewScorer(levels []float64, pm *PoreModel, cal Calibration) *Scorer {
	return &Scorer{levels: levels, pm: pm, cal: cal}
}

// NumEvents returns the number of events in the read.
func (s *Scorer) NumEvents() int { return len(s.levels) }

// LogEmission returns the Gaussian log-probability of the event's
// signal level under the calibrated state of the ranked k-mer.
func (s *Scorer) LogEmission(eventIdx int, rank uint32) float64 {
	st := s.pm.states[rank]
	n := distuv.Normal{
		Mu:    st.LevelMean*s.cal.Scale + s.cal.Shift,
		Sigma: st.LevelStdv * s.cal.Var,
	}
	return n.LogProb(s.levels[eventIdx])
}
