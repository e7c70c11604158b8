package emotion

import "fmt"

// Signal identifies which analysis produced an estimate.
type Signal string

const (
	SignalLexical     Signal = "lexical"
	SignalAcoustic    Signal = "acoustic"
	SignalStatistical Signal = "statistical"
	SignalCombined    Signal = "combined"
)

// Estimate is one emotion reading for one turn. Estimates are recomputed every
// turn and never persisted.
type Estimate struct {
	Label  string `json:"label"`
	Signal Signal `json:"signal"`
}

// Combine merges the lexical and acoustic readings into a single label.
// With no acoustic reading the lexical one passes through unchanged. When the
// two agree the shared label is returned; when they disagree the result is a
// descriptive "Mixed (a and b)" string, lexical first, which is not a member
// of the base label vocabulary.
func Combine(lexical Estimate, acoustic *Estimate) Estimate {
	if acoustic == nil {
		return Estimate{Label: lexical.Label, Signal: SignalCombined}
	}
	if lexical.Label == acoustic.Label {
		return Estimate{Label: lexical.Label, Signal: SignalCombined}
	}
	return Estimate{
		Label:  fmt.Sprintf("Mixed (%s and %s)", lexical.Label, acoustic.Label),
		Signal: SignalCombined,
	}
}
