package emotion

// AcousticFeatures is one audio sample's extracted feature set. Timbre (mean
// MFCCs) is carried for downstream consumers and plays no part in
// classification.
type AcousticFeatures struct {
	PitchMean float64   `json:"pitch_mean"` // Hz
	Tempo     float64   `json:"tempo"`      // BPM
	Timbre    []float64 `json:"timbre,omitempty"`
}

// window is a closed pitch/tempo interval for one emotion and one demographic
// bracket.
type window struct {
	label    string
	bracket  string
	pitchMin float64
	pitchMax float64
	tempoMin float64
	tempoMax float64
}

// rangeTable is scanned top to bottom for every input; the first window
// containing both values wins, whether or not its bracket matches the actual
// speaker. No bracket is pre-selected. That scan order (and the acoustic-only
// "neutral" label) reproduces the behavior of the reference range data and
// must stay exactly as declared.
var rangeTable = []window{
	{"happy", "children", 300, 450, 160, 200},
	{"happy", "teenagers", 220, 350, 160, 200},
	{"happy", "male_adults", 180, 300, 140, 180},
	{"happy", "female_adults", 200, 350, 140, 180},
	{"happy", "older_adults", 150, 250, 120, 150},

	{"sad", "children", 250, 350, 100, 140},
	{"sad", "teenagers", 200, 300, 100, 140},
	{"sad", "male_adults", 100, 200, 90, 120},
	{"sad", "female_adults", 150, 250, 90, 120},
	{"sad", "older_adults", 100, 180, 70, 100},

	{"angry", "children", 350, 500, 180, 220},
	{"angry", "teenagers", 250, 400, 180, 220},
	{"angry", "male_adults", 200, 350, 160, 200},
	{"angry", "female_adults", 250, 400, 160, 200},
	{"angry", "older_adults", 150, 250, 120, 160},

	{"neutral", "children", 250, 400, 140, 180},
	{"neutral", "teenagers", 200, 300, 140, 180},
	{"neutral", "male_adults", 100, 200, 120, 150},
	{"neutral", "female_adults", 150, 250, 120, 150},
	{"neutral", "older_adults", 100, 180, 100, 120},
}

// Acoustic labels a pitch/tempo pair by ordered range lookup. Inputs outside
// every declared window come back as "normal".
func Acoustic(pitchMean, tempo float64) Estimate {
	for _, w := range rangeTable {
		if pitchMean >= w.pitchMin && pitchMean <= w.pitchMax &&
			tempo >= w.tempoMin && tempo <= w.tempoMax {
			return Estimate{Label: w.label, Signal: SignalAcoustic}
		}
	}
	return Estimate{Label: "normal", Signal: SignalAcoustic}
}
