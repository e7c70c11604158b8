package emotion

import "testing"

func TestAcoustic(t *testing.T) {
	tests := []struct {
		name  string
		pitch float64
		tempo float64
		want  string
	}{
		{"happy children window", 320, 180, "happy"},
		{"sad male adults window", 150, 100, "sad"},
		{"angry children window", 400, 210, "angry"},
		{"neutral male adults window", 120, 130, "neutral"},
		{"outside every window", 900, 500, "normal"},
		{"zero input", 0, 0, "normal"},
		{"pitch in range tempo out", 320, 90, "normal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Acoustic(tt.pitch, tt.tempo)
			if got.Label != tt.want {
				t.Errorf("Acoustic(%v, %v).Label = %q, want %q", tt.pitch, tt.tempo, got.Label, tt.want)
			}
			if got.Signal != SignalAcoustic {
				t.Errorf("Acoustic(%v, %v).Signal = %q, want %q", tt.pitch, tt.tempo, got.Signal, SignalAcoustic)
			}
		})
	}
}

// (350, 185) sits inside both the happy/children window (300-450, 160-200)
// and the angry/teenagers window (250-400, 180-220). Happy is declared first
// and must win; the bracket of the actual speaker plays no part.
func TestAcousticDeclarationOrderWins(t *testing.T) {
	got := Acoustic(350, 185)
	if got.Label != "happy" {
		t.Fatalf("Acoustic(350, 185) = %q, want %q (first declared window)", got.Label, "happy")
	}
}

// Closed intervals: boundary values are inside.
func TestAcousticBoundariesInclusive(t *testing.T) {
	if got := Acoustic(300, 160); got.Label != "happy" {
		t.Errorf("lower bounds: got %q, want happy", got.Label)
	}
	if got := Acoustic(450, 200); got.Label != "happy" {
		t.Errorf("upper bounds: got %q, want happy", got.Label)
	}
}
