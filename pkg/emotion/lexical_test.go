package emotion

import "testing"

func TestLexical(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"happy keyword", "I feel great today", "happy"},
		{"happy uppercase", "This is AWESOME", "happy"},
		{"sad keyword", "I feel so down today", "sad"},
		{"angry keyword", "I'm really annoyed with work", "angry"},
		{"fear keyword", "I'm worried about tomorrow", "fear"},
		{"hurt keyword", "my friends betrayed me", "hurt"},
		{"embarrassed keyword", "I am so ashamed of it", "embarrassed"},
		{"normal keyword", "I'm okay I guess", "normal"},
		{"no keyword falls back to normal", "the weather report for tuesday", "normal"},
		{"empty text", "", "normal"},
		// "isolated" is listed under both hurt and embarrassed; hurt is
		// declared first and must win.
		{"overlapping keyword resolves by declaration order", "I feel isolated", "hurt"},
		// substring matching, not word matching: "madrid" contains "mad"
		{"substring match", "I am flying to madrid", "angry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lexical(tt.text)
			if got.Label != tt.want {
				t.Errorf("Lexical(%q).Label = %q, want %q", tt.text, got.Label, tt.want)
			}
			if got.Signal != SignalLexical {
				t.Errorf("Lexical(%q).Signal = %q, want %q", tt.text, got.Signal, SignalLexical)
			}
		})
	}
}

func TestLexicalIdempotent(t *testing.T) {
	inputs := []string{"I feel great", "nothing in particular", "I feel isolated and ashamed"}
	for _, text := range inputs {
		first := Lexical(text)
		for i := 0; i < 5; i++ {
			if got := Lexical(text); got != first {
				t.Fatalf("Lexical(%q) not stable: %v then %v", text, first, got)
			}
		}
	}
}

func TestLexicalVocabulary(t *testing.T) {
	valid := map[string]bool{
		"happy": true, "sad": true, "angry": true, "fear": true,
		"hurt": true, "embarrassed": true, "normal": true,
	}
	inputs := []string{
		"", "I feel great", "so lonely tonight", "furious", "totally fine",
		"random words without any triggers", "scared and confused",
	}
	for _, text := range inputs {
		if got := Lexical(text); !valid[got.Label] {
			t.Errorf("Lexical(%q) = %q, not in the fixed vocabulary", text, got.Label)
		}
	}
}
