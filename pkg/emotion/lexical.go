package emotion

import "strings"

// keywordRule maps one emotion label to the keywords that trigger it.
type keywordRule struct {
	label    string
	keywords []string
}

// keywordRules is evaluated top to bottom and the first rule with any keyword
// hit wins. Declaration order is a contract: "isolated" appears under both
// hurt and embarrassed, and resolves to hurt only because hurt is declared
// first. Do not reorder.
var keywordRules = []keywordRule{
	{"happy", []string{"happy", "excited", "great", "good", "awesome", "love"}},
	{"sad", []string{"sad", "depressed", "unhappy", "down", "low", "cry"}},
	{"angry", []string{"angry", "mad", "furious", "upset", "annoyed"}},
	{"fear", []string{"scared", "afraid", "nervous", "worried", "anxious"}},
	{"hurt", []string{"jealous", "betrayed", "isolated", "shocked", "deprived", "victimized", "abandoned"}},
	{"embarrassed", []string{"isolated", "disgraced", "ashamed", "repulsed", "disgusted", "lonely", "inferior", "guilty", "pathetic", "confused"}},
	{"normal", []string{"okay", "fine", "alright", "neutral", "ok"}},
}

// Lexical labels free text by substring keyword matching. It is total: any
// text that matches no rule comes back as "normal".
func Lexical(text string) Estimate {
	lower := strings.ToLower(text)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return Estimate{Label: rule.label, Signal: SignalLexical}
			}
		}
	}
	return Estimate{Label: "normal", Signal: SignalLexical}
}
