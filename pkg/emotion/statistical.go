package emotion

import (
	"encoding/json"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
)

// Classifier is the pre-trained text emotion model: a fitted TF-IDF
// vectorizer plus a random forest, exported to a JSON artifact by the
// training pipeline. The artifact is loaded once at startup and read-only
// afterwards, so Predict is safe for concurrent callers.
//
// When the artifact is missing or unreadable the classifier stays in a
// degraded mode that always answers "unknown". That is a fail-safe default,
// never an error.
type Classifier struct {
	artifact *artifact
}

type artifact struct {
	Vectorizer vectorizer `json:"vectorizer"`
	Forest     forest     `json:"forest"`
}

type vectorizer struct {
	// Vocabulary maps a term to its feature index; Idf is indexed the same way.
	Vocabulary map[string]int `json:"vocabulary"`
	Idf        []float64      `json:"idf"`
	StopWords  []string       `json:"stop_words,omitempty"`
}

type forest struct {
	// Classes is the label vocabulary observed in the training data. It is
	// not required to match the lexical label set.
	Classes []string `json:"classes"`
	Trees   []tree   `json:"trees"`
}

type tree struct {
	Nodes []node `json:"nodes"`
}

// node is one decision-tree node. Feature < 0 marks a leaf, in which case
// Value is the class index; otherwise the walk continues left when the
// feature weight is <= Threshold.
type node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     int     `json:"value"`
}

// LoadClassifier reads the model artifact from path. A load failure is logged
// and leaves the classifier degraded rather than failing startup.
func LoadClassifier(path string) *Classifier {
	data, err := os.ReadFile(path)
	if err != nil {
		logx.Errorf("emotion model artifact not available, statistical classifier degraded: %v", err)
		return &Classifier{}
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		logx.Errorf("emotion model artifact unreadable, statistical classifier degraded: %v", err)
		return &Classifier{}
	}
	if len(a.Forest.Trees) == 0 || len(a.Forest.Classes) == 0 {
		logx.Errorf("emotion model artifact %s has no trees or classes, statistical classifier degraded", path)
		return &Classifier{}
	}

	logx.Infof("emotion model loaded: %d terms, %d trees, %d classes",
		len(a.Vectorizer.Vocabulary), len(a.Forest.Trees), len(a.Forest.Classes))
	return &Classifier{artifact: &a}
}

// Loaded reports whether the artifact is available.
func (c *Classifier) Loaded() bool {
	return c.artifact != nil
}

// Predict labels text with the trained model, or "unknown" in degraded mode.
func (c *Classifier) Predict(text string) Estimate {
	if c.artifact == nil {
		return Estimate{Label: "unknown", Signal: SignalStatistical}
	}

	features := c.artifact.Vectorizer.transform(text)

	votes := make([]int, len(c.artifact.Forest.Classes))
	for _, t := range c.artifact.Forest.Trees {
		if idx := t.predict(features); idx >= 0 && idx < len(votes) {
			votes[idx]++
		}
	}

	best := 0
	for i, v := range votes {
		if v > votes[best] {
			best = i
		}
	}
	return Estimate{Label: c.artifact.Forest.Classes[best], Signal: SignalStatistical}
}

var termPattern = regexp.MustCompile(`\b\w\w+\b`)

// transform maps text to a sparse TF-IDF vector, l2-normalized, mirroring the
// fitted vectorizer the artifact was exported from.
func (v *vectorizer) transform(text string) map[int]float64 {
	stop := make(map[string]bool, len(v.StopWords))
	for _, w := range v.StopWords {
		stop[w] = true
	}

	counts := make(map[int]float64)
	for _, term := range termPattern.FindAllString(strings.ToLower(text), -1) {
		if stop[term] {
			continue
		}
		if idx, ok := v.Vocabulary[term]; ok && idx < len(v.Idf) {
			counts[idx]++
		}
	}

	var norm float64
	for idx := range counts {
		counts[idx] *= v.Idf[idx]
		norm += counts[idx] * counts[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}

// predict walks the tree to a leaf and returns its class index, or -1 on a
// malformed tree.
func (t *tree) predict(features map[int]float64) int {
	if len(t.Nodes) == 0 {
		return -1
	}
	i := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		next := n.Right
		if features[n.Feature] <= n.Threshold {
			next = n.Left
		}
		if next < 0 || next >= len(t.Nodes) {
			return -1
		}
		i = next
	}
	return -1
}
