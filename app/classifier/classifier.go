// Package classifier guesses a disease label from farmer input. The
// pipeline only depends on the Classifier interface, so the keyword
// stub can be swapped for a real model without touching the state
// machine.
package classifier

import "strings"

// Prediction is the classifier output stored on a disease case.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier produces a prediction from free-text input and/or an
// uploaded image reference. Either argument may be empty.
type Classifier interface {
	Predict(diseaseName, imagePath string) Prediction
}

type keywordEntry struct {
	keyword string
	pred    Prediction
}

// Ordered so that more specific keywords ("powdery mildew", "downy
// mildew") are checked before the generic ones they contain.
var keywordTable = []keywordEntry{
	{"powdery mildew", Prediction{Label: "Powdery Mildew", Confidence: 0.90}},
	{"downy mildew", Prediction{Label: "Downy Mildew", Confidence: 0.85}},
	{"leaf spot", Prediction{Label: "Leaf Spot", Confidence: 0.85}},
	{"rust", Prediction{Label: "Rust Disease", Confidence: 0.80}},
	{"blight", Prediction{Label: "Blight", Confidence: 0.75}},
}

// Keyword is the deterministic stand-in classifier: case-insensitive
// substring match against a fixed keyword table, with an image-only
// default and a low-confidence unknown fallback.
type Keyword struct{}

func NewKeyword() Keyword { return Keyword{} }

func (Keyword) Predict(diseaseName, imagePath string) Prediction {
	if diseaseName != "" {
		lower := strings.ToLower(diseaseName)
		for _, e := range keywordTable {
			if strings.Contains(lower, e.keyword) {
				return e.pred
			}
		}
	}

	if imagePath != "" {
		return Prediction{Label: "Leaf Spot", Confidence: 0.75}
	}

	return Prediction{Label: "Unknown Disease", Confidence: 0.5}
}
