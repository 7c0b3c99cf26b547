package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordPredict(t *testing.T) {
	clf := NewKeyword()

	tests := []struct {
		name           string
		diseaseName    string
		imagePath      string
		wantLabel      string
		wantConfidence float64
	}{
		{
			name:           "powdery mildew beats the generic mildew keywords",
			diseaseName:    "white powdery mildew on leaves",
			wantLabel:      "Powdery Mildew",
			wantConfidence: 0.90,
		},
		{
			name:           "downy mildew",
			diseaseName:    "Downy Mildew patches",
			wantLabel:      "Downy Mildew",
			wantConfidence: 0.85,
		},
		{
			name:           "leaf spot",
			diseaseName:    "brown leaf spot everywhere",
			wantLabel:      "Leaf Spot",
			wantConfidence: 0.85,
		},
		{
			name:           "rust maps to the full label",
			diseaseName:    "orange rust on wheat",
			wantLabel:      "Rust Disease",
			wantConfidence: 0.80,
		},
		{
			name:           "blight",
			diseaseName:    "late BLIGHT",
			wantLabel:      "Blight",
			wantConfidence: 0.75,
		},
		{
			name:           "match is case insensitive",
			diseaseName:    "POWDERY MILDEW",
			wantLabel:      "Powdery Mildew",
			wantConfidence: 0.90,
		},
		{
			name:           "image only falls back to leaf spot",
			imagePath:      "uploads/1717430400000.png",
			wantLabel:      "Leaf Spot",
			wantConfidence: 0.75,
		},
		{
			name:           "unmatched text with image still uses the image fallback",
			diseaseName:    "strange yellowing",
			imagePath:      "uploads/1717430400000.png",
			wantLabel:      "Leaf Spot",
			wantConfidence: 0.75,
		},
		{
			name:           "nothing to go on",
			wantLabel:      "Unknown Disease",
			wantConfidence: 0.5,
		},
		{
			name:           "unmatched text without image",
			diseaseName:    "strange yellowing",
			wantLabel:      "Unknown Disease",
			wantConfidence: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := clf.Predict(tt.diseaseName, tt.imagePath)
			assert.Equal(t, tt.wantLabel, pred.Label)
			assert.Equal(t, tt.wantConfidence, pred.Confidence)
		})
	}
}
