package model

// NumEmotionLabels is the size of the canonical label set. Every score
// vector carries all labels; the classifier may omit some, which stay 0.
const NumEmotionLabels = 7

// EmotionLabels is the canonical label set in column order. The order is
// load-bearing: store columns and vector indices follow it.
var EmotionLabels = [NumEmotionLabels]string{
	"anger",
	"disgust",
	"fear",
	"joy",
	"neutral",
	"sadness",
	"surprise",
}

// EmotionVector holds one score per canonical label, in EmotionLabels order.
// Scores are in [0,1].
type EmotionVector [NumEmotionLabels]float64

// LabelIndex returns the vector index for a label, or -1 for labels outside
// the canonical set.
func LabelIndex(label string) int {
	for i, l := range EmotionLabels {
		if l == label {
			return i
		}
	}
	return -1
}

// Set assigns a score by label name. Unknown labels are ignored so a model
// returning extra labels does not break ingestion.
func (v *EmotionVector) Set(label string, score float64) {
	if i := LabelIndex(label); i >= 0 {
		v[i] = score
	}
}

// Get returns the score for a label, 0 for unknown labels.
func (v EmotionVector) Get(label string) float64 {
	if i := LabelIndex(label); i >= 0 {
		return v[i]
	}
	return 0
}
