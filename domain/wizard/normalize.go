package wizard

import (
	"strconv"
	"strings"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/catalog"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
)

// Vector is the numeric feature vector submitted to the prediction model
type Vector map[core.FeatureKey]float64

// Normalize converts raw captured answers into the numeric vector the model
// expects, according to each feature's declared question kind. It is a pure
// function: no I/O, no mutation of its inputs, recomputed fresh for every
// submission.
func Normalize(answers Answers, types catalog.TypeMap) Vector {
	out := make(Vector, len(answers))
	for key, raw := range answers {
		if types[key] == catalog.KindScale10 {
			out[key] = scale10To01(raw)
		} else {
			out[key] = yesNoTo01(raw)
		}
	}
	return out
}

// scale10To01 maps a 1..10 slider value onto 0.1..1.0
func scale10To01(raw string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return n / 10
}

// yesNoTo01 maps yes/no style answers onto 1/0, passes numbers through, and
// defaults anything unrecognized to 0
func yesNoTo01(raw string) float64 {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return 1
	case "no", "n", "false", "0":
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return n
}
