// Package classify turns the quantized output tensor of the letter
// classifier into a labelled result.
package classify

import (
	"errors"
	"fmt"

	"github.com/mpromonet/tflite-letters/internal/quant"
)

const (
	// NumClasses is the number of outputs of the EMNIST letters model (A-Z).
	NumClasses = 26
	// DisplayThreshold is the probability a class must exceed to be listed.
	DisplayThreshold = 0.05
)

var ErrOutputShape = errors.New("unexpected output tensor length")

// Result is the outcome of one inference run.
type Result struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	// Confidence is the dequantized score of the winning class. It is not
	// clamped and may fall outside [0,1] depending on the output params.
	Confidence float32 `json:"confidence"`
	Raw        int8    `json:"raw"`
}

// Probability is the dequantized score of a single class.
type Probability struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Raw   int8    `json:"raw"`
	Value float32 `json:"value"`
}

func argmax(f []int8) (int, int8) {
	r, m := 0, f[0]
	for i, v := range f {
		if v > m {
			m = v
			r = i
		}
	}
	return r, m
}

// Interpret selects the best class of output. Ordering is done on the raw
// quantized values; ties go to the lowest index.
func Interpret(output []int8, p quant.Params, labels Labels) (Result, error) {
	if len(output) != NumClasses {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrOutputShape, len(output), NumClasses)
	}
	idx, raw := argmax(output)
	return Result{
		Index:      idx,
		Label:      labels.Name(idx),
		Confidence: quant.Dequantize(raw, p),
		Raw:        raw,
	}, nil
}

// Probabilities dequantizes every class of output.
func Probabilities(output []int8, p quant.Params, labels Labels) []Probability {
	probs := make([]Probability, len(output))
	for i, v := range output {
		probs[i] = Probability{
			Index: i,
			Label: labels.Name(i),
			Raw:   v,
			Value: quant.Dequantize(v, p),
		}
	}
	return probs
}

// Displayed keeps the classes strictly above threshold, in index order.
// It only drives what gets printed, never the classification itself.
func Displayed(probs []Probability, threshold float32) []Probability {
	var out []Probability
	for _, pr := range probs {
		if pr.Value > threshold {
			out = append(out, pr)
		}
	}
	return out
}

// Percent converts a confidence to a percentage, optionally clamping it to
// [0,100] first.
func Percent(confidence float32, clamp bool) float32 {
	if clamp {
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
	}
	return confidence * 100
}
