package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpromonet/tflite-letters/internal/quant"
)

var outParams = quant.Params{Scale: 0.0078125, ZeroPoint: -128}

func zeros() []int8 {
	return make([]int8, NumClasses)
}

func TestInterpretPicksMaximum(t *testing.T) {
	out := zeros()
	for i := range out {
		out[i] = -128
	}
	out[0] = 120

	res, err := Interpret(out, outParams, Letters())
	require.NoError(t, err)
	require.Equal(t, 0, res.Index)
	require.Equal(t, "A", res.Label)
	require.Equal(t, int8(120), res.Raw)
	require.InDelta(t, 1.9375, res.Confidence, 1e-6)
}

func TestInterpretTieGoesToLowestIndex(t *testing.T) {
	out := zeros()
	out[3] = 50
	out[7] = 50

	res, err := Interpret(out, outParams, Letters())
	require.NoError(t, err)
	require.Equal(t, 3, res.Index)
	require.Equal(t, "D", res.Label)
}

func TestInterpretAllMinimum(t *testing.T) {
	out := zeros()
	for i := range out {
		out[i] = -128
	}
	res, err := Interpret(out, outParams, Letters())
	require.NoError(t, err)
	require.Equal(t, 0, res.Index)
	require.Equal(t, float32(0), res.Confidence)
}

func TestInterpretLastClass(t *testing.T) {
	out := zeros()
	out[NumClasses-1] = 1
	res, err := Interpret(out, outParams, Letters())
	require.NoError(t, err)
	require.Equal(t, 25, res.Index)
	require.Equal(t, "Z", res.Label)
}

func TestInterpretRejectsWrongLength(t *testing.T) {
	_, err := Interpret(make([]int8, 10), outParams, Letters())
	require.ErrorIs(t, err, ErrOutputShape)
	_, err = Interpret(nil, outParams, Letters())
	require.ErrorIs(t, err, ErrOutputShape)
}

func TestDisplayedThresholdIsExclusive(t *testing.T) {
	p := quant.Params{Scale: 0.05, ZeroPoint: 0}
	out := zeros()
	out[1] = 1 // exactly 0.05
	out[2] = 2 // 0.10
	out[4] = -3

	shown := Displayed(Probabilities(out, p, Letters()), DisplayThreshold)
	require.Len(t, shown, 1)
	require.Equal(t, 2, shown[0].Index)
	require.Equal(t, "C", shown[0].Label)
	require.InDelta(t, 0.10, shown[0].Value, 1e-6)
}

func TestProbabilities(t *testing.T) {
	out := zeros()
	out[5] = 127
	probs := Probabilities(out, outParams, Letters())
	require.Len(t, probs, NumClasses)
	require.InDelta(t, 1.9921875, probs[5].Value, 1e-6)
	require.InDelta(t, 1.0, probs[0].Value, 1e-6)
}

func TestPercent(t *testing.T) {
	require.InDelta(t, 193.75, Percent(1.9375, false), 1e-4)
	require.InDelta(t, 100.0, Percent(1.9375, true), 1e-6)
	require.InDelta(t, 0.0, Percent(-0.5, true), 1e-6)
	require.InDelta(t, 42.0, Percent(0.42, true), 1e-4)
}

func TestLabels(t *testing.T) {
	letters := Letters()
	require.Len(t, letters, NumClasses)
	require.Equal(t, "unknown", letters.Name(26))
	require.Equal(t, "unknown", letters.Name(-1))

	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\n beta \n\ngamma\n"), 0o644))
	labels, err := LoadLabels(path)
	require.NoError(t, err)
	require.Equal(t, Labels{"alpha", "beta", "", "gamma"}, labels)

	_, err = LoadLabels(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
