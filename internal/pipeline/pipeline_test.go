package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mpromonet/tflite-letters/internal/classify"
	"github.com/mpromonet/tflite-letters/internal/engine"
	"github.com/mpromonet/tflite-letters/internal/engine/enginetest"
	"github.com/mpromonet/tflite-letters/internal/quant"
	"github.com/mpromonet/tflite-letters/internal/sample"
)

var (
	inParams  = quant.Params{Scale: 1.0 / 255.0, ZeroPoint: -128}
	outParams = quant.Params{Scale: 0.0078125, ZeroPoint: -128}
)

type recordingSink struct {
	reports []Report
}

func (s *recordingSink) Publish(r Report) {
	s.reports = append(s.reports, r)
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.StartupDelay = 0
	opts.InitDelay = 0
	opts.IdlePeriod = time.Millisecond
	return opts
}

func newFake() *enginetest.Fake {
	f := enginetest.New(sample.Pixels, classify.NumClasses, inParams, outParams)
	f.Model = func(in, out []int8) {
		for i := range out {
			out[i] = -128
		}
		out[0] = 120
		out[3] = -100 // 0.21875
	}
	return f
}

func TestRunSuccess(t *testing.T) {
	fake := newFake()
	var console bytes.Buffer
	sink := &recordingSink{}
	p := New(fake, &console, zap.NewNop().Sugar(), testOptions(), sink)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Success, report.State)
	require.Equal(t, Success, p.State())
	require.NotNil(t, report.Result)
	require.Equal(t, 0, report.Result.Index)
	require.Equal(t, "A", report.Result.Label)
	require.Equal(t, int8(120), report.Result.Raw)
	require.InDelta(t, 1.9375, report.Result.Confidence, 1e-6)
	require.InDelta(t, 193.75, report.Percent, 1e-3)
	require.Len(t, report.Probabilities, 2)

	require.Equal(t, 1, fake.Inits)
	require.Equal(t, 1, fake.Invokes)

	out := console.String()
	require.Contains(t, out, "=== LETTER RECOGNITION SESSION START ===")
	require.Contains(t, out, "Engine initialized.")
	require.Contains(t, out, "--- INPUT IMAGE ---")
	require.Contains(t, out, "Expected label: 0 -> letter 'A'")
	require.Contains(t, out, "Thinking...")
	require.Contains(t, out, "Letter 'A': 120 (193.8%)")
	require.Contains(t, out, "Letter 'D': -100 (21.9%)")
	require.NotContains(t, out, "Letter 'B'")
	require.Contains(t, out, " PREDICTION: A\n")
	require.Contains(t, out, " CONFIDENCE: 193.8%\n")

	require.Len(t, sink.reports, 2)
	require.Equal(t, Running, sink.reports[0].State)
	require.Equal(t, Success, sink.reports[1].State)
}

func TestRunQuantizesSampleIntoInput(t *testing.T) {
	fake := newFake()
	var seen []int8
	fake.Model = func(in, out []int8) {
		seen = append([]int8(nil), in...)
	}
	p := New(fake, &bytes.Buffer{}, zap.NewNop().Sugar(), testOptions(), nil)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, seen, sample.Pixels)
	for i, v := range sample.Image {
		require.Equal(t, quant.Quantize(quant.NormalizePixel(v), inParams), seen[i], "pixel %d", i)
	}
	// a full-intensity pixel lands on the top of the int8 range
	require.Equal(t, uint8(255), sample.Image[3*sample.Side+14])
	require.Equal(t, int8(127), seen[3*sample.Side+14])
}

func TestRunUnknownExpectedLabel(t *testing.T) {
	opts := testOptions()
	opts.ExpectedLabel = -1
	var console bytes.Buffer
	p := New(newFake(), &console, zap.NewNop().Sugar(), opts, nil)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotContains(t, console.String(), "Expected label")
}

func TestRunClampConfidence(t *testing.T) {
	opts := testOptions()
	opts.ClampConfidence = true
	var console bytes.Buffer
	p := New(newFake(), &console, zap.NewNop().Sugar(), opts, nil)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 1.9375, report.Result.Confidence, 1e-6)
	require.InDelta(t, 100.0, report.Percent, 1e-6)
	require.Contains(t, console.String(), " CONFIDENCE: 100.0%\n")
}

func TestRunInitFailure(t *testing.T) {
	fake := newFake()
	fake.InitErr = errors.New("model corrupted")
	var console bytes.Buffer
	sink := &recordingSink{}
	p := New(fake, &console, zap.NewNop().Sugar(), testOptions(), sink)

	report, err := p.Run(context.Background())
	require.ErrorIs(t, err, engine.ErrInitialization)
	require.Equal(t, InitFailed, report.State)
	require.Nil(t, report.Result)
	require.Contains(t, report.Error, "model corrupted")
	require.Equal(t, 0, fake.Invokes)

	out := console.String()
	require.Contains(t, out, "ERROR: failed to initialize inference engine!")
	require.NotContains(t, out, "Thinking...")
	require.Equal(t, InitFailed, sink.reports[len(sink.reports)-1].State)
}

func TestRunInvokeFailure(t *testing.T) {
	fake := newFake()
	fake.InvokeErr = errors.New("arena exhausted")
	var console bytes.Buffer
	p := New(fake, &console, zap.NewNop().Sugar(), testOptions(), nil)

	report, err := p.Run(context.Background())
	require.ErrorIs(t, err, engine.ErrInvocation)
	require.Equal(t, InvokeFailed, report.State)
	require.True(t, report.State.Failed())

	out := console.String()
	require.Contains(t, out, "ERROR: inference failed.")
	require.NotContains(t, out, "PREDICTION")
}

func TestRunRejectsShortInputBuffer(t *testing.T) {
	fake := enginetest.New(10, classify.NumClasses, inParams, outParams)
	p := New(fake, &bytes.Buffer{}, zap.NewNop().Sugar(), testOptions(), nil)

	report, err := p.Run(context.Background())
	require.ErrorIs(t, err, engine.ErrInitialization)
	require.Equal(t, InitFailed, report.State)
	require.Equal(t, 0, fake.Invokes)
}

func TestRunWrongOutputLength(t *testing.T) {
	fake := enginetest.New(sample.Pixels, 10, inParams, outParams)
	p := New(fake, &bytes.Buffer{}, zap.NewNop().Sugar(), testOptions(), nil)

	report, err := p.Run(context.Background())
	require.ErrorIs(t, err, engine.ErrInvocation)
	require.ErrorIs(t, err, classify.ErrOutputShape)
	require.Equal(t, InvokeFailed, report.State)
}

func TestRunCancelledDuringStartupDelay(t *testing.T) {
	fake := newFake()
	opts := testOptions()
	opts.StartupDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var console bytes.Buffer
	p := New(fake, &console, zap.NewNop().Sugar(), opts, nil)
	report, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, Running, report.State)
	require.Equal(t, 0, fake.Inits)
	require.Empty(t, console.String())
}

func TestIdlePrintsUntilCancelled(t *testing.T) {
	var console bytes.Buffer
	p := New(newFake(), &console, zap.NewNop().Sugar(), testOptions(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	p.Idle(ctx)

	require.GreaterOrEqual(t, strings.Count(console.String(), "Waiting...\n"), 1)
}

func TestHaltIsSilent(t *testing.T) {
	fake := newFake()
	fake.InitErr = errors.New("nope")
	var console bytes.Buffer
	p := New(fake, &console, zap.NewNop().Sugar(), testOptions(), nil)
	_, err := p.Run(context.Background())
	require.Error(t, err)
	before := console.String()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	p.Halt(ctx)
	require.Equal(t, before, console.String())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "success", Success.String())
	require.Equal(t, "init_failed", InitFailed.String())
	require.Equal(t, "State(9)", State(9).String())
	require.False(t, Running.Terminal())
	require.True(t, InvokeFailed.Terminal())
	require.False(t, Success.Failed())
}
