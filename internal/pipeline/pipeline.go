// Package pipeline runs the single-sample classification sequence: bring up
// the engine, quantize the sample into its input, invoke, and report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/mpromonet/tflite-letters/internal/classify"
	"github.com/mpromonet/tflite-letters/internal/engine"
	"github.com/mpromonet/tflite-letters/internal/quant"
	"github.com/mpromonet/tflite-letters/internal/sample"
)

// Options controls the timing and presentation of a run.
type Options struct {
	StartupDelay time.Duration
	InitDelay    time.Duration
	IdlePeriod   time.Duration

	Threshold       float32
	ClampConfidence bool
	Labels          classify.Labels

	Image *[sample.Pixels]uint8
	// ExpectedLabel is printed before the run; negative when unknown.
	ExpectedLabel int
}

// DefaultOptions mirrors the timings of the device firmware.
func DefaultOptions() Options {
	return Options{
		StartupDelay:  3 * time.Second,
		InitDelay:     3 * time.Second,
		IdlePeriod:    2 * time.Second,
		Threshold:     classify.DisplayThreshold,
		Labels:        classify.Letters(),
		Image:         &sample.Image,
		ExpectedLabel: sample.Label,
	}
}

// Report is what a run produced. Result is nil unless State is Success.
type Report struct {
	State         State                  `json:"state"`
	Result        *classify.Result       `json:"result,omitempty"`
	Percent       float32                `json:"percent,omitempty"`
	Probabilities []classify.Probability `json:"probabilities,omitempty"`
	Error         string                 `json:"error,omitempty"`
	At            time.Time              `json:"at"`
}

// Sink receives every state change of a run.
type Sink interface {
	Publish(Report)
}

type Pipeline struct {
	engine  engine.Engine
	console io.Writer
	log     *zap.SugaredLogger
	opts    Options
	sink    Sink

	report Report
}

func New(e engine.Engine, console io.Writer, log *zap.SugaredLogger, opts Options, sink Sink) *Pipeline {
	if opts.Image == nil {
		opts.Image = &sample.Image
	}
	if opts.Labels == nil {
		opts.Labels = classify.Letters()
	}
	return &Pipeline{
		engine:  e,
		console: console,
		log:     log,
		opts:    opts,
		sink:    sink,
		report:  Report{State: Running},
	}
}

// State returns the current state of the run.
func (p *Pipeline) State() State {
	return p.report.State
}

// Run executes the sequence once. On a fatal engine error the failure is
// printed, the state moves to InitFailed or InvokeFailed and the wrapped
// engine error is returned. Cancelling ctx only interrupts the delays;
// Invoke is never abandoned midway.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	p.publish()

	if err := sleep(ctx, p.opts.StartupDelay); err != nil {
		return p.report, err
	}
	p.printf("\n\n=== LETTER RECOGNITION SESSION START ===\n")

	if err := p.engine.Init(); err != nil {
		p.printf("ERROR: failed to initialize inference engine!\n")
		return p.fail(InitFailed, err)
	}
	p.printf("Engine initialized.\n")

	if err := sleep(ctx, p.opts.InitDelay); err != nil {
		return p.report, err
	}

	in := p.engine.Input()
	out := p.engine.Output()
	inParams := p.engine.InputParams()
	outParams := p.engine.OutputParams()
	p.log.Debugw("buffers bound",
		"input_bytes", in.Bytes, "input_params", inParams.String(),
		"output_bytes", out.Bytes, "output_params", outParams.String())

	if in.Len() != sample.Pixels {
		p.printf("ERROR: failed to initialize inference engine!\n")
		return p.fail(InitFailed, fmt.Errorf("%w: input buffer holds %d values, want %d",
			engine.ErrInitialization, in.Len(), sample.Pixels))
	}

	_ = sample.RenderASCII(p.console, p.opts.Image)
	if p.opts.ExpectedLabel >= 0 {
		p.printf("%s\n", sample.ExpectedLine(p.opts.ExpectedLabel, p.opts.Labels.Name(p.opts.ExpectedLabel)))
	}

	for i, v := range p.opts.Image {
		in.Data[i] = quant.Quantize(quant.NormalizePixel(v), inParams)
	}

	p.printf("Thinking...\n")
	start := time.Now()
	if err := p.engine.Invoke(); err != nil {
		p.printf("ERROR: inference failed.\n")
		return p.fail(InvokeFailed, err)
	}
	p.log.Debugw("invoke done", "elapsed", time.Since(start))

	res, err := classify.Interpret(out.Data, outParams, p.opts.Labels)
	if err != nil {
		p.printf("ERROR: inference failed.\n")
		return p.fail(InvokeFailed, fmt.Errorf("%w: %w", engine.ErrInvocation, err))
	}

	shown := classify.Displayed(classify.Probabilities(out.Data, outParams, p.opts.Labels), p.opts.Threshold)
	p.printf("\n--- Probabilities ---\n")
	for _, pr := range shown {
		p.printf("Letter '%s': %d (%.1f%%)\n", pr.Label, pr.Raw, classify.Percent(pr.Value, p.opts.ClampConfidence))
	}

	percent := classify.Percent(res.Confidence, p.opts.ClampConfidence)
	p.printf("\n=========================================\n")
	p.printf(" PREDICTION: %s\n", res.Label)
	p.printf(" CONFIDENCE: %.1f%%\n", percent)
	p.printf("=========================================\n")

	p.log.Infow("classified",
		"label", res.Label, "index", res.Index, "raw", res.Raw,
		"confidence", res.Confidence, "expected", p.opts.ExpectedLabel)

	p.report = Report{
		State:         Success,
		Result:        &res,
		Percent:       percent,
		Probabilities: shown,
		At:            time.Now(),
	}
	p.publish()
	return p.report, nil
}

// Idle prints a waiting line every IdlePeriod until ctx is done.
func (p *Pipeline) Idle(ctx context.Context) {
	for {
		p.printf("Waiting...\n")
		if err := sleep(ctx, p.opts.IdlePeriod); err != nil {
			return
		}
	}
}

// Halt parks a failed run: nothing more is printed or attempted until ctx is
// done.
func (p *Pipeline) Halt(ctx context.Context) {
	p.log.Warnw("pipeline halted", "state", p.report.State, "error", p.report.Error)
	<-ctx.Done()
}

func (p *Pipeline) fail(state State, err error) (Report, error) {
	p.log.Errorw("pipeline failed", "state", state, "error", err)
	p.report = Report{State: state, Error: err.Error(), At: time.Now()}
	p.publish()
	return p.report, err
}

func (p *Pipeline) publish() {
	if p.report.At.IsZero() {
		p.report.At = time.Now()
	}
	if p.sink != nil {
		p.sink.Publish(p.report)
	}
}

func (p *Pipeline) printf(format string, args ...any) {
	fmt.Fprintf(p.console, format, args...)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
