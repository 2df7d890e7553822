// Package enginetest provides an in-memory engine.Engine for tests.
package enginetest

import (
	"fmt"

	"github.com/mpromonet/tflite-letters/internal/engine"
	"github.com/mpromonet/tflite-letters/internal/quant"
)

// Fake is an engine.Engine whose "model" is a Go function from the
// quantized input to the quantized output.
type Fake struct {
	InParams  quant.Params
	OutParams quant.Params
	InitErr   error
	InvokeErr error
	Model     func(in, out []int8)

	Inits   int
	Invokes int
	Closed  bool

	input  []int8
	output []int8
}

// New returns a Fake with buffers of the given lengths.
func New(inLen, outLen int, in, out quant.Params) *Fake {
	return &Fake{
		InParams:  in,
		OutParams: out,
		input:     make([]int8, inLen),
		output:    make([]int8, outLen),
	}
}

func (f *Fake) Init() error {
	f.Inits++
	if f.Inits > 1 {
		return fmt.Errorf("%w: already initialized", engine.ErrInitialization)
	}
	if f.InitErr != nil {
		return fmt.Errorf("%w: %v", engine.ErrInitialization, f.InitErr)
	}
	return nil
}

func (f *Fake) Input() engine.Buffer  { return engine.Buffer{Data: f.input, Bytes: len(f.input)} }
func (f *Fake) Output() engine.Buffer { return engine.Buffer{Data: f.output, Bytes: len(f.output)} }

func (f *Fake) InputParams() quant.Params  { return f.InParams }
func (f *Fake) OutputParams() quant.Params { return f.OutParams }

func (f *Fake) Invoke() error {
	f.Invokes++
	if f.Inits == 0 {
		return fmt.Errorf("%w: engine not initialized", engine.ErrInvocation)
	}
	if f.InvokeErr != nil {
		return fmt.Errorf("%w: %v", engine.ErrInvocation, f.InvokeErr)
	}
	if f.Model != nil {
		f.Model(f.input, f.output)
	}
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
