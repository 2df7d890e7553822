// Package engine defines the boundary to the model executor. The harness
// only ever reads and writes the buffers an Engine hands out; it never owns
// or resizes them.
package engine

import (
	"errors"

	"github.com/mpromonet/tflite-letters/internal/quant"
)

var (
	// ErrInitialization wraps every failure from Engine.Init.
	ErrInitialization = errors.New("engine initialization failed")
	// ErrInvocation wraps every failure from Engine.Invoke.
	ErrInvocation = errors.New("engine invocation failed")
)

// Buffer is a borrowed view of an engine-owned int8 tensor. It stays valid
// until the engine is closed.
type Buffer struct {
	Data  []int8
	Bytes int
}

// Len returns the number of elements in the view.
func (b Buffer) Len() int {
	return len(b.Data)
}

// Engine executes a quantized classifier.
//
// Init must be called exactly once before anything else. Invoke blocks until
// the model has run to completion; output is only meaningful after it
// returns nil.
type Engine interface {
	Init() error
	Input() Buffer
	Output() Buffer
	InputParams() quant.Params
	OutputParams() quant.Params
	Invoke() error
	Close() error
}
