// Package tflite implements engine.Engine on the TensorFlow Lite C API.
package tflite

import (
	"fmt"

	"github.com/mattn/go-tflite"
	"github.com/mattn/go-tflite/delegates/edgetpu"
	"go.uber.org/zap"

	"github.com/mpromonet/tflite-letters/internal/engine"
	"github.com/mpromonet/tflite-letters/internal/quant"
)

var _ engine.Engine = (*Engine)(nil)

// Options configures an Engine.
type Options struct {
	ModelPath string
	Threads   int
	EdgeTPU   bool
	// InputLen and OutputLen are the element counts the model must expose.
	InputLen  int
	OutputLen int
}

// Engine runs an int8 quantized .tflite model through the TensorFlow Lite C API.
type Engine struct {
	opts Options
	log  *zap.SugaredLogger

	model  *tflite.Model
	interp *tflite.Interpreter
	input  engine.Buffer
	output engine.Buffer

	inParams  quant.Params
	outParams quant.Params
}

func New(opts Options, log *zap.SugaredLogger) *Engine {
	if opts.Threads <= 0 {
		opts.Threads = 1
	}
	return &Engine{opts: opts, log: log}
}

func (e *Engine) Init() error {
	if e.interp != nil {
		return fmt.Errorf("%w: already initialized", engine.ErrInitialization)
	}

	model := tflite.NewModelFromFile(e.opts.ModelPath)
	if model == nil {
		return fmt.Errorf("%w: cannot load model %q", engine.ErrInitialization, e.opts.ModelPath)
	}

	options := tflite.NewInterpreterOptions()
	defer options.Delete()

	options.SetNumThread(e.opts.Threads)
	options.SetErrorReporter(func(msg string, _ interface{}) {
		e.log.Warnw("tflite", "msg", msg)
	}, nil)

	if e.opts.EdgeTPU {
		devices, err := edgetpu.DeviceList()
		if err != nil {
			e.log.Warnw("could not get EdgeTPU devices", "error", err)
		}
		if len(devices) == 0 {
			e.log.Info("no edge TPU devices found, running on CPU")
		} else {
			e.log.Infow("using edge TPU", "device", devices[0].Path)
			options.AddDelegate(edgetpu.New(devices[0]))
		}
	}

	interp := tflite.NewInterpreter(model, options)
	if interp == nil {
		model.Delete()
		return fmt.Errorf("%w: cannot create interpreter", engine.ErrInitialization)
	}

	if status := interp.AllocateTensors(); status != tflite.OK {
		interp.Delete()
		model.Delete()
		return fmt.Errorf("%w: allocate tensors: %v", engine.ErrInitialization, status)
	}

	var err error
	e.input, e.inParams, err = bindTensor(interp.GetInputTensor(0), e.opts.InputLen)
	if err == nil {
		e.output, e.outParams, err = bindTensor(interp.GetOutputTensor(0), e.opts.OutputLen)
	}
	if err != nil {
		e.input, e.output = engine.Buffer{}, engine.Buffer{}
		interp.Delete()
		model.Delete()
		return fmt.Errorf("%w: %v", engine.ErrInitialization, err)
	}

	e.model = model
	e.interp = interp
	e.log.Infow("model loaded",
		"model", e.opts.ModelPath,
		"input", e.inParams.String(),
		"output", e.outParams.String())
	return nil
}

// bindTensor checks that t is an int8 tensor holding want elements and
// returns a view over its memory together with its quantization params.
func bindTensor(t *tflite.Tensor, want int) (engine.Buffer, quant.Params, error) {
	if t == nil {
		return engine.Buffer{}, quant.Params{}, fmt.Errorf("missing tensor")
	}
	if t.Type() != tflite.Int8 {
		return engine.Buffer{}, quant.Params{}, fmt.Errorf("tensor %s: type %v, want int8", t.Name(), t.Type())
	}
	shape := getTensorShape(t)
	size := 1
	for _, d := range shape {
		size *= d
	}
	if size != want {
		return engine.Buffer{}, quant.Params{}, fmt.Errorf("tensor %s: shape %v has %d elements, want %d", t.Name(), shape, size, want)
	}

	qp := t.QuantizationParams()
	params := quant.Params{Scale: float32(qp.Scale), ZeroPoint: int32(qp.ZeroPoint)}
	if err := params.Validate(); err != nil {
		return engine.Buffer{}, quant.Params{}, fmt.Errorf("tensor %s: %w", t.Name(), err)
	}
	return engine.Buffer{Data: t.Int8s(), Bytes: int(t.ByteSize())}, params, nil
}

func getTensorShape(tensor *tflite.Tensor) []int {
	shape := []int{}
	for idx := 0; idx < tensor.NumDims(); idx++ {
		shape = append(shape, tensor.Dim(idx))
	}
	return shape
}

func (e *Engine) Input() engine.Buffer { return e.input }
func (e *Engine) Output() engine.Buffer { return e.output }
func (e *Engine) InputParams() quant.Params { return e.inParams }
func (e *Engine) OutputParams() quant.Params { return e.outParams }

func (e *Engine) Invoke() error {
	if e.interp == nil {
		return fmt.Errorf("%w: engine not initialized", engine.ErrInvocation)
	}
	status := e.interp.Invoke()
	e.log.Debugw("invoke", "status", status)
	if status != tflite.OK {
		return fmt.Errorf("%w: status %v", engine.ErrInvocation, status)
	}
	return nil
}

func (e *Engine) Close() error {
	if e.interp != nil {
		e.interp.Delete()
		e.interp = nil
	}
	if e.model != nil {
		e.model.Delete()
		e.model = nil
	}
	e.input, e.output = engine.Buffer{}, engine.Buffer{}
	return nil
}
