// Package quant maps between real values and the int8 fixed-point form used by
// quantized TFLite tensors.
package quant

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinInt8 = math.MinInt8
	MaxInt8 = math.MaxInt8
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid quantization params")

// Params is the per-tensor affine mapping: real = (q - ZeroPoint) * Scale.
type Params struct {
	Scale     float32
	ZeroPoint int32
}

func (p Params) String() string {
	return fmt.Sprintf("scale=%g zero_point=%d", p.Scale, p.ZeroPoint)
}

// Validate checks that the scale is a positive finite number and the zero
// point fits in int8.
func (p Params) Validate() error {
	s := float64(p.Scale)
	if math.IsNaN(s) || math.IsInf(s, 0) || p.Scale <= 0 {
		return fmt.Errorf("%w: scale %v", ErrInvalidParams, p.Scale)
	}
	if p.ZeroPoint < MinInt8 || p.ZeroPoint > MaxInt8 {
		return fmt.Errorf("%w: zero point %d", ErrInvalidParams, p.ZeroPoint)
	}
	return nil
}

// Quantize converts x to int8. Values outside the representable range are
// saturated, never rejected.
func Quantize(x float32, p Params) int8 {
	v := float64(x/p.Scale + float32(p.ZeroPoint))
	if math.IsNaN(v) {
		v = float64(p.ZeroPoint)
	}
	// math.Round rounds half away from zero.
	v = math.Round(v)
	if v < MinInt8 {
		return MinInt8
	}
	if v > MaxInt8 {
		return MaxInt8
	}
	return int8(v)
}

// Dequantize converts q back to a real value.
func Dequantize(q int8, p Params) float32 {
	return (float32(q) - float32(p.ZeroPoint)) * p.Scale
}

// QuantizeInto quantizes src into dst, element by element. dst must be at
// least as long as src.
func QuantizeInto(dst []int8, src []float32, p Params) {
	for i, v := range src {
		dst[i] = Quantize(v, p)
	}
}

// DequantizeInto is the inverse of QuantizeInto.
func DequantizeInto(dst []float32, src []int8, p Params) {
	for i, v := range src {
		dst[i] = Dequantize(v, p)
	}
}

// NormalizePixel maps an 8-bit intensity to [0,1].
func NormalizePixel(v uint8) float32 {
	return float32(v) / 255.0
}
