// Package extended wraps a universal coding with signed-integer, float,
// double, and BigDecimal conventions. Everything here reduces to the
// wrapped coding's positive-integer operations plus a fixed bit-level
// framing for the numeric types that need more than one field.
package extended

import (
	"math"
	"math/big"

	"github.com/psanford/codings/bitio"
	"github.com/psanford/codings/codings"
)

// ArgumentError mirrors codings.ArgumentError for caller-side misuse
// that is specific to this package (NaN/Inf rejection).
type ArgumentError struct {
	Op  string
	Msg string
}

func (e *ArgumentError) Error() string { return e.Op + ": " + e.Msg }

func argErr(op, msg string) error { return &ArgumentError{Op: op, Msg: msg} }

// Coding wraps a universal positive-integer coding and adds the signed
// integer, float/double, and BigDecimal conventions built on top of it.
type Coding struct {
	U codings.Universal
}

// New wraps u.
func New(u codings.Universal) Coding {
	return Coding{U: u}
}

// zigZag maps a signed value to the non-negative domain: 0->0, 1->1,
// -1->2, 2->3, -2->4, ... Positive values take odd codes, negative
// values take even ones.
func zigZagInt32(v int32) uint32 {
	if v > 0 {
		return uint32(2*int64(v) - 1)
	}
	return uint32(-2 * int64(v))
}

func unZigZagInt32(u uint32) int32 {
	if u&1 == 1 {
		return int32((int64(u) + 1) / 2)
	}
	return int32(-int64(u) / 2)
}

func zigZagInt64(v int64) uint64 {
	if v > 0 {
		hi := new(big.Int).Sub(new(big.Int).Mul(big.NewInt(2), big.NewInt(v)), big.NewInt(1))
		return hi.Uint64()
	}
	return uint64(-2 * v)
}

func unZigZagInt64(u uint64) int64 {
	if u&1 == 1 {
		return int64((u + 1) / 2)
	}
	return -int64(u / 2)
}

func zigZagBig(v *big.Int) *big.Int {
	if v.Sign() > 0 {
		u := new(big.Int).Lsh(v, 1)
		return u.Sub(u, big.NewInt(1))
	}
	u := new(big.Int).Neg(v)
	return u.Lsh(u, 1)
}

func unZigZagBig(u *big.Int) *big.Int {
	if u.Bit(0) == 1 {
		v := new(big.Int).Add(u, big.NewInt(1))
		return v.Rsh(v, 1)
	}
	v := new(big.Int).Rsh(u, 1)
	return v.Neg(v)
}

// EncodePositiveFixed writes v through the wrapped coding unchanged.
func (c Coding) EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error) {
	return c.U.EncodePositiveFixed(w, v)
}

// DecodePositiveFixed is the mirror of EncodePositiveFixed.
func (c Coding) DecodePositiveFixed(r *bitio.Reader) (uint32, error) {
	return c.U.DecodePositiveFixed(r)
}

func (c Coding) EncodePositiveWide(w *bitio.Writer, v uint64) (int, error) {
	return c.U.EncodePositiveWide(w, v)
}

func (c Coding) DecodePositiveWide(r *bitio.Reader) (uint64, error) {
	return c.U.DecodePositiveWide(r)
}

func (c Coding) EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	return c.U.EncodePositiveUnbounded(w, v)
}

func (c Coding) DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error) {
	return c.U.DecodePositiveUnbounded(r)
}

// EncodeFixed writes a signed 32-bit value via zig-zag.
func (c Coding) EncodeFixed(w *bitio.Writer, v int32) (int, error) {
	return c.U.EncodePositiveFixed(w, zigZagInt32(v))
}

// DecodeFixed is the mirror of EncodeFixed.
func (c Coding) DecodeFixed(r *bitio.Reader) (int32, error) {
	u, err := c.U.DecodePositiveFixed(r)
	if err != nil {
		return 0, err
	}
	return unZigZagInt32(u), nil
}

// EncodeWide writes a signed 64-bit value via zig-zag.
func (c Coding) EncodeWide(w *bitio.Writer, v int64) (int, error) {
	return c.U.EncodePositiveWide(w, zigZagInt64(v))
}

// DecodeWide is the mirror of EncodeWide.
func (c Coding) DecodeWide(r *bitio.Reader) (int64, error) {
	u, err := c.U.DecodePositiveWide(r)
	if err != nil {
		return 0, err
	}
	return unZigZagInt64(u), nil
}

// EncodeUnbounded writes an arbitrary-precision signed value via zig-zag.
func (c Coding) EncodeUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	return c.U.EncodePositiveUnbounded(w, zigZagBig(v))
}

// DecodeUnbounded is the mirror of EncodeUnbounded.
func (c Coding) DecodeUnbounded(r *bitio.Reader) (*big.Int, error) {
	u, err := c.U.DecodePositiveUnbounded(r)
	if err != nil {
		return nil, err
	}
	return unZigZagBig(u), nil
}

const (
	float32Bias = 127
	float64Bias = 1023
)

// EncodeFloat writes a float32. NaN and ±Inf are rejected with an
// argument error; every finite bit pattern (including signed zero and
// subnormals) round-trips exactly.
func (c Coding) EncodeFloat(w *bitio.Writer, f float32) (int, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return 0, argErr("EncodeFloat", "NaN and Inf are not encodable")
	}
	bits := math.Float32bits(f)
	sign := bits>>31 == 1
	biasedExp := int32((bits >> 23) & 0xff)
	mantissa := bits & 0x7fffff

	total := 0
	if err := w.WriteBoolean(sign); err != nil {
		return total, err
	}
	total++
	n, err := c.EncodeFixed(w, biasedExp-float32Bias)
	total += n
	if err != nil {
		return total, err
	}
	n, err = c.U.EncodePositiveFixed(w, mantissaCode(biasedExp, mantissa, sign))
	return total + n, err
}

// DecodeFloat is the mirror of EncodeFloat.
func (c Coding) DecodeFloat(r *bitio.Reader) (float32, error) {
	sign, err := r.ReadBoolean()
	if err != nil {
		return 0, err
	}
	expBiased, err := c.DecodeFixed(r)
	if err != nil {
		return 0, err
	}
	code, err := c.U.DecodePositiveFixed(r)
	if err != nil {
		return 0, err
	}
	mantissa := mantissaFromCode(code)
	biasedExp := uint32(expBiased + float32Bias)
	bits := uint32(0)
	if sign {
		bits |= 1 << 31
	}
	bits |= biasedExp << 23
	bits |= mantissa
	return math.Float32frombits(bits), nil
}

// EncodeDouble writes a float64 with the same framing as EncodeFloat.
func (c Coding) EncodeDouble(w *bitio.Writer, f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, argErr("EncodeDouble", "NaN and Inf are not encodable")
	}
	bits := math.Float64bits(f)
	sign := bits>>63 == 1
	biasedExp := int64((bits >> 52) & 0x7ff)
	mantissa := bits & 0xfffffffffffff

	total := 0
	if err := w.WriteBoolean(sign); err != nil {
		return total, err
	}
	total++
	n, err := c.EncodeWide(w, biasedExp-float64Bias)
	total += n
	if err != nil {
		return total, err
	}
	n, err = c.U.EncodePositiveWide(w, mantissaCode64(biasedExp, mantissa, sign))
	return total + n, err
}

// DecodeDouble is the mirror of EncodeDouble.
func (c Coding) DecodeDouble(r *bitio.Reader) (float64, error) {
	sign, err := r.ReadBoolean()
	if err != nil {
		return 0, err
	}
	expBiased, err := c.DecodeWide(r)
	if err != nil {
		return 0, err
	}
	code, err := c.U.DecodePositiveWide(r)
	if err != nil {
		return 0, err
	}
	mantissa := mantissaFromCode64(code)
	biasedExp := uint64(expBiased + float64Bias)
	bits := uint64(0)
	if sign {
		bits |= 1 << 63
	}
	bits |= biasedExp << 52
	bits |= mantissa
	return math.Float64frombits(bits), nil
}

// mantissaCode maps a (biasedExp, mantissa, sign) triple to the
// non-negative integer actually written: the two reserved sentinels
// (0 for +0, 1 for -0) cover the zero value, every other mantissa is
// shifted up by 2 to stay clear of them.
func mantissaCode(biasedExp int32, mantissa uint32, sign bool) uint32 {
	if biasedExp == 0 && mantissa == 0 {
		if sign {
			return 1
		}
		return 0
	}
	return mantissa + 2
}

func mantissaFromCode(code uint32) uint32 {
	if code == 0 || code == 1 {
		return 0
	}
	return code - 2
}

func mantissaCode64(biasedExp int64, mantissa uint64, sign bool) uint64 {
	if biasedExp == 0 && mantissa == 0 {
		if sign {
			return 1
		}
		return 0
	}
	return mantissa + 2
}

func mantissaFromCode64(code uint64) uint64 {
	if code == 0 || code == 1 {
		return 0
	}
	return code - 2
}

// EncodeBigDecimal writes (scale, unscaledValue) as a signed integer
// followed by a signed arbitrary-precision integer.
func (c Coding) EncodeBigDecimal(w *bitio.Writer, scale int32, unscaled *big.Int) (int, error) {
	total, err := c.EncodeFixed(w, scale)
	if err != nil {
		return total, err
	}
	n, err := c.EncodeUnbounded(w, unscaled)
	return total + n, err
}

// DecodeBigDecimal is the mirror of EncodeBigDecimal.
func (c Coding) DecodeBigDecimal(r *bitio.Reader) (scale int32, unscaled *big.Int, err error) {
	scale, err = c.DecodeFixed(r)
	if err != nil {
		return 0, nil, err
	}
	unscaled, err = c.DecodeUnbounded(r)
	return scale, unscaled, err
}
