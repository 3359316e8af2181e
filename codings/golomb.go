package codings

import (
	"math/big"

	"github.com/psanford/codings/bitio"
)

// Golomb is a unary quotient plus a truncated-binary remainder. It owns
// one TruncatedBinary coding of size m for the remainder rather than
// reimplementing it.
type Golomb struct {
	M         uint64
	remainder TruncatedBinary
}

// NewGolomb builds a Golomb coding with divisor m (m >= 1).
func NewGolomb(m uint64) (Golomb, error) {
	if m < 1 {
		return Golomb{}, argErr("Golomb", "divisor must be >= 1")
	}
	tb, err := NewTruncatedBinary(m)
	if err != nil {
		return Golomb{}, err
	}
	return Golomb{M: m, remainder: tb}, nil
}

func (c Golomb) encode(w *bitio.Writer, v uint64) (int, error) {
	q := v / c.M
	r := v - q*c.M
	unary := Unary{Terminator: false}
	total, err := unary.encode(w, q)
	if err != nil {
		return total, err
	}
	n, err := c.remainder.encode(w, r)
	return total + n, err
}

func (c Golomb) decode(r *bitio.Reader) (uint64, error) {
	unary := Unary{Terminator: false}
	q, err := unary.decode(r)
	if err != nil {
		return 0, err
	}
	rem, err := c.remainder.decode(r)
	if err != nil {
		return 0, err
	}
	return q*c.M + rem, nil
}

func (c Golomb) EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error) {
	if err := checkEncodeArgs("Golomb", w); err != nil {
		return 0, err
	}
	return c.encode(w, uint64(v))
}

func (c Golomb) DecodePositiveFixed(r *bitio.Reader) (uint32, error) {
	if err := checkDecodeArgs("Golomb", r); err != nil {
		return 0, err
	}
	v, err := c.decode(r)
	return uint32(v), err
}

func (c Golomb) EncodePositiveWide(w *bitio.Writer, v uint64) (int, error) {
	if err := checkEncodeArgs("Golomb", w); err != nil {
		return 0, err
	}
	return c.encode(w, v)
}

func (c Golomb) DecodePositiveWide(r *bitio.Reader) (uint64, error) {
	if err := checkDecodeArgs("Golomb", r); err != nil {
		return 0, err
	}
	return c.decode(r)
}

func (c Golomb) EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	if err := checkEncodeBigArgs("Golomb", w, v); err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, argErr("Golomb", "value exceeds supported Unbounded range (quotient would exceed the Unary cap)")
	}
	return c.encode(w, v.Uint64())
}

func (c Golomb) DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error) {
	if err := checkDecodeArgs("Golomb", r); err != nil {
		return nil, err
	}
	v, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(v), nil
}

// Rice is the m = 2^k specialization of Golomb: the truncated-binary
// remainder collapses to a fixed k-bit field, so no division is needed.
type Rice struct {
	K uint
	g Golomb
}

// NewRice builds a Rice coding with parameter k (m = 2^k).
func NewRice(k uint) (Rice, error) {
	if k >= 64 {
		return Rice{}, argErr("Rice", "k must be < 64")
	}
	g, err := NewGolomb(uint64(1) << k)
	if err != nil {
		return Rice{}, err
	}
	return Rice{K: k, g: g}, nil
}

func (c Rice) encode(w *bitio.Writer, v uint64) (int, error) {
	q := v >> c.K
	unary := Unary{Terminator: false}
	total, err := unary.encode(w, q)
	if err != nil {
		return total, err
	}
	mask := uint64(1)<<c.K - 1
	n, err := w.WriteLong(v&mask, int(c.K))
	return total + n, err
}

func (c Rice) decode(r *bitio.Reader) (uint64, error) {
	unary := Unary{Terminator: false}
	q, err := unary.decode(r)
	if err != nil {
		return 0, err
	}
	rem, err := r.ReadLong(int(c.K))
	if err != nil {
		return 0, err
	}
	return q<<c.K | rem, nil
}

func (c Rice) EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error) {
	if err := checkEncodeArgs("Rice", w); err != nil {
		return 0, err
	}
	return c.encode(w, uint64(v))
}

func (c Rice) DecodePositiveFixed(r *bitio.Reader) (uint32, error) {
	if err := checkDecodeArgs("Rice", r); err != nil {
		return 0, err
	}
	v, err := c.decode(r)
	return uint32(v), err
}

func (c Rice) EncodePositiveWide(w *bitio.Writer, v uint64) (int, error) {
	if err := checkEncodeArgs("Rice", w); err != nil {
		return 0, err
	}
	return c.encode(w, v)
}

func (c Rice) DecodePositiveWide(r *bitio.Reader) (uint64, error) {
	if err := checkDecodeArgs("Rice", r); err != nil {
		return 0, err
	}
	return c.decode(r)
}

func (c Rice) EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	if err := checkEncodeBigArgs("Rice", w, v); err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, argErr("Rice", "value exceeds supported Unbounded range (quotient would exceed the Unary cap)")
	}
	return c.encode(w, v.Uint64())
}

func (c Rice) DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error) {
	if err := checkDecodeArgs("Rice", r); err != nil {
		return nil, err
	}
	v, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(v), nil
}
