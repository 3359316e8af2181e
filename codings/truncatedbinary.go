package codings

import (
	"math/big"
	"math/bits"

	"github.com/psanford/codings/bitio"
)

// TruncatedBinary is the optimal prefix code on a known finite alphabet.
// It only accepts values in [0, N). Because the alphabet
// is finite by construction, N fits in a uint64 for every width this
// package supports (including Unbounded, whose values are then simply
// values < N represented as *big.Int).
type TruncatedBinary struct {
	N      uint64
	b      int
	cutoff uint64
}

// NewTruncatedBinary builds a TruncatedBinary coding for an alphabet of
// size n (n >= 1).
func NewTruncatedBinary(n uint64) (TruncatedBinary, error) {
	if n < 1 {
		return TruncatedBinary{}, argErr("TruncatedBinary", "alphabet size must be >= 1")
	}
	b := bits.Len64(n) - 1
	cutoff := (uint64(1) << uint(b+1)) - n
	return TruncatedBinary{N: n, b: b, cutoff: cutoff}, nil
}

func (c TruncatedBinary) encode(w *bitio.Writer, v uint64) (int, error) {
	if v >= c.N {
		return 0, argErr("TruncatedBinary", "value out of range [0, N)")
	}
	if v < c.cutoff {
		return w.WriteLong(v, c.b)
	}
	return w.WriteLong(v+c.cutoff, c.b+1)
}

func (c TruncatedBinary) decode(r *bitio.Reader) (uint64, error) {
	y, err := r.ReadLong(c.b)
	if err != nil {
		return 0, err
	}
	if y < c.cutoff {
		return y, nil
	}
	bit, err := r.ReadLong(1)
	if err != nil {
		return 0, err
	}
	return (y<<1 | bit) - c.cutoff, nil
}

func (c TruncatedBinary) EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error) {
	if err := checkEncodeArgs("TruncatedBinary", w); err != nil {
		return 0, err
	}
	return c.encode(w, uint64(v))
}

func (c TruncatedBinary) DecodePositiveFixed(r *bitio.Reader) (uint32, error) {
	if err := checkDecodeArgs("TruncatedBinary", r); err != nil {
		return 0, err
	}
	v, err := c.decode(r)
	return uint32(v), err
}

func (c TruncatedBinary) EncodePositiveWide(w *bitio.Writer, v uint64) (int, error) {
	if err := checkEncodeArgs("TruncatedBinary", w); err != nil {
		return 0, err
	}
	return c.encode(w, v)
}

func (c TruncatedBinary) DecodePositiveWide(r *bitio.Reader) (uint64, error) {
	if err := checkDecodeArgs("TruncatedBinary", r); err != nil {
		return 0, err
	}
	return c.decode(r)
}

func (c TruncatedBinary) EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	if err := checkEncodeBigArgs("TruncatedBinary", w, v); err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, argErr("TruncatedBinary", "value out of range [0, N)")
	}
	return c.encode(w, v.Uint64())
}

func (c TruncatedBinary) DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error) {
	if err := checkDecodeArgs("TruncatedBinary", r); err != nil {
		return nil, err
	}
	v, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(v), nil
}
