package codings

import (
	"math/big"

	"github.com/psanford/codings/bitio"
)

// unaryMaxValue is the hard cap on values this coding accepts: encoded
// bit counts are returned as int, so a run longer than this would not fit.
const unaryMaxValue = 1<<31 - 2

// Unary is a run of one bit type terminated by its complement. It is not
// Universal: the cap above bounds every width, including Unbounded.
type Unary struct {
	// Terminator is the bit value that ends a run. The run itself is
	// written as Value copies of !Terminator.
	Terminator bool
}

func (c Unary) checkCap(v uint64) error {
	if v > unaryMaxValue {
		return argErr("Unary", "value exceeds 2^31-2")
	}
	return nil
}

func (c Unary) encode(w *bitio.Writer, v uint64) (int, error) {
	if err := c.checkCap(v); err != nil {
		return 0, err
	}
	n, err := w.WriteBooleans(!c.Terminator, int(v))
	if err != nil {
		return n, err
	}
	if err := w.WriteBit(c.Terminator); err != nil {
		return n, err
	}
	return n + 1, nil
}

func (c Unary) decode(r *bitio.Reader) (uint64, error) {
	n, err := r.ReadUntil(c.Terminator)
	if err != nil {
		return 0, err
	}
	if uint64(n) > unaryMaxValue {
		return 0, &bitio.StreamError{Op: "Unary.Decode", Err: bitio.ErrValueTooLarge}
	}
	return uint64(n), nil
}

func (c Unary) EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error) {
	if err := checkEncodeArgs("Unary", w); err != nil {
		return 0, err
	}
	return c.encode(w, uint64(v))
}

func (c Unary) DecodePositiveFixed(r *bitio.Reader) (uint32, error) {
	if err := checkDecodeArgs("Unary", r); err != nil {
		return 0, err
	}
	v, err := c.decode(r)
	return uint32(v), err
}

func (c Unary) EncodePositiveWide(w *bitio.Writer, v uint64) (int, error) {
	if err := checkEncodeArgs("Unary", w); err != nil {
		return 0, err
	}
	return c.encode(w, v)
}

func (c Unary) DecodePositiveWide(r *bitio.Reader) (uint64, error) {
	if err := checkDecodeArgs("Unary", r); err != nil {
		return 0, err
	}
	return c.decode(r)
}

func (c Unary) EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	if err := checkEncodeBigArgs("Unary", w, v); err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, argErr("Unary", "value exceeds 2^31-2")
	}
	return c.encode(w, v.Uint64())
}

func (c Unary) DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error) {
	if err := checkDecodeArgs("Unary", r); err != nil {
		return nil, err
	}
	v, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(v), nil
}
