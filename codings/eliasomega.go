package codings

import (
	"math/big"
	"math/bits"

	"github.com/psanford/codings/bitio"
)

// EliasOmega is the recursive length-prefixed universal coding from spec
// §4.3. It is stateless.
type EliasOmega struct{}

func (EliasOmega) universal() {}

type omegaPieceUint struct {
	val    uint64
	length int
}

// omegaPiecesUint64 unrolls the recursive Elias-omega definition into the
// sequence of (value, width) pairs that must be written, outermost piece
// (x itself) first: the reverse of the order a direct recursive encoder
// would emit them, so encodeOmegaUint64 walks the slice backwards.
func omegaPiecesUint64(x uint64) []omegaPieceUint {
	var pieces []omegaPieceUint
	n := x
	for n > 1 {
		L := bits.Len64(n)
		pieces = append(pieces, omegaPieceUint{val: n, length: L})
		n = uint64(L - 1)
	}
	return pieces
}

func encodeOmegaUint64(w *bitio.Writer, v uint64) (int, error) {
	pieces := omegaPiecesUint64(v + 1)
	total := 0
	for i := len(pieces) - 1; i >= 0; i-- {
		p := pieces[i]
		n, err := w.WriteLong(p.val, p.length)
		total += n
		if err != nil {
			return total, err
		}
	}
	if err := w.WriteBit(false); err != nil {
		return total, err
	}
	return total + 1, nil
}

func decodeOmegaUint64(r *bitio.Reader, maxBits int) (uint64, error) {
	x := uint64(1)
	for {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if !b {
			break
		}
		if x > uint64(maxBits) {
			return 0, &bitio.StreamError{Op: "EliasOmega.Decode", Err: bitio.ErrValueTooLarge}
		}
		bits, err := r.ReadLong(int(x))
		if err != nil {
			return 0, err
		}
		x = (uint64(1) << uint(x)) | bits
	}
	return x - 1, nil
}

func (c EliasOmega) EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error) {
	if err := checkEncodeArgs("EliasOmega", w); err != nil {
		return 0, err
	}
	return encodeOmegaUint64(w, uint64(v))
}

func (c EliasOmega) DecodePositiveFixed(r *bitio.Reader) (uint32, error) {
	if err := checkDecodeArgs("EliasOmega", r); err != nil {
		return 0, err
	}
	x, err := decodeOmegaUint64(r, 31)
	return uint32(x), err
}

func (c EliasOmega) EncodePositiveWide(w *bitio.Writer, v uint64) (int, error) {
	if err := checkEncodeArgs("EliasOmega", w); err != nil {
		return 0, err
	}
	return encodeOmegaUint64(w, v)
}

func (c EliasOmega) DecodePositiveWide(r *bitio.Reader) (uint64, error) {
	if err := checkDecodeArgs("EliasOmega", r); err != nil {
		return 0, err
	}
	return decodeOmegaUint64(r, 63)
}

func (c EliasOmega) EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	if err := checkEncodeBigArgs("EliasOmega", w, v); err != nil {
		return 0, err
	}
	one := big.NewInt(1)
	x := new(big.Int).Add(v, one)

	type piece struct {
		val    *big.Int
		length int
	}
	var pieces []piece
	n := new(big.Int).Set(x)
	for n.Cmp(one) > 0 {
		L := n.BitLen()
		pieces = append(pieces, piece{val: new(big.Int).Set(n), length: L})
		n = big.NewInt(int64(L - 1))
	}

	total := 0
	for i := len(pieces) - 1; i >= 0; i-- {
		p := pieces[i]
		wn, err := w.WriteBigInt(p.val, p.length)
		total += wn
		if err != nil {
			return total, err
		}
	}
	if err := w.WriteBit(false); err != nil {
		return total, err
	}
	return total + 1, nil
}

func (c EliasOmega) DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error) {
	if err := checkDecodeArgs("EliasOmega", r); err != nil {
		return nil, err
	}
	x := big.NewInt(1)
	for {
		b, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		if !b {
			break
		}
		if !x.IsInt64() || x.Int64() > 1<<30 {
			return nil, &bitio.StreamError{Op: "EliasOmega.Decode", Err: bitio.ErrValueTooLarge}
		}
		width := int(x.Int64())
		bits, err := r.ReadBigInt(width)
		if err != nil {
			return nil, err
		}
		x = new(big.Int).Lsh(big.NewInt(1), uint(width))
		x.Or(x, bits)
	}
	return x.Sub(x, big.NewInt(1)), nil
}
