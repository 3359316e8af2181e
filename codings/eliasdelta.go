package codings

import (
	"math/big"
	"math/bits"

	"github.com/psanford/codings/bitio"
)

// EliasDelta is the gamma-length-prefixed universal coding. It is
// stateless and the zero value is ready to use.
type EliasDelta struct{}

func (EliasDelta) universal() {}

// EncodePositiveFixed encodes v (a uint32 value) as x = v+1 with a
// gamma-coded length prefix: L2-1 zero bits, L in L2 bits, then the low
// L-1 bits of x, where L = floor(log2 x)+1 and L2 = floor(log2 L)+1.
func (c EliasDelta) EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error) {
	if err := checkEncodeArgs("EliasDelta", w); err != nil {
		return 0, err
	}
	return encodeDeltaUint64(w, uint64(v))
}

func (c EliasDelta) DecodePositiveFixed(r *bitio.Reader) (uint32, error) {
	if err := checkDecodeArgs("EliasDelta", r); err != nil {
		return 0, err
	}
	x, err := decodeDeltaUint64(r, 31)
	if err != nil {
		return 0, err
	}
	return uint32(x), nil
}

func (c EliasDelta) EncodePositiveWide(w *bitio.Writer, v uint64) (int, error) {
	if err := checkEncodeArgs("EliasDelta", w); err != nil {
		return 0, err
	}
	return encodeDeltaUint64(w, v)
}

func (c EliasDelta) DecodePositiveWide(r *bitio.Reader) (uint64, error) {
	if err := checkDecodeArgs("EliasDelta", r); err != nil {
		return 0, err
	}
	return decodeDeltaUint64(r, 63)
}

func (c EliasDelta) EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	if err := checkEncodeBigArgs("EliasDelta", w, v); err != nil {
		return 0, err
	}
	x := new(big.Int).Add(v, big.NewInt(1))
	L := x.BitLen()
	L2 := bits.Len(uint(L))
	total := 0
	n, err := w.WriteBooleans(false, L2-1)
	total += n
	if err != nil {
		return total, err
	}
	n, err = w.Write(uint32(L), L2)
	total += n
	if err != nil {
		return total, err
	}
	if L > 1 {
		n, err = w.WriteBigInt(x, L-1)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (c EliasDelta) DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error) {
	if err := checkDecodeArgs("EliasDelta", r); err != nil {
		return nil, err
	}
	z, err := r.ReadUntil(true)
	if err != nil {
		return nil, err
	}
	L2 := int(z) + 1
	if z == 0 {
		return big.NewInt(0), nil
	}
	Lbits, err := r.Read(L2 - 1)
	if err != nil {
		return nil, err
	}
	L := (1 << uint(L2-1)) | int(Lbits)
	rest, err := r.ReadBigInt(L - 1)
	if err != nil {
		return nil, err
	}
	x := new(big.Int).SetBit(rest, L-1, 1)
	return x.Sub(x, big.NewInt(1)), nil
}

// encodeDeltaUint64 implements EliasDelta for a machine-width accumulator,
// shared by the Fixed and Wide entry points.
func encodeDeltaUint64(w *bitio.Writer, v uint64) (int, error) {
	x := v + 1
	L := bits.Len64(x)
	L2 := bits.Len(uint(L))
	total := 0
	n, err := w.WriteBooleans(false, L2-1)
	total += n
	if err != nil {
		return total, err
	}
	n, err = w.Write(uint32(L), L2)
	total += n
	if err != nil {
		return total, err
	}
	if L > 1 {
		n, err = w.WriteLong(x, L-1)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// decodeDeltaUint64 decodes an EliasDelta value into a uint64, raising a
// stream error if it exceeds maxBits.
func decodeDeltaUint64(r *bitio.Reader, maxBits int) (uint64, error) {
	z, err := r.ReadUntil(true)
	if err != nil {
		return 0, err
	}
	if z == 0 {
		return 0, nil
	}
	L2 := int(z) + 1
	Lbits, err := r.Read(L2 - 1)
	if err != nil {
		return 0, err
	}
	L := (1 << uint(L2-1)) | int(Lbits)
	if L-1 > maxBits {
		return 0, &bitio.StreamError{Op: "EliasDelta.Decode", Err: bitio.ErrValueTooLarge}
	}
	var rest uint64
	if L > 1 {
		rest, err = r.ReadLong(L - 1)
		if err != nil {
			return 0, err
		}
	}
	x := (uint64(1) << uint(L-1)) | rest
	return x - 1, nil
}
