package codings

import (
	"math/big"

	"github.com/psanford/codings/bitio"
)

// Fibonacci is the Zeckendorf-representation universal coding. It is
// stateless; the table below is a read-only, precomputed constant shared
// across all callers rather than a per-goroutine growing cache.
type Fibonacci struct{}

func (Fibonacci) universal() {}

// fibTable holds F1=1, F2=2, F3=3, ... up to the largest term that fits
// in a uint64, which lands comfortably past index 90.
var fibTable = computeFibTable()

func computeFibTable() []uint64 {
	fibs := []uint64{1, 2}
	for {
		next := fibs[len(fibs)-1] + fibs[len(fibs)-2]
		if next <= fibs[len(fibs)-1] { // overflowed
			break
		}
		fibs = append(fibs, next)
	}
	return fibs
}

// zeckendorfUint64 returns the bits (indexed from 0) of the Zeckendorf
// representation of x, b[i] true iff fibTable[i] was used.
func zeckendorfUint64(x uint64) []bool {
	j := 0
	for j+1 < len(fibTable) && fibTable[j+1] <= x {
		j++
	}
	bits := make([]bool, j+1)
	remaining := x
	for i := j; i >= 0; i-- {
		if fibTable[i] <= remaining {
			bits[i] = true
			remaining -= fibTable[i]
		}
	}
	return bits
}

func encodeFibUint64(w *bitio.Writer, v uint64) (int, error) {
	bits := zeckendorfUint64(v + 1)
	total := 0
	for _, b := range bits {
		if err := w.WriteBit(b); err != nil {
			return total, err
		}
		total++
	}
	if err := w.WriteBit(true); err != nil {
		return total, err
	}
	return total + 1, nil
}

func decodeFibUint64(r *bitio.Reader, maxBits int) (uint64, error) {
	var sum uint64
	prev := false
	k := 0
	for {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if b && prev {
			break
		}
		if b {
			if k >= len(fibTable) {
				return 0, &bitio.StreamError{Op: "Fibonacci.Decode", Err: bitio.ErrValueTooLarge}
			}
			sum += fibTable[k]
		}
		prev = b
		k++
	}
	v := sum - 1
	if maxBits < 64 && v > (uint64(1)<<uint(maxBits))-1 {
		return 0, &bitio.StreamError{Op: "Fibonacci.Decode", Err: bitio.ErrValueTooLarge}
	}
	return v, nil
}

func (c Fibonacci) EncodePositiveFixed(w *bitio.Writer, v uint32) (int, error) {
	if err := checkEncodeArgs("Fibonacci", w); err != nil {
		return 0, err
	}
	return encodeFibUint64(w, uint64(v))
}

func (c Fibonacci) DecodePositiveFixed(r *bitio.Reader) (uint32, error) {
	if err := checkDecodeArgs("Fibonacci", r); err != nil {
		return 0, err
	}
	x, err := decodeFibUint64(r, 32)
	return uint32(x), err
}

func (c Fibonacci) EncodePositiveWide(w *bitio.Writer, v uint64) (int, error) {
	if err := checkEncodeArgs("Fibonacci", w); err != nil {
		return 0, err
	}
	return encodeFibUint64(w, v)
}

func (c Fibonacci) DecodePositiveWide(r *bitio.Reader) (uint64, error) {
	if err := checkDecodeArgs("Fibonacci", r); err != nil {
		return 0, err
	}
	return decodeFibUint64(r, 63)
}

// fibBigTerms returns the Zeckendorf term table F1..Fk as big.Ints, where
// Fk is the first term >= x. Computed fresh on every call, extending the
// table one term at a time: no cache is needed since the recurrence is
// cheap relative to arbitrary-precision decode itself.
func fibBigTerms(x *big.Int) []*big.Int {
	terms := []*big.Int{big.NewInt(1)}
	if x.Cmp(terms[0]) <= 0 {
		return terms
	}
	terms = append(terms, big.NewInt(2))
	for terms[len(terms)-1].Cmp(x) < 0 {
		a := terms[len(terms)-2]
		b := terms[len(terms)-1]
		terms = append(terms, new(big.Int).Add(a, b))
	}
	return terms
}

func (c Fibonacci) EncodePositiveUnbounded(w *bitio.Writer, v *big.Int) (int, error) {
	if err := checkEncodeBigArgs("Fibonacci", w, v); err != nil {
		return 0, err
	}
	x := new(big.Int).Add(v, big.NewInt(1))
	terms := fibBigTerms(x)
	j := len(terms) - 1
	if terms[j].Cmp(x) > 0 {
		j--
	}
	bitVals := make([]bool, j+1)
	remaining := new(big.Int).Set(x)
	for i := j; i >= 0; i-- {
		if terms[i].Cmp(remaining) <= 0 {
			bitVals[i] = true
			remaining.Sub(remaining, terms[i])
		}
	}
	total := 0
	for _, b := range bitVals {
		if err := w.WriteBit(b); err != nil {
			return total, err
		}
		total++
	}
	if err := w.WriteBit(true); err != nil {
		return total, err
	}
	return total + 1, nil
}

func (c Fibonacci) DecodePositiveUnbounded(r *bitio.Reader) (*big.Int, error) {
	if err := checkDecodeArgs("Fibonacci", r); err != nil {
		return nil, err
	}
	sum := big.NewInt(0)
	prev := false
	k := 0
	var a, b *big.Int
	cur := new(big.Int)
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit && prev {
			break
		}
		switch k {
		case 0:
			cur.SetInt64(1)
			a = big.NewInt(1)
		case 1:
			cur.SetInt64(2)
			b = big.NewInt(2)
		default:
			next := new(big.Int).Add(a, b)
			a, b = b, next
			cur.Set(next)
		}
		if bit {
			sum.Add(sum, cur)
		}
		prev = bit
		k++
	}
	return sum.Sub(sum, big.NewInt(1)), nil
}
