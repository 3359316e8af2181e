// Package freq builds frequency tables over byte and integer alphabets
// and derives their zero-order entropy. A Frequencies
// value is the required input shape for Huffman tree construction once
// reduced through Compact.
package freq

import (
	"math"
	"sort"
)

// ArgumentError reports caller misuse building a Frequencies table.
type ArgumentError struct {
	Op  string
	Msg string
}

func (e *ArgumentError) Error() string { return e.Op + ": " + e.Msg }

func argErr(op, msg string) error { return &ArgumentError{Op: op, Msg: msg} }

const (
	initialIntTableSize = 256
	maxIntTableSize      = 16384
)

// Frequencies is a zero-order frequency table. Counts are accessed
// either by dense byte value (ByteCount), by interleaved integer index
// (IntCount), or degraded to a Compact view for Huffman construction.
type Frequencies struct {
	dense   []uint64 // present for FromBytes/FromInts/FromFrequencies
	sparse  map[int64]uint64
	total   uint64
	entropy float64 // natural-log entropy, computed once
}

// FromEmpty returns a table with no observations.
func FromEmpty() Frequencies {
	return Frequencies{}
}

// FromBytes builds a dense 256-entry table counting each byte value.
func FromBytes(data []byte) Frequencies {
	counts := make([]uint64, 256)
	for _, b := range data {
		counts[b]++
	}
	return fromCounts(counts, nil)
}

// intIndex maps a signed value to an interleaved non-negative index:
// non-negative values take even indices, negative values take odd ones,
// both growing outward from zero.
func intIndex(x int64) uint64 {
	if x >= 0 {
		return uint64(2 * x)
	}
	return uint64(-2*x - 1)
}

// FromInts builds a table over signed integers using the interleaved
// index. The dense table starts at 256 slots and doubles on overflow up
// to 16384; indices beyond that spill into a sparse map keyed by the
// original value.
func FromInts(values []int64) Frequencies {
	counts := make([]uint64, initialIntTableSize)
	sparse := make(map[int64]uint64)
	for _, x := range values {
		i := intIndex(x)
		switch {
		case i < uint64(len(counts)):
			counts[i]++
		case i < maxIntTableSize:
			newLen := len(counts)
			for uint64(newLen) <= i {
				newLen *= 2
			}
			if newLen > maxIntTableSize {
				newLen = maxIntTableSize
			}
			grown := make([]uint64, newLen)
			copy(grown, counts)
			counts = grown
			counts[i]++
		default:
			sparse[x]++
		}
	}
	return fromCounts(counts, sparse)
}

// FromFrequencies takes a caller-provided table for a contiguous [0,
// len(freqs)) alphabet. If total is negative it is recomputed from
// freqs; otherwise the caller's value is trusted verbatim — an
// incorrect total only skews entropy results, it cannot corrupt Huffman
// construction, which reads freqs directly.
func FromFrequencies(freqsIn []uint64, total int64) (Frequencies, error) {
	if len(freqsIn) == 0 {
		return Frequencies{}, argErr("FromFrequencies", "alphabet must be non-empty")
	}
	counts := make([]uint64, len(freqsIn))
	copy(counts, freqsIn)
	f := fromCounts(counts, nil)
	if total >= 0 {
		f.total = uint64(total)
	}
	return f, nil
}

func fromCounts(dense []uint64, sparse map[int64]uint64) Frequencies {
	f := Frequencies{dense: dense, sparse: sparse}
	var total uint64
	var negEntropy float64 // accumulates Σ cᵢ ln cᵢ so we can divide by total once
	visit := func(c uint64) {
		if c == 0 {
			return
		}
		total += c
		negEntropy += float64(c) * math.Log(float64(c))
	}
	for _, c := range dense {
		visit(c)
	}
	for _, c := range sparse {
		visit(c)
	}
	f.total = total
	if total > 0 {
		// H = -Σ pᵢ ln pᵢ = ln(total) - (Σ cᵢ ln cᵢ)/total
		f.entropy = math.Log(float64(total)) - negEntropy/float64(total)
	}
	return f
}

// Total is the sum of all observed counts.
func (f Frequencies) Total() uint64 { return f.total }

// Entropy returns the zero-order entropy in nats.
func (f Frequencies) Entropy() float64 { return f.entropy }

// EntropyBase converts the cached entropy to an arbitrary logarithm
// base: H(base) = H / ln(base).
func (f Frequencies) EntropyBase(base float64) float64 {
	return f.entropy / math.Log(base)
}

// Bits returns the total number of bits a zero-order entropy coder
// would need for every observation: bits() = H(2) * total.
func (f Frequencies) Bits() float64 {
	return f.EntropyBase(2) * float64(f.total)
}

// ByteCount returns the count for byte value b in a dense byte table.
func (f Frequencies) ByteCount(b byte) uint64 {
	if int(b) >= len(f.dense) {
		return 0
	}
	return f.dense[b]
}

// IntCount returns the count for signed value x in an interleaved
// integer table, consulting the sparse overflow map when the index
// exceeds the dense table's range.
func (f Frequencies) IntCount(x int64) uint64 {
	i := intIndex(x)
	if i < uint64(len(f.dense)) {
		return f.dense[i]
	}
	if f.sparse != nil {
		return f.sparse[x]
	}
	return 0
}

// Compact is a view that discards value identities, keeping only the
// non-zero frequencies — the input shape Huffman construction needs.
type Compact struct {
	Counts []uint64
}

// Compact reduces f to its non-zero frequency list, in unspecified
// order.
func (f Frequencies) Compact() Compact {
	out := make([]uint64, 0, len(f.dense)+len(f.sparse))
	for _, c := range f.dense {
		if c != 0 {
			out = append(out, c)
		}
	}
	for _, c := range f.sparse {
		if c != 0 {
			out = append(out, c)
		}
	}
	return Compact{Counts: out}
}

// SortDescending returns a copy of c's counts sorted from most to
// least frequent, the ordering huffman.FromDescending expects before
// running the two-queue tree build.
func (c Compact) SortDescending() []uint64 {
	out := make([]uint64, len(c.Counts))
	copy(out, c.Counts)
	sort.Sort(sort.Reverse(uint64Slice(out)))
	return out
}

type uint64Slice []uint64

func (s uint64Slice) Len() int           { return len(s) }
func (s uint64Slice) Less(i, j int) bool { return s[i] < s[j] }
func (s uint64Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
