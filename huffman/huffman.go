// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

// Package huffman builds canonical Huffman codings over a rank-ordered
// alphabet and encodes/decodes symbols against them through a shared
// bit cursor.
package huffman

import (
	"github.com/psanford/codings/bitio"
)

// ArgumentError reports caller-side misuse building or using a Coding.
type ArgumentError struct {
	Op  string
	Msg string
}

func (e *ArgumentError) Error() string { return e.Op + ": " + e.Msg }

func argErr(op, msg string) error { return &ArgumentError{Op: op, Msg: msg} }

// InvalidInputError reports a structural violation discovered while
// decoding: a bit pattern that does not correspond to any codeword.
type InvalidInputError struct {
	Op  string
	Msg string
}

func (e *InvalidInputError) Error() string { return e.Op + ": " + e.Msg }

// Coding is a canonical Huffman code over ranks 0..N-1, rank 0 being
// the most frequent symbol. Encoding is a per-rank table lookup;
// decoding uses the firstCode/firstSymbol accelerator from the length
// histogram alone, never the tree.
type Coding struct {
	correspondence []int // rank -> caller's symbol ordinal
	ordinalToRank  map[int]int
	lengths        []int // per rank
	words          []uint64
	firstCode      []uint64 // indexed by code length
	firstSymbol    []int    // indexed by code length
	maxLength      int
}

// N is the number of symbols this coding covers.
func (c *Coding) N() int { return len(c.lengths) }

// Correspondence returns the rank-to-ordinal mapping, rank 0 first.
func (c *Coding) Correspondence() []int {
	out := make([]int, len(c.correspondence))
	copy(out, c.correspondence)
	return out
}

// Lengths returns the per-rank code lengths.
func (c *Coding) Lengths() []int {
	out := make([]int, len(c.lengths))
	copy(out, c.lengths)
	return out
}

type freqRank struct {
	freq uint64
	rank int // index into the caller's original ordering
}

// FromUnordered builds a Coding from arbitrary non-negative frequencies,
// sorting them descending internally. freqs[i] is the frequency for
// symbol ordinal i; a zero frequency means that symbol never appears.
func FromUnordered(freqs []uint64) (*Coding, error) {
	pairs := make([]freqRank, 0, len(freqs))
	for i, f := range freqs {
		if f > 0 {
			pairs = append(pairs, freqRank{freq: f, rank: i})
		}
	}
	sortFreqRanksDescending(pairs)
	sorted := make([]uint64, len(pairs))
	correspondence := make([]int, len(pairs))
	for i, p := range pairs {
		sorted[i] = p.freq
		correspondence[i] = p.rank
	}
	return buildFromSortedFrequencies(sorted, correspondence)
}

// FromDescending builds a Coding from frequencies the caller has
// already sorted most-to-least frequent. Correspondence is the
// identity: rank i maps to ordinal i.
func FromDescending(freqsDesc []uint64) (*Coding, error) {
	for i := 1; i < len(freqsDesc); i++ {
		if freqsDesc[i] > freqsDesc[i-1] {
			return nil, argErr("FromDescending", "frequencies are not sorted descending")
		}
	}
	correspondence := make([]int, len(freqsDesc))
	for i := range correspondence {
		correspondence[i] = i
	}
	return buildFromSortedFrequencies(freqsDesc, correspondence)
}

// sortFreqRanksDescending sorts by frequency descending, breaking ties
// by original ordinal ascending so construction is deterministic.
func sortFreqRanksDescending(pairs []freqRank) {
	// insertion sort is adequate: alphabets big enough to need better
	// belong to freq.Frequencies.Compact, which callers sort themselves.
	for i := 1; i < len(pairs); i++ {
		j := i
		for j > 0 && less(pairs[j], pairs[j-1]) {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
			j--
		}
	}
}

func less(a, b freqRank) bool {
	if a.freq != b.freq {
		return a.freq > b.freq
	}
	return a.rank < b.rank
}

func buildFromSortedFrequencies(freqsDesc []uint64, correspondence []int) (*Coding, error) {
	n := len(freqsDesc)
	lengths := make([]int, n)
	switch n {
	case 0:
		// nothing to encode
	case 1:
		lengths[0] = 1
	default:
		treeDepths(freqsDesc, lengths)
	}
	return newCanonical(lengths, correspondence)
}

// node is a Huffman tree node used only during construction; it is
// discarded once code lengths are read off.
type node struct {
	freq        uint64
	rank        int
	left, right *node
}

// treeDepths runs the two-queue linear-time Huffman build (spec
// §4.10): a queue of leaves in ascending-frequency order and a queue
// of internal nodes, merging the two globally-smallest fronts at each
// step. Because freqsDesc arrives sorted descending, the leaf queue is
// walked back to front to read it off ascending.
func treeDepths(freqsDesc []uint64, lengths []int) {
	n := len(freqsDesc)
	leaves := make([]*node, n)
	for i := 0; i < n; i++ {
		rank := n - 1 - i
		leaves[i] = &node{freq: freqsDesc[rank], rank: rank}
	}
	internal := make([]*node, 0, n-1)
	li, ii := 0, 0

	pop := func() *node {
		if li < len(leaves) && (ii >= len(internal) || leaves[li].freq <= internal[ii].freq) {
			nd := leaves[li]
			li++
			return nd
		}
		nd := internal[ii]
		ii++
		return nd
	}

	for li < len(leaves) || ii+1 < len(internal) {
		a := pop()
		var b *node
		if li < len(leaves) || ii < len(internal) {
			b = pop()
		} else {
			// a lone remaining node becomes the root (only with a single
			// node in total; every merge otherwise leaves one pending)
			lengths[a.rank] = 0
			assignDepths(a, 0, lengths)
			return
		}
		internal = append(internal, &node{freq: a.freq + b.freq, left: a, right: b})
	}
	root := internal[len(internal)-1]
	assignDepths(root, 0, lengths)
}

func assignDepths(n *node, depth int, lengths []int) {
	if n.left == nil && n.right == nil {
		if depth == 0 {
			depth = 1 // a lone symbol still needs one bit per the length>=1 invariant
		}
		lengths[n.rank] = depth
		return
	}
	if n.left != nil {
		assignDepths(n.left, depth+1, lengths)
	}
	if n.right != nil {
		assignDepths(n.right, depth+1, lengths)
	}
}

// newCanonical assigns canonical codewords to a length histogram,
// following the RFC 1951 algorithm: counts per length yield a starting
// value per length, then every rank (visited ascending) claims the
// next available value at its own length. Visiting ranks ascending
// reproduces "sort by (length, rank) ascending" exactly, since the
// per-length counters already encode the length ordering.
func newCanonical(lengths []int, correspondence []int) (*Coding, error) {
	n := len(lengths)
	maxLength := 0
	for _, l := range lengths {
		if l > maxLength {
			maxLength = l
		}
	}
	if maxLength > 62 {
		return nil, argErr("newCanonical", "code length exceeds 62 bits; alphabet too skewed for this representation")
	}

	counts := make([]int, maxLength+1)
	for _, l := range lengths {
		if l > 0 {
			counts[l]++
		}
	}

	firstCode := make([]uint64, maxLength+2)
	nextVal := make([]uint64, maxLength+2)
	val := uint64(0)
	for l := 1; l <= maxLength+1; l++ {
		c := 0
		if l-1 < len(counts) {
			c = counts[l-1]
		}
		val = (val + uint64(c)) << 1
		nextVal[l] = val
		firstCode[l] = val
	}

	firstSymbol := make([]int, maxLength+2)
	seen := make([]bool, maxLength+2)
	words := make([]uint64, n)
	for rank, l := range lengths {
		if l == 0 {
			continue
		}
		if !seen[l] {
			firstSymbol[l] = rank
			seen[l] = true
		}
		words[rank] = nextVal[l]
		nextVal[l]++
	}

	ordinalToRank := make(map[int]int, n)
	for rank, ordinal := range correspondence {
		ordinalToRank[ordinal] = rank
	}

	return &Coding{
		correspondence: correspondence,
		ordinalToRank:  ordinalToRank,
		lengths:        lengths,
		words:          words,
		firstCode:      firstCode,
		firstSymbol:    firstSymbol,
		maxLength:      maxLength,
	}, nil
}

// EncodeRank writes the codeword for the given canonical rank.
func (c *Coding) EncodeRank(w *bitio.Writer, rank int) (int, error) {
	if rank < 0 || rank >= len(c.lengths) {
		return 0, argErr("EncodeRank", "rank out of range")
	}
	l := c.lengths[rank]
	if l == 0 {
		return 0, argErr("EncodeRank", "rank has zero frequency and no assigned code")
	}
	return w.WriteLong(c.words[rank], l)
}

// DecodeRank reads one codeword and returns its canonical rank.
func (c *Coding) DecodeRank(r *bitio.Reader) (int, error) {
	if c.maxLength == 0 {
		return 0, &InvalidInputError{Op: "DecodeRank", Msg: "coding has no symbols"}
	}
	acc := uint64(0)
	for length := 1; length <= c.maxLength; length++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		acc = acc<<1 | b2u(bit)
		// codes of this length run from firstCode[length] up to (not
		// including) firstCode[length+1]>>1
		if acc >= c.firstCode[length] && acc < c.firstCode[length+1]>>1 {
			rank := c.firstSymbol[length] + int(acc-c.firstCode[length])
			if rank < 0 || rank >= len(c.lengths) || c.lengths[rank] != length {
				return 0, &InvalidInputError{Op: "DecodeRank", Msg: "bit pattern does not match any codeword"}
			}
			return rank, nil
		}
	}
	return 0, &InvalidInputError{Op: "DecodeRank", Msg: "bit pattern does not match any codeword"}
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// EncodeSymbol maps ordinal to its rank via the correspondence table
// and writes the codeword.
func (c *Coding) EncodeSymbol(w *bitio.Writer, ordinal int) (int, error) {
	rank, ok := c.ordinalToRank[ordinal]
	if !ok {
		return 0, argErr("EncodeSymbol", "ordinal has no assigned code")
	}
	return c.EncodeRank(w, rank)
}

// DecodeSymbol reads one codeword and returns the caller's symbol
// ordinal.
func (c *Coding) DecodeSymbol(r *bitio.Reader) (int, error) {
	rank, err := c.DecodeRank(r)
	if err != nil {
		return 0, err
	}
	return c.correspondence[rank], nil
}
