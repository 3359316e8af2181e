package huffman

import (
	"github.com/psanford/codings/bitio"
	"github.com/psanford/codings/extended"
)

// Dictionary is a serializable record holding enough information to
// rebuild a Coding without re-running tree construction. Sending one
// ahead of a payload is the intended way to prime a receiver that
// doesn't independently know the sender's frequencies.
type Dictionary struct {
	N              int
	Lengths        []int
	Correspondence []int
}

// Dictionary captures c's current lengths and correspondence.
func (c *Coding) Dictionary() Dictionary {
	return Dictionary{N: c.N(), Lengths: c.Lengths(), Correspondence: c.Correspondence()}
}

// FromDictionary rebuilds a Coding from a previously transmitted
// dictionary: canonical codewords are re-derived from the length
// histogram alone, exactly as decoding does not need the tree.
func FromDictionary(d Dictionary) (*Coding, error) {
	if len(d.Lengths) != d.N || len(d.Correspondence) != d.N {
		return nil, argErr("FromDictionary", "N does not match the supplied slices")
	}
	lengths := make([]int, d.N)
	copy(lengths, d.Lengths)
	correspondence := make([]int, d.N)
	copy(correspondence, d.Correspondence)
	return newCanonical(lengths, correspondence)
}

// Write serializes d through ext: N, then each length, then each
// correspondence entry, all as positive integers.
func (d Dictionary) Write(w *bitio.Writer, ext extended.Coding) error {
	if _, err := ext.EncodePositiveFixed(w, uint32(d.N)); err != nil {
		return err
	}
	for _, l := range d.Lengths {
		if _, err := ext.EncodePositiveFixed(w, uint32(l)); err != nil {
			return err
		}
	}
	for _, c := range d.Correspondence {
		if _, err := ext.EncodePositiveFixed(w, uint32(c)); err != nil {
			return err
		}
	}
	return nil
}

// ReadDictionary is the mirror of Dictionary.Write.
func ReadDictionary(r *bitio.Reader, ext extended.Coding) (Dictionary, error) {
	n, err := ext.DecodePositiveFixed(r)
	if err != nil {
		return Dictionary{}, err
	}
	lengths := make([]int, n)
	for i := range lengths {
		l, err := ext.DecodePositiveFixed(r)
		if err != nil {
			return Dictionary{}, err
		}
		lengths[i] = int(l)
	}
	correspondence := make([]int, n)
	for i := range correspondence {
		c, err := ext.DecodePositiveFixed(r)
		if err != nil {
			return Dictionary{}, err
		}
		correspondence[i] = int(c)
	}
	return Dictionary{N: int(n), Lengths: lengths, Correspondence: correspondence}, nil
}
