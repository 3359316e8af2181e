// Package bitio is the bit-cursor layer every coding in this module is
// built on. It wraps github.com/icza/bitio for the byte-to-bit plumbing and
// adds the wider operations the coding layer needs: arbitrary-precision
// reads and writes, run-length ("read/write until a bit value") helpers,
// and position tracking for seekable sources.
//
// Coding implementations never touch an io.Reader or io.Writer directly;
// they only see a *Reader or *Writer from this package, so every codec in
// the module is safe to use with any byte-level transport bitio.NewReader
// or bitio.NewWriter can sit on top of.
package bitio

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/icza/bitio"
)

// StreamError wraps a failure reading or writing the underlying bit
// cursor, or a value that did not fit in the width requested by the
// caller.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string { return fmt.Sprintf("bitio: %s: %v", e.Op, e.Err) }
func (e *StreamError) Unwrap() error { return e.Err }

func streamErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StreamError{Op: op, Err: err}
}

// ErrValueTooLarge is returned when a decoded value does not fit in the
// width the caller asked for (Fixed or Wide).
var ErrValueTooLarge = errors.New("bitio: decoded value too large for requested width")

// ErrNegativeValue is the argument-error raised when an encoder is asked
// to write a negative-width count or other nonsensical argument.
var ErrNegativeValue = errors.New("bitio: negative value")

// A seekableSource is the io.ReaderAt capability a Reader needs to
// support SetPosition. Readers built over a plain io.Reader don't
// implement it and SetPosition returns an error on them.
type seekableSource interface {
	io.ReaderAt
}

// Reader is a cursor over a bit-oriented input. All reads advance the
// cursor; a *Reader is not safe for concurrent use by multiple
// goroutines. Callers that need concurrent access should give each
// goroutine its own cursor.
type Reader struct {
	br  *bitio.Reader
	src io.Reader
	ra  seekableSource // non-nil when the source supports SetPosition
	pos int64          // absolute bit position, maintained locally
}

// NewReader wraps r in a bit cursor positioned at bit 0.
func NewReader(r io.Reader) *Reader {
	ra, _ := r.(seekableSource)
	return &Reader{br: bitio.NewReader(r), src: r, ra: ra}
}

// Position returns the current absolute bit offset.
func (r *Reader) Position() int64 { return r.pos }

// SetPosition repositions the cursor to an absolute bit index. It requires
// the underlying source to support io.ReaderAt; otherwise it returns a
// stream error.
func (r *Reader) SetPosition(bitIndex int64) error {
	if r.ra == nil {
		return streamErr("SetPosition", errors.New("underlying source is not seekable"))
	}
	if bitIndex < 0 {
		return streamErr("SetPosition", ErrNegativeValue)
	}
	byteOff := bitIndex / 8
	r.br = bitio.NewReader(io.NewSectionReader(r.ra, byteOff, 1<<62))
	r.pos = byteOff * 8
	if skip := int(bitIndex - r.pos); skip > 0 {
		if _, err := r.Read(skip); err != nil {
			return err
		}
	}
	return nil
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	b, err := r.br.ReadBool()
	if err != nil {
		return false, streamErr("ReadBit", err)
	}
	r.pos++
	return b, nil
}

// ReadBoolean is an alias for ReadBit, named to match the boolean-valued
// helpers layered on top of this cursor elsewhere in the module.
func (r *Reader) ReadBoolean() (bool, error) { return r.ReadBit() }

// Read reads n (0 <= n <= 32) bits into a machine word, MSB-first.
func (r *Reader) Read(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, streamErr("Read", fmt.Errorf("width %d out of range [0,32]", n))
	}
	if n == 0 {
		return 0, nil
	}
	v, err := r.br.ReadBits(uint8(n))
	if err != nil {
		return 0, streamErr("Read", err)
	}
	r.pos += int64(n)
	return uint32(v), nil
}

// ReadLong reads n (0 <= n <= 63) bits into a 64-bit word, MSB-first.
func (r *Reader) ReadLong(n int) (uint64, error) {
	if n < 0 || n > 63 {
		return 0, streamErr("ReadLong", fmt.Errorf("width %d out of range [0,63]", n))
	}
	if n == 0 {
		return 0, nil
	}
	v, err := r.br.ReadBits(uint8(n))
	if err != nil {
		return 0, streamErr("ReadLong", err)
	}
	r.pos += int64(n)
	return v, nil
}

// ReadBigInt reads n bits into an arbitrary-precision unsigned integer,
// MSB-first, in 56-bit chunks (kept under icza/bitio's 64-bit ReadBits
// ceiling with headroom for the shift-and-or accumulation below).
func (r *Reader) ReadBigInt(n int) (*big.Int, error) {
	if n < 0 {
		return nil, streamErr("ReadBigInt", ErrNegativeValue)
	}
	result := new(big.Int)
	const chunk = 56
	remaining := n
	for remaining > 0 {
		take := remaining
		if take > chunk {
			take = chunk
		}
		v, err := r.br.ReadBits(uint8(take))
		if err != nil {
			return nil, streamErr("ReadBigInt", err)
		}
		result.Lsh(result, uint(take))
		result.Or(result, new(big.Int).SetUint64(v))
		remaining -= take
	}
	r.pos += int64(n)
	return result, nil
}

// ReadUntil reads bits until one equal to target is seen (and consumed),
// returning the number of bits that did not match target (the run
// length). Used by unary-style codings.
func (r *Reader) ReadUntil(target bool) (int64, error) {
	var n int64
	for {
		b, err := r.ReadBit()
		if err != nil {
			return n, err
		}
		if b == target {
			return n, nil
		}
		n++
		if n > (1<<31 - 2) {
			return n, streamErr("ReadUntil", errors.New("run length exceeds unary cap"))
		}
	}
}

// Writer is a cursor over a bit-oriented output. Like Reader, it is not
// safe for concurrent use.
type Writer struct {
	bw  *bitio.Writer
	pos int64
}

// NewWriter wraps w in a bit cursor. Callers must call Flush to write any
// partial trailing byte.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bitio.NewWriter(w)}
}

// Position returns the number of bits written so far.
func (w *Writer) Position() int64 { return w.pos }

// WriteBit writes a single bit.
func (w *Writer) WriteBit(b bool) error {
	if err := w.bw.WriteBool(b); err != nil {
		return streamErr("WriteBit", err)
	}
	w.pos++
	return nil
}

// WriteBoolean is an alias for WriteBit, named to match ReadBoolean.
func (w *Writer) WriteBoolean(b bool) error { return w.WriteBit(b) }

// Write writes the low n (0 <= n <= 32) bits of value, MSB-first, and
// returns the number of bits written.
func (w *Writer) Write(value uint32, n int) (int, error) {
	if n < 0 || n > 32 {
		return 0, streamErr("Write", fmt.Errorf("width %d out of range [0,32]", n))
	}
	if n == 0 {
		return 0, nil
	}
	if n < 32 {
		value &= 1<<uint(n) - 1
	}
	if err := w.bw.WriteBits(uint64(value), uint8(n)); err != nil {
		return 0, streamErr("Write", err)
	}
	w.pos += int64(n)
	return n, nil
}

// WriteLong writes the low n (0 <= n <= 63) bits of value, MSB-first.
func (w *Writer) WriteLong(value uint64, n int) (int, error) {
	if n < 0 || n > 63 {
		return 0, streamErr("WriteLong", fmt.Errorf("width %d out of range [0,63]", n))
	}
	if n == 0 {
		return 0, nil
	}
	if n < 64 {
		value &= 1<<uint(n) - 1
	}
	if err := w.bw.WriteBits(value, uint8(n)); err != nil {
		return 0, streamErr("WriteLong", err)
	}
	w.pos += int64(n)
	return n, nil
}

// WriteBigInt writes the low n bits of value (MSB-first, zero-extended or
// truncated to n bits as big.Int.Bit would read them) one bit at a time.
func (w *Writer) WriteBigInt(value *big.Int, n int) (int, error) {
	if n < 0 {
		return 0, streamErr("WriteBigInt", ErrNegativeValue)
	}
	for i := n - 1; i >= 0; i-- {
		if err := w.WriteBit(value.Bit(i) == 1); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// WriteBooleans writes k copies of b and returns the number of bits
// written (always k) — the batch form used for unary runs.
func (w *Writer) WriteBooleans(b bool, k int) (int, error) {
	if k < 0 {
		return 0, streamErr("WriteBooleans", ErrNegativeValue)
	}
	for i := 0; i < k; i++ {
		if err := w.WriteBit(b); err != nil {
			return i, err
		}
	}
	return k, nil
}

// Flush pads the current byte with zero bits and writes it out. It does
// not close the underlying io.Writer.
func (w *Writer) Flush() error {
	if err := w.bw.Close(); err != nil {
		return streamErr("Flush", err)
	}
	return nil
}
