// Package codedio pairs a bit cursor with an ExtendedCoding, exposing a
// full value-typed read/write surface. Neither type holds state beyond
// the two references it wraps.
package codedio

import (
	"math/big"

	"github.com/psanford/codings/bitio"
	"github.com/psanford/codings/extended"
)

// Writer pairs a bit writer with an ExtendedCoding.
type Writer struct {
	W   *bitio.Writer
	Ext extended.Coding
}

// NewWriter builds a Writer over w using ext for every value written.
func NewWriter(w *bitio.Writer, ext extended.Coding) *Writer {
	return &Writer{W: w, Ext: ext}
}

func (c *Writer) WritePositiveFixed(v uint32) (int, error)     { return c.Ext.EncodePositiveFixed(c.W, v) }
func (c *Writer) WritePositiveWide(v uint64) (int, error)      { return c.Ext.EncodePositiveWide(c.W, v) }
func (c *Writer) WritePositiveUnbounded(v *big.Int) (int, error) {
	return c.Ext.EncodePositiveUnbounded(c.W, v)
}

func (c *Writer) WriteFixed(v int32) (int, error)        { return c.Ext.EncodeFixed(c.W, v) }
func (c *Writer) WriteWide(v int64) (int, error)         { return c.Ext.EncodeWide(c.W, v) }
func (c *Writer) WriteUnbounded(v *big.Int) (int, error) { return c.Ext.EncodeUnbounded(c.W, v) }

func (c *Writer) WriteFloat(f float32) (int, error)  { return c.Ext.EncodeFloat(c.W, f) }
func (c *Writer) WriteDouble(f float64) (int, error) { return c.Ext.EncodeDouble(c.W, f) }

func (c *Writer) WriteDecimal(scale int32, unscaled *big.Int) (int, error) {
	return c.Ext.EncodeBigDecimal(c.W, scale, unscaled)
}

func (c *Writer) WriteBoolean(b bool) error { return c.W.WriteBoolean(b) }

func (c *Writer) Flush() error { return c.W.Flush() }

// Reader is the mirror of Writer.
type Reader struct {
	R   *bitio.Reader
	Ext extended.Coding
}

// NewReader builds a Reader over r using ext for every value read.
func NewReader(r *bitio.Reader, ext extended.Coding) *Reader {
	return &Reader{R: r, Ext: ext}
}

func (c *Reader) ReadPositiveFixed() (uint32, error)       { return c.Ext.DecodePositiveFixed(c.R) }
func (c *Reader) ReadPositiveWide() (uint64, error)        { return c.Ext.DecodePositiveWide(c.R) }
func (c *Reader) ReadPositiveUnbounded() (*big.Int, error) { return c.Ext.DecodePositiveUnbounded(c.R) }

func (c *Reader) ReadFixed() (int32, error)        { return c.Ext.DecodeFixed(c.R) }
func (c *Reader) ReadWide() (int64, error)         { return c.Ext.DecodeWide(c.R) }
func (c *Reader) ReadUnbounded() (*big.Int, error) { return c.Ext.DecodeUnbounded(c.R) }

func (c *Reader) ReadFloat() (float32, error) { return c.Ext.DecodeFloat(c.R) }
func (c *Reader) ReadDouble() (float64, error) { return c.Ext.DecodeDouble(c.R) }

func (c *Reader) ReadDecimal() (scale int32, unscaled *big.Int, err error) {
	return c.Ext.DecodeBigDecimal(c.R)
}

func (c *Reader) ReadBoolean() (bool, error) { return c.R.ReadBoolean() }
