// Package codedstreams layers string, primitive-array, enum, and file
// helpers over codedio, each with its own explicit wire layout. There is
// no generic container format here: every helper names its own shape.
package codedstreams

import (
	"bufio"
	"os"
	"unicode/utf16"

	"github.com/psanford/codings/bitio"
	"github.com/psanford/codings/codedio"
	"github.com/psanford/codings/extended"
)

// StreamError reports a failure in a file helper (opening, closing,
// flushing, or the caller-supplied task) or an out-of-range ordinal
// read by ReadEnum.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StreamError) Unwrap() error { return e.Err }

// WriteString writes s as a positive length (in UTF-16 units) followed
// by each unit as a positive codepoint.
func WriteString(w *codedio.Writer, s string) (int, error) {
	units := utf16.Encode([]rune(s))
	total, err := w.WritePositiveFixed(uint32(len(units)))
	if err != nil {
		return total, err
	}
	for _, u := range units {
		n, err := w.WritePositiveFixed(uint32(u))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadString is the mirror of WriteString.
func ReadString(r *codedio.Reader) (string, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return "", err
	}
	units := make([]uint16, n)
	for i := range units {
		u, err := r.ReadPositiveFixed()
		if err != nil {
			return "", err
		}
		units[i] = uint16(u)
	}
	return string(utf16.Decode(units)), nil
}

// WriteBooleanArray writes a positive length then each element as a
// single bit.
func WriteBooleanArray(w *codedio.Writer, a []bool) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(a)))
	if err != nil {
		return total, err
	}
	for _, v := range a {
		if err := w.WriteBoolean(v); err != nil {
			return total, err
		}
		total++
	}
	return total, nil
}

// ReadBooleanArray is the mirror of WriteBooleanArray.
func ReadBooleanArray(r *codedio.Reader) ([]bool, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]bool, n)
	for i := range out {
		if out[i], err = r.ReadBoolean(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteByteArray writes a positive length then each byte as a signed
// fixed-width integer.
func WriteByteArray(w *codedio.Writer, a []int8) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(a)))
	if err != nil {
		return total, err
	}
	for _, v := range a {
		n, err := w.WriteFixed(int32(v))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadByteArray is the mirror of WriteByteArray.
func ReadByteArray(r *codedio.Reader) ([]int8, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]int8, n)
	for i := range out {
		v, err := r.ReadFixed()
		if err != nil {
			return nil, err
		}
		out[i] = int8(v)
	}
	return out, nil
}

// WriteShortArray writes a positive length then each element as a
// signed fixed-width integer.
func WriteShortArray(w *codedio.Writer, a []int16) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(a)))
	if err != nil {
		return total, err
	}
	for _, v := range a {
		n, err := w.WriteFixed(int32(v))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadShortArray is the mirror of WriteShortArray.
func ReadShortArray(r *codedio.Reader) ([]int16, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]int16, n)
	for i := range out {
		v, err := r.ReadFixed()
		if err != nil {
			return nil, err
		}
		out[i] = int16(v)
	}
	return out, nil
}

// WriteIntArray writes a positive length then each element as a signed
// fixed-width integer.
func WriteIntArray(w *codedio.Writer, a []int32) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(a)))
	if err != nil {
		return total, err
	}
	for _, v := range a {
		n, err := w.WriteFixed(v)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadIntArray is the mirror of WriteIntArray.
func ReadIntArray(r *codedio.Reader) ([]int32, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		if out[i], err = r.ReadFixed(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteLongArray writes a positive length then each element as a
// signed wide integer.
func WriteLongArray(w *codedio.Writer, a []int64) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(a)))
	if err != nil {
		return total, err
	}
	for _, v := range a {
		n, err := w.WriteWide(v)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadLongArray is the mirror of WriteLongArray.
func ReadLongArray(r *codedio.Reader) ([]int64, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		if out[i], err = r.ReadWide(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteFloatArray writes a positive length then each element via the
// float framing.
func WriteFloatArray(w *codedio.Writer, a []float32) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(a)))
	if err != nil {
		return total, err
	}
	for _, v := range a {
		n, err := w.WriteFloat(v)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFloatArray is the mirror of WriteFloatArray.
func ReadFloatArray(r *codedio.Reader) ([]float32, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		if out[i], err = r.ReadFloat(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteDoubleArray writes a positive length then each element via the
// double framing.
func WriteDoubleArray(w *codedio.Writer, a []float64) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(a)))
	if err != nil {
		return total, err
	}
	for _, v := range a {
		n, err := w.WriteDouble(v)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadDoubleArray is the mirror of WriteDoubleArray.
func ReadDoubleArray(r *codedio.Reader) ([]float64, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		if out[i], err = r.ReadDouble(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteCharArray writes a positive length then each character as a
// positive codepoint.
func WriteCharArray(w *codedio.Writer, a []rune) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(a)))
	if err != nil {
		return total, err
	}
	for _, v := range a {
		n, err := w.WritePositiveFixed(uint32(v))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadCharArray is the mirror of WriteCharArray.
func ReadCharArray(r *codedio.Reader) ([]rune, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]rune, n)
	for i := range out {
		v, err := r.ReadPositiveFixed()
		if err != nil {
			return nil, err
		}
		out[i] = rune(v)
	}
	return out, nil
}

// WriteEnum writes ordinal as a positive integer.
func WriteEnum(w *codedio.Writer, ordinal int) (int, error) {
	return w.WritePositiveFixed(uint32(ordinal))
}

// ReadEnum reads an ordinal and resolves it against the caller-supplied
// variant table.
func ReadEnum[T any](r *codedio.Reader, variants []T) (T, error) {
	var zero T
	ordinal, err := r.ReadPositiveFixed()
	if err != nil {
		return zero, err
	}
	if int(ordinal) >= len(variants) {
		return zero, &StreamError{Op: "ReadEnum", Err: bitio.ErrValueTooLarge}
	}
	return variants[ordinal], nil
}

// WriteEnumArray writes a positive length then each ordinal as a
// positive integer. Ordinals round-trip as written: no off-by-one
// adjustment is applied in either direction.
func WriteEnumArray(w *codedio.Writer, ordinals []int) (int, error) {
	total, err := w.WritePositiveFixed(uint32(len(ordinals)))
	if err != nil {
		return total, err
	}
	for _, o := range ordinals {
		n, err := WriteEnum(w, o)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadEnumArray is the mirror of WriteEnumArray.
func ReadEnumArray[T any](r *codedio.Reader, variants []T) ([]T, error) {
	n, err := r.ReadPositiveFixed()
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		if out[i], err = ReadEnum(r, variants); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteToFile opens path for buffered writing, wraps it in a bit
// writer paired with ext, and runs task. The underlying file is closed
// on every exit path, including when task fails; any I/O error becomes
// a StreamError.
func WriteToFile(path string, ext extended.Coding, task func(*codedio.Writer) error) (err error) {
	f, openErr := os.Create(path)
	if openErr != nil {
		return &StreamError{Op: "WriteToFile", Err: openErr}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &StreamError{Op: "WriteToFile", Err: closeErr}
		}
	}()

	buffered := bufio.NewWriter(f)
	w := codedio.NewWriter(bitio.NewWriter(buffered), ext)
	if taskErr := task(w); taskErr != nil {
		return &StreamError{Op: "WriteToFile", Err: taskErr}
	}
	if flushErr := w.Flush(); flushErr != nil {
		return &StreamError{Op: "WriteToFile", Err: flushErr}
	}
	if flushErr := buffered.Flush(); flushErr != nil {
		return &StreamError{Op: "WriteToFile", Err: flushErr}
	}
	return nil
}

// ReadFromFile is the mirror of WriteToFile.
func ReadFromFile(path string, ext extended.Coding, task func(*codedio.Reader) error) (err error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return &StreamError{Op: "ReadFromFile", Err: openErr}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &StreamError{Op: "ReadFromFile", Err: closeErr}
		}
	}()

	buffered := bufio.NewReader(f)
	r := codedio.NewReader(bitio.NewReader(buffered), ext)
	if taskErr := task(r); taskErr != nil {
		return &StreamError{Op: "ReadFromFile", Err: taskErr}
	}
	return nil
}
