package codedstreams

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/psanford/codings/bitio"
	"github.com/psanford/codings/codedio"
	"github.com/psanford/codings/codings"
	"github.com/psanford/codings/extended"
)

func newPair(buf *bytes.Buffer) (*codedio.Writer, extended.Coding) {
	ext := extended.New(codings.Fibonacci{})
	return codedio.NewWriter(bitio.NewWriter(buf), ext), ext
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, ext := newPair(&buf)
	want := "hello, 世界"
	if _, err := WriteString(w, want); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	r := codedio.NewReader(bitio.NewReader(&buf), ext)
	got, err := ReadString(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptyString(t *testing.T) {
	var buf bytes.Buffer
	w, ext := newPair(&buf)
	if _, err := WriteString(w, ""); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	r := codedio.NewReader(bitio.NewReader(&buf), ext)
	got, err := ReadString(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestPrimitiveArrayRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w, ext := newPair(&buf)

	bools := []bool{true, false, true, true}
	ints := []int32{-5, 0, 5, 1 << 20}
	longs := []int64{-1 << 40, 0, 1 << 40}
	floats := []float32{-1.5, 0, 2.25}
	doubles := []float64{-1.5, 0, 2.25}
	chars := []rune{'a', 'b', '世'}

	if _, err := WriteBooleanArray(w, bools); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteIntArray(w, ints); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteLongArray(w, longs); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteFloatArray(w, floats); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteDoubleArray(w, doubles); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteCharArray(w, chars); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	r := codedio.NewReader(bitio.NewReader(&buf), ext)
	gotBools, err := ReadBooleanArray(r)
	if err != nil || !equalBools(gotBools, bools) {
		t.Errorf("ReadBooleanArray() = %v, %v", gotBools, err)
	}
	gotInts, err := ReadIntArray(r)
	if err != nil || !equalInt32s(gotInts, ints) {
		t.Errorf("ReadIntArray() = %v, %v", gotInts, err)
	}
	gotLongs, err := ReadLongArray(r)
	if err != nil || !equalInt64s(gotLongs, longs) {
		t.Errorf("ReadLongArray() = %v, %v", gotLongs, err)
	}
	gotFloats, err := ReadFloatArray(r)
	if err != nil || !equalFloat32s(gotFloats, floats) {
		t.Errorf("ReadFloatArray() = %v, %v", gotFloats, err)
	}
	gotDoubles, err := ReadDoubleArray(r)
	if err != nil || !equalFloat64s(gotDoubles, doubles) {
		t.Errorf("ReadDoubleArray() = %v, %v", gotDoubles, err)
	}
	gotChars, err := ReadCharArray(r)
	if err != nil || !equalRunes(gotChars, chars) {
		t.Errorf("ReadCharArray() = %v, %v", gotChars, err)
	}
}

func TestEnumRoundTrip(t *testing.T) {
	type color int
	const (
		red color = iota
		green
		blue
	)
	variants := []color{red, green, blue}

	var buf bytes.Buffer
	w, ext := newPair(&buf)
	if _, err := WriteEnum(w, int(green)); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	r := codedio.NewReader(bitio.NewReader(&buf), ext)
	got, err := ReadEnum(r, variants)
	if err != nil {
		t.Fatal(err)
	}
	if got != green {
		t.Errorf("got %v, want %v", got, green)
	}
}

func TestEnumArrayRoundTrip(t *testing.T) {
	variants := []string{"red", "green", "blue"}
	var buf bytes.Buffer
	w, ext := newPair(&buf)
	if _, err := WriteEnumArray(w, []int{2, 0, 1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	r := codedio.NewReader(bitio.NewReader(&buf), ext)
	got, err := ReadEnumArray(r, variants)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"blue", "red", "green", "green"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnumOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	w, ext := newPair(&buf)
	if _, err := WriteEnum(w, 5); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	r := codedio.NewReader(bitio.NewReader(&buf), ext)
	if _, err := ReadEnum(r, []int{1, 2}); err == nil {
		t.Error("expected an error for an out-of-range ordinal")
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.bin")
	ext := extended.New(codings.EliasOmega{})

	err := WriteToFile(path, ext, func(w *codedio.Writer) error {
		if _, err := w.WritePositiveFixed(99); err != nil {
			return err
		}
		_, err := WriteString(w, "payload")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	var gotNum uint32
	var gotStr string
	err = ReadFromFile(path, ext, func(r *codedio.Reader) error {
		var err error
		gotNum, err = r.ReadPositiveFixed()
		if err != nil {
			return err
		}
		gotStr, err = ReadString(r)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotNum != 99 || gotStr != "payload" {
		t.Errorf("got (%d, %q), want (99, %q)", gotNum, gotStr, "payload")
	}
}

func TestReadFromFileMissingFile(t *testing.T) {
	ext := extended.New(codings.EliasDelta{})
	err := ReadFromFile(filepath.Join(os.TempDir(), "does-not-exist-12345.bin"), ext, func(r *codedio.Reader) error {
		return nil
	})
	if err == nil {
		t.Error("expected a stream error for a missing file")
	}
	var streamErr *StreamError
	if !asStreamError(err, &streamErr) {
		t.Errorf("error %v is not a *StreamError", err)
	}
}

func asStreamError(err error, target **StreamError) bool {
	se, ok := err.(*StreamError)
	if ok {
		*target = se
	}
	return ok
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInt32s(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInt64s(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloat32s(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloat64s(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
