package extended

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/psanford/codings/bitio"
	"github.com/psanford/codings/codings"
)

func roundTripSignedFixed(t *testing.T, c Coding, v int32) int32 {
	t.Helper()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if _, err := c.EncodeFixed(w, v); err != nil {
		t.Fatalf("encode %d: %v", v, err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	r := bitio.NewReader(&buf)
	got, err := c.DecodeFixed(r)
	if err != nil {
		t.Fatalf("decode %d: %v", v, err)
	}
	return got
}

func TestZigZagKnownValues(t *testing.T) {
	c := New(codings.EliasDelta{})
	cases := map[int32]uint32{0: 0, 1: 1, -1: 2, 2: 3, -2: 4, 3: 5, -3: 6}
	for v, want := range cases {
		got := zigZagInt32(v)
		if got != want {
			t.Errorf("zigZag(%d) = %d, want %d", v, got, want)
		}
		if back := unZigZagInt32(got); back != v {
			t.Errorf("unZigZag(%d) = %d, want %d", got, back, v)
		}
	}
	_ = c
}

func TestSignedRoundTrip(t *testing.T) {
	c := New(codings.Fibonacci{})
	for _, v := range []int32{0, 1, -1, 2, -2, 100, -100, math.MaxInt32, math.MinInt32 + 1} {
		if got := roundTripSignedFixed(t, c, v); got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestSignedUnboundedRoundTrip(t *testing.T) {
	c := New(codings.EliasOmega{})
	values := []int64{0, 1, -1, 1000000, -1000000}
	for _, v := range values {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		big1 := big.NewInt(v)
		if _, err := c.EncodeUnbounded(w, big1); err != nil {
			t.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		r := bitio.NewReader(&buf)
		got, err := c.DecodeUnbounded(r)
		if err != nil {
			t.Fatal(err)
		}
		if got.Cmp(big1) != 0 {
			t.Errorf("round trip %d: got %v", v, got)
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	c := New(codings.EliasDelta{})
	values := []float32{0, 1, -1, 3.14159, -3.14159, math.SmallestNonzeroFloat32, math.MaxFloat32, float32(math.Copysign(0, -1))}
	for _, v := range values {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		if _, err := c.EncodeFloat(w, v); err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		r := bitio.NewReader(&buf)
		got, err := c.DecodeFloat(r)
		if err != nil {
			t.Fatalf("decode %v: %v", v, err)
		}
		if math.Float32bits(got) != math.Float32bits(v) {
			t.Errorf("round trip %v: got %v (bits %x vs %x)", v, got, math.Float32bits(got), math.Float32bits(v))
		}
	}
}

func TestFloatRejectsNaNAndInf(t *testing.T) {
	c := New(codings.EliasDelta{})
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if _, err := c.EncodeFloat(w, float32(math.NaN())); err == nil {
		t.Error("expected argument error for NaN")
	}
	if _, err := c.EncodeFloat(w, float32(math.Inf(1))); err == nil {
		t.Error("expected argument error for +Inf")
	}
}

func TestDoubleRoundTrip(t *testing.T) {
	c := New(codings.EliasOmega{})
	values := []float64{0, 1, -1, math.Pi, -math.Pi, math.SmallestNonzeroFloat64, math.MaxFloat64, math.Copysign(0, -1)}
	for _, v := range values {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		if _, err := c.EncodeDouble(w, v); err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		r := bitio.NewReader(&buf)
		got, err := c.DecodeDouble(r)
		if err != nil {
			t.Fatalf("decode %v: %v", v, err)
		}
		if math.Float64bits(got) != math.Float64bits(v) {
			t.Errorf("round trip %v: got %v", v, got)
		}
	}
}

func TestBigDecimalRoundTrip(t *testing.T) {
	c := New(codings.Fibonacci{})
	cases := []struct {
		scale    int32
		unscaled *big.Int
	}{
		{0, big.NewInt(0)},
		{2, big.NewInt(12345)},
		{-3, big.NewInt(-98765)},
		{10, new(big.Int).Lsh(big.NewInt(1), 200)},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		if _, err := c.EncodeBigDecimal(w, tc.scale, tc.unscaled); err != nil {
			t.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		r := bitio.NewReader(&buf)
		scale, unscaled, err := c.DecodeBigDecimal(r)
		if err != nil {
			t.Fatal(err)
		}
		if scale != tc.scale || unscaled.Cmp(tc.unscaled) != 0 {
			t.Errorf("round trip scale=%d unscaled=%v: got scale=%d unscaled=%v", tc.scale, tc.unscaled, scale, unscaled)
		}
	}
}
