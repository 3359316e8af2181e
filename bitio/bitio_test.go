package bitio

import (
	"bytes"
	"math/big"
	"math/rand/v2"
	"testing"
)

func lowOrderBits(v uint32, n int) uint32 {
	if n >= 32 {
		return v
	}
	return v & (1<<uint(n) - 1)
}

func TestWriteReadRoundTrip(t *testing.T) {
	const N = 64
	for iter := 0; iter < 50; iter++ {
		var bs [N]uint32
		var ns [N]int
		for i := 0; i < N; i++ {
			ns[i] = i%32 + 1
			bs[i] = lowOrderBits(rand.Uint32(), ns[i])
		}

		var buf bytes.Buffer
		w := NewWriter(&buf)
		for i := range bs {
			if _, err := w.Write(bs[i], ns[i]); err != nil {
				t.Fatalf("Write: %v", err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}

		r := NewReader(&buf)
		for i := range bs {
			got, err := r.Read(ns[i])
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got != bs[i] {
				t.Errorf("index %d: got %d, want %d (n=%d)", i, got, bs[i], ns[i])
			}
		}
	}
}

func TestReadUntil(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBooleans(true, 5)
	w.WriteBit(false)
	w.WriteBit(true)
	w.Flush()

	r := NewReader(&buf)
	n, err := r.ReadUntil(false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("got run length %d, want 5", n)
	}
	b, err := r.ReadBit()
	if err != nil || !b {
		t.Errorf("expected trailing true bit, got %v, %v", b, err)
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	cases := []struct {
		val *big.Int
		n   int
	}{
		{big.NewInt(0), 8},
		{big.NewInt(1), 1},
		{big.NewInt(255), 8},
		{new(big.Int).Lsh(big.NewInt(1), 200), 201},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if _, err := w.WriteBigInt(c.val, c.n); err != nil {
			t.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		r := NewReader(&buf)
		got, err := r.ReadBigInt(c.n)
		if err != nil {
			t.Fatal(err)
		}
		if got.Cmp(c.val) != 0 {
			t.Errorf("got %v, want %v (n=%d)", got, c.val, c.n)
		}
	}
}

func TestSetPosition(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Write(0b101, 3)
	w.Write(0b11001100, 8)
	w.Flush()

	r := NewReader(bytes.NewReader(buf.Bytes()))
	if err := r.SetPosition(3); err != nil {
		t.Fatal(err)
	}
	got, err := r.Read(8)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0b11001100 {
		t.Errorf("got %08b, want %08b", got, 0b11001100)
	}
}
