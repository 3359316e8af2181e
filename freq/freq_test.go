package freq

import (
	"math"
	"testing"
)

func TestFromEmpty(t *testing.T) {
	f := FromEmpty()
	if f.Total() != 0 {
		t.Errorf("Total() = %d, want 0", f.Total())
	}
	if f.Entropy() != 0 {
		t.Errorf("Entropy() = %v, want 0", f.Entropy())
	}
}

func TestFromBytesUniform(t *testing.T) {
	data := []byte{0, 1, 2, 3}
	f := FromBytes(data)
	if f.Total() != 4 {
		t.Fatalf("Total() = %d, want 4", f.Total())
	}
	want := math.Log(4)
	if math.Abs(f.Entropy()-want) > 1e-9 {
		t.Errorf("Entropy() = %v, want %v", f.Entropy(), want)
	}
	for _, b := range data {
		if got := f.ByteCount(b); got != 1 {
			t.Errorf("ByteCount(%d) = %d, want 1", b, got)
		}
	}
}

func TestFromBytesDegenerate(t *testing.T) {
	f := FromBytes([]byte{7, 7, 7, 7})
	if f.Entropy() != 0 {
		t.Errorf("Entropy() = %v, want 0 for a single symbol", f.Entropy())
	}
}

func TestIntIndexInterleaving(t *testing.T) {
	cases := map[int64]uint64{0: 0, -1: 1, 1: 2, -2: 3, 2: 4, -3: 5}
	for x, want := range cases {
		if got := intIndex(x); got != want {
			t.Errorf("intIndex(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestFromIntsGrowsDenseTable(t *testing.T) {
	values := make([]int64, 0, 300)
	for i := int64(0); i < 150; i++ {
		values = append(values, i)
	}
	f := FromInts(values)
	if f.Total() != 150 {
		t.Fatalf("Total() = %d, want 150", f.Total())
	}
	for i := int64(0); i < 150; i++ {
		if got := f.IntCount(i); got != 1 {
			t.Errorf("IntCount(%d) = %d, want 1", i, got)
		}
	}
}

func TestFromIntsSpillsToSparse(t *testing.T) {
	big := int64(1 << 20)
	f := FromInts([]int64{big, big, -big})
	if got := f.IntCount(big); got != 2 {
		t.Errorf("IntCount(big) = %d, want 2", got)
	}
	if got := f.IntCount(-big); got != 1 {
		t.Errorf("IntCount(-big) = %d, want 1", got)
	}
	if f.Total() != 3 {
		t.Errorf("Total() = %d, want 3", f.Total())
	}
}

func TestFromFrequenciesTrustsCallerTotal(t *testing.T) {
	f, err := FromFrequencies([]uint64{1, 1, 2}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if f.Total() != 1000 {
		t.Errorf("Total() = %d, want 1000 (caller-supplied)", f.Total())
	}
	// Entropy is computed from the real counts regardless of the bogus total.
	want := -((0.25 * math.Log(0.25)) + (0.25 * math.Log(0.25)) + (0.5 * math.Log(0.5)))
	if math.Abs(f.Entropy()-want) > 1e-9 {
		t.Errorf("Entropy() = %v, want %v", f.Entropy(), want)
	}
}

func TestFromFrequenciesRecomputesTotal(t *testing.T) {
	f, err := FromFrequencies([]uint64{3, 5, 2}, -1)
	if err != nil {
		t.Fatal(err)
	}
	if f.Total() != 10 {
		t.Errorf("Total() = %d, want 10", f.Total())
	}
}

func TestCompactDropsZerosAndIdentities(t *testing.T) {
	f, _ := FromFrequencies([]uint64{0, 5, 0, 3, 7}, -1)
	c := f.Compact()
	if len(c.Counts) != 3 {
		t.Fatalf("Compact() has %d entries, want 3", len(c.Counts))
	}
	sum := uint64(0)
	for _, v := range c.Counts {
		sum += v
	}
	if sum != 15 {
		t.Errorf("sum of compact counts = %d, want 15", sum)
	}
}

func TestSortDescending(t *testing.T) {
	f, _ := FromFrequencies([]uint64{1, 9, 3, 7}, -1)
	sorted := f.Compact().SortDescending()
	for i := 1; i < len(sorted); i++ {
		if sorted[i] > sorted[i-1] {
			t.Fatalf("not descending at %d: %v", i, sorted)
		}
	}
}

// TestSmallIntAlphabetScenario pins down the worked example: values
// [7,7,3,3,3,2,7] give counts {2:1, 3:3, 7:3}, binary entropy ≈1.4488,
// and a compacted frequency list that is a permutation of [1,3,3].
func TestSmallIntAlphabetScenario(t *testing.T) {
	f := FromInts([]int64{7, 7, 3, 3, 3, 2, 7})
	if got := f.IntCount(2); got != 1 {
		t.Errorf("IntCount(2) = %d, want 1", got)
	}
	if got := f.IntCount(3); got != 3 {
		t.Errorf("IntCount(3) = %d, want 3", got)
	}
	if got := f.IntCount(7); got != 3 {
		t.Errorf("IntCount(7) = %d, want 3", got)
	}
	if got := f.Total(); got != 7 {
		t.Errorf("Total() = %d, want 7", got)
	}
	if got := f.EntropyBase(2); math.Abs(got-1.4488) > 1e-3 {
		t.Errorf("EntropyBase(2) = %v, want ≈1.4488", got)
	}

	sorted := f.Compact().SortDescending()
	want := []uint64{3, 3, 1}
	if len(sorted) != len(want) {
		t.Fatalf("Compact() has %d entries, want %d", len(sorted), len(want))
	}
	for i := range want {
		if sorted[i] != want[i] {
			t.Errorf("sorted[%d] = %d, want %d", i, sorted[i], want[i])
		}
	}
}

func TestBitsMatchesEntropyTimesTotal(t *testing.T) {
	f := FromBytes([]byte("abracadabra"))
	want := f.EntropyBase(2) * float64(f.Total())
	if got := f.Bits(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Bits() = %v, want %v", got, want)
	}
}
