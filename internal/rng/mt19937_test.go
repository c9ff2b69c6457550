package rng

import "testing"

func TestDeterministicForSameSeed(t *testing.T) {
	a := New(1234567)
	b := New(1234567)
	for i := 0; i < 1000; i++ {
		if a.Uint32() != b.Uint32() {
			t.Fatalf("sequence diverged at draw %d", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 16; i++ {
		if a.Uint32() != b.Uint32() {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected distinct seeds to diverge within 16 draws")
	}
}

func TestIntnStaysInBounds(t *testing.T) {
	r := New(42)
	for i := 0; i < 10000; i++ {
		v := r.Intn(62)
		if v < 0 || v >= 62 {
			t.Fatalf("Intn(62) returned %d", v)
		}
	}
}

func TestIntnPanicsOnNonPositiveBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(1).Intn(0)
}
