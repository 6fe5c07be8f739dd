package rng

import "testing"

func TestIntnZeroOrNegativeReturnsZero(t *testing.T) {
	g := New()
	if got := g.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
	if got := g.Intn(-5); got != 0 {
		t.Errorf("Intn(-5) = %d, want 0", got)
	}
}

func TestIntnWithinRange(t *testing.T) {
	g := New()
	g.Seed(1)
	for i := 0; i < 100; i++ {
		v := g.Intn(7)
		if v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d, want in [0, 7)", v)
		}
	}
}

func TestIntRangeDegenerateReturnsLow(t *testing.T) {
	g := New()
	if got := g.IntRange(5, 5); got != 5 {
		t.Errorf("IntRange(5, 5) = %d, want 5", got)
	}
	if got := g.IntRange(5, 3); got != 5 {
		t.Errorf("IntRange(5, 3) = %d, want 5 (hi <= lo falls back to lo)", got)
	}
}

func TestIntRangeWithinBounds(t *testing.T) {
	g := New()
	g.Seed(2)
	for i := 0; i < 100; i++ {
		v := g.IntRange(10, 20)
		if v < 10 || v > 20 {
			t.Fatalf("IntRange(10, 20) = %d, want in [10, 20]", v)
		}
	}
}

func TestPoissonNonPositiveLambdaReturnsZero(t *testing.T) {
	g := New()
	if got := g.Poisson(0); got != 0 {
		t.Errorf("Poisson(0) = %d, want 0", got)
	}
	if got := g.Poisson(-1); got != 0 {
		t.Errorf("Poisson(-1) = %d, want 0", got)
	}
}

func TestPermIsAPermutation(t *testing.T) {
	g := New()
	g.Seed(3)
	perm := g.Perm(6)
	if len(perm) != 6 {
		t.Fatalf("len(Perm(6)) = %d, want 6", len(perm))
	}
	seen := make(map[int]bool)
	for _, v := range perm {
		seen[v] = true
	}
	if len(seen) != 6 {
		t.Errorf("Perm(6) = %v, want 6 distinct values", perm)
	}
}

func TestTruncatedGaussianHerdSizeIsPositive(t *testing.T) {
	g := New()
	g.Seed(4)
	for i := 0; i < 200; i++ {
		if v := g.TruncatedGaussianHerdSize(); v < 1 {
			t.Fatalf("TruncatedGaussianHerdSize() = %d, want >= 1", v)
		}
	}
}

func TestNextInt64SeedDiffers(t *testing.T) {
	g := New()
	g.Seed(5)
	a := g.NextInt64Seed()
	b := g.NextInt64Seed()
	if a == b {
		t.Errorf("two consecutive NextInt64Seed draws both returned %d", a)
	}
}
