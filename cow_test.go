package nibtb

import "testing"

func TestSNPSetUnionAndClone(t *testing.T) {
	a := NewSNPSet(1, 2, 3)
	b := NewSNPSet(3, 4)

	union := a.Union(b)
	for _, want := range []int{1, 2, 3, 4} {
		if !union[want] {
			t.Errorf("union missing SNP %d", want)
		}
	}
	if len(a) != 3 {
		t.Errorf("Union mutated its receiver: len(a) = %d, want 3", len(a))
	}

	clone := a.Clone()
	clone.Add(99)
	if a[99] {
		t.Errorf("Clone shares storage with its source")
	}
}

func TestSymmetricDifferenceSize(t *testing.T) {
	cases := []struct {
		a, b SNPSet
		want int
	}{
		{NewSNPSet(1, 2, 3), NewSNPSet(1, 2, 3), 0},
		{NewSNPSet(1, 2, 3), NewSNPSet(4, 5, 6), 6},
		{NewSNPSet(1, 2, 3), NewSNPSet(2, 3, 4), 2},
		{NewSNPSet(), NewSNPSet(), 0},
	}
	for _, c := range cases {
		if got := SymmetricDifferenceSize(c.a, c.b); got != c.want {
			t.Errorf("SymmetricDifferenceSize(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestInfectedCowSampled(t *testing.T) {
	cow := NewInfectedCow(1, Exposed, nil, 0)
	if cow.Sampled() {
		t.Errorf("fresh cow reports Sampled() == true")
	}
	cow.DateSampleTaken = 42
	if !cow.Sampled() {
		t.Errorf("cow with a sample date reports Sampled() == false")
	}
}

func TestInfectedBadgerDaysInfected(t *testing.T) {
	badger := NewInfectedBadger(1, nil, 0, 100)
	if d := badger.DaysInfected(150); d != 50 {
		t.Errorf("DaysInfected(150) = %d, want 50", d)
	}
	if d := badger.DaysInfected(50); d != 0 {
		t.Errorf("DaysInfected before infection date = %d, want 0", d)
	}
}
