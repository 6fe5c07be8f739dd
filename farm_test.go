package nibtb

import "testing"

func TestFarmRestrictionInvariant(t *testing.T) {
	farm := NewFarm(1, 100)
	if !farm.CheckRestrictionInvariant() {
		t.Errorf("fresh farm should satisfy the restriction invariant")
	}

	farm.LastPositiveTestDate = 10
	farm.NumClearTests = 0
	farm.Restricted = true
	if !farm.CheckRestrictionInvariant() {
		t.Errorf("restricted farm with a recent positive test and < 2 clear tests should satisfy the invariant")
	}

	farm.Restricted = false
	if farm.CheckRestrictionInvariant() {
		t.Errorf("farm with a recent positive test marked unrestricted should violate the invariant")
	}
}

func TestFarmInfectedCowBookkeeping(t *testing.T) {
	farm := NewFarm(1, 100)
	farm.AddInfectedCow(5)
	farm.AddInfectedCow(6)
	if farm.NumInfected() != 2 {
		t.Errorf("NumInfected() = %d, want 2", farm.NumInfected())
	}
	farm.RemoveInfectedCow(5)
	if farm.NumInfected() != 1 {
		t.Errorf("NumInfected() = %d after removal, want 1", farm.NumInfected())
	}
	if _, ok := farm.InfectedCows[5]; ok {
		t.Errorf("cow 5 still present after RemoveInfectedCow")
	}
}
