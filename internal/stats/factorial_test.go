package stats

import (
	"math"
	"testing"
)

func TestLnFactorialKnownValues(t *testing.T) {
	cases := []struct {
		n    int
		want float64
	}{
		{0, 0},
		{1, 0},
		{2, math.Log(2)},
		{5, math.Log(120)},
	}
	for _, c := range cases {
		if got := LnFactorial(c.n); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("LnFactorial(%d) = %f, want %f", c.n, got, c.want)
		}
	}
}

func TestLnFactorialNegativeIsNaN(t *testing.T) {
	if got := LnFactorial(-1); !math.IsNaN(got) {
		t.Errorf("LnFactorial(-1) = %f, want NaN", got)
	}
}
