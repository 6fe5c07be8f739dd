package controller

import (
	"strings"
	"testing"
)

func TestFormatParameterLineSixSigFig(t *testing.T) {
	line := FormatParameterLine([]string{"beta", "mutationRate"}, []float64{0.012345678, 1.23456789e-4})

	if !strings.Contains(line, "beta=1.23457e-02\n") {
		t.Errorf("line = %q, want a beta entry formatted to six significant figures", line)
	}
	if !strings.Contains(line, "mutationRate=1.23457e-04\n") {
		t.Errorf("line = %q, want a mutationRate entry formatted to six significant figures", line)
	}
}

func TestFormatParameterLinePreservesOrder(t *testing.T) {
	names := []string{"a", "b", "c"}
	values := []float64{1, 2, 3}
	line := FormatParameterLine(names, values)

	lines := strings.Split(strings.TrimRight(line, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for i, name := range names {
		if !strings.HasPrefix(lines[i], name+"=") {
			t.Errorf("line[%d] = %q, want prefix %q", i, lines[i], name+"=")
		}
	}
}
