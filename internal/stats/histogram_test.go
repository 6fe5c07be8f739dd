package stats

import "testing"

func TestTallyAndCount(t *testing.T) {
	h := NewIntHistogram()
	h.Tally(3)
	h.TallyN(3, 4)
	h.Tally(7)

	if got := h.Count(3); got != 5 {
		t.Errorf("Count(3) = %d, want 5", got)
	}
	if got := h.Count(7); got != 1 {
		t.Errorf("Count(7) = %d, want 1", got)
	}
	if got := h.Sum(); got != 6 {
		t.Errorf("Sum() = %d, want 6", got)
	}
	if got := h.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestStringAndParseRoundTrip(t *testing.T) {
	h := NewIntHistogram()
	h.TallyN(0, 3)
	h.TallyN(5, 2)

	s := h.String()
	parsed, err := ParseIntHistogram(s)
	if err != nil {
		t.Fatalf("ParseIntHistogram(%q): %v", s, err)
	}
	if parsed.Count(0) != 3 || parsed.Count(5) != 2 {
		t.Errorf("round trip = %v, want Count(0)=3 Count(5)=2", parsed.Bins())
	}
}

func TestParseIntHistogramEmptyString(t *testing.T) {
	h, err := ParseIntHistogram("")
	if err != nil {
		t.Fatalf("ParseIntHistogram(\"\"): %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for an empty string", h.Len())
	}
}

func TestParseIntHistogramMalformedEntry(t *testing.T) {
	if _, err := ParseIntHistogram("1:2,garbage"); err == nil {
		t.Errorf("expected an error for a malformed entry")
	}
}

func TestNormaliseBinsLargestRemainder(t *testing.T) {
	h := NewIntHistogram()
	h.TallyN(0, 1)
	h.TallyN(1, 1)
	h.TallyN(2, 1)

	if err := h.NormaliseBins(10); err != nil {
		t.Fatalf("NormaliseBins: %v", err)
	}
	if got := h.Sum(); got != 10 {
		t.Errorf("Sum() after NormaliseBins(10) = %d, want 10", got)
	}
}

func TestNormaliseBinsEmptyToZeroIsNoop(t *testing.T) {
	h := NewIntHistogram()
	if err := h.NormaliseBins(0); err != nil {
		t.Errorf("NormaliseBins(0) on an empty histogram returned %v, want nil", err)
	}
}

func TestNormaliseBinsEmptyToNonZeroErrors(t *testing.T) {
	h := NewIntHistogram()
	if err := h.NormaliseBins(5); err == nil {
		t.Errorf("expected an error normalising an empty histogram to a non-zero target")
	}
}

func TestSampleWeightedDraw(t *testing.T) {
	h := NewIntHistogram()
	h.TallyN(1, 1)
	h.TallyN(2, 3)

	if got := h.Sample(0.0); got != 1 {
		t.Errorf("Sample(0.0) = %d, want 1", got)
	}
	if got := h.Sample(0.99); got != 2 {
		t.Errorf("Sample(0.99) = %d, want 2", got)
	}
}

func TestSampleOnEmptyHistogramReturnsZero(t *testing.T) {
	h := NewIntHistogram()
	if got := h.Sample(0.5); got != 0 {
		t.Errorf("Sample on an empty histogram = %d, want 0", got)
	}
}
