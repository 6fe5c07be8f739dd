package controller

import (
	"fmt"
	"strings"
)

// FormatParameterLine renders a parameter vector as the k=v parameters
// file body (§6 "Parameters file"), each value in six-significant-digit
// exponential notation (§4.7 step 6).
func FormatParameterLine(names []string, values []float64) string {
	var b strings.Builder
	for i, name := range names {
		fmt.Fprintf(&b, "%s=%s\n", name, formatSixSigFig(values[i]))
	}
	return b.String()
}

// formatSixSigFig renders v in exponential notation with six
// significant digits, e.g. 1.23456e-03.
func formatSixSigFig(v float64) string {
	return fmt.Sprintf("%.5e", v)
}
