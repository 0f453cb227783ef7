package footprint

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leading decimal number, the way form values are read by the browser
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Sanitize returns v, or 0 when v is negative, NaN or infinite.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseQuantity reads the leading number of s ("12.5kg" is 12.5). Empty,
// non-numeric, negative and out-of-range values read as 0.
func ParseQuantity(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return Sanitize(v)
}
