package dashboard

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"ecovision/internal/footprint"
)

// ResultView is a footprint estimate formatted for display.
type ResultView struct {
	Electricity       string  `json:"electricity"`
	Transport         string  `json:"transport"`
	Diet              string  `json:"diet"`
	Flights           string  `json:"flights"`
	Total             string  `json:"total"`
	Rating            string  `json:"rating"`
	Color             string  `json:"color"`
	Severity          string  `json:"severity"`
	ComparisonPercent float64 `json:"comparisonPercent"`
}

type ratingStyle struct {
	color    string
	severity string
}

var ratingStyles = map[footprint.Band]ratingStyle{
	footprint.BandLow:      {color: "#27ae60", severity: "success"},
	footprint.BandModerate: {color: "#f39c12", severity: "warning"},
	footprint.BandHigh:     {color: "#e74c3c", severity: "danger"},
}

// NewResultView formats r; percent is the comparison bar width.
func NewResultView(r footprint.Result, percent float64) ResultView {
	style := ratingStyles[r.Band]
	return ResultView{
		Electricity:       FormatKg(r.Electricity),
		Transport:         FormatKg(r.Transport),
		Diet:              FormatKg(r.Diet),
		Flights:           FormatKg(r.Flights),
		Total:             FormatKg(r.Total) + " CO2",
		Rating:            string(r.Band),
		Color:             style.color,
		Severity:          style.severity,
		ComparisonPercent: percent,
	}
}

// FormatKg renders v with one decimal: 0.25 is "0.3 kg", 0.15 is "0.1 kg".
func FormatKg(v float64) string {
	return FormatDecimal(v, 1) + " kg"
}

// FormatDecimal renders v with the given number of decimals. It rounds the
// exact binary value of v, ties away from zero, the way browsers format
// numbers with toFixed. 1.45 is stored below 1.45 and gives "1.4".
func FormatDecimal(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
	if decimals < 0 {
		decimals = 0
	}

	exact := new(big.Rat).SetFloat64(math.Abs(v))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	exact.Mul(exact, new(big.Rat).SetInt(scale))
	exact.Add(exact, big.NewRat(1, 2))
	digits := new(big.Int).Quo(exact.Num(), exact.Denom()).String()

	if decimals > 0 {
		if len(digits) <= decimals {
			digits = strings.Repeat("0", decimals-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-decimals] + "." + digits[len(digits)-decimals:]
	}
	if v < 0 {
		return "-" + digits
	}
	return digits
}
