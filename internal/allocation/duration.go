package allocation

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// RoundMinutes rounds a minute amount half-up to a whole minute. Negative
// and NaN amounts round to zero.
func RoundMinutes(minutes float64) int64 {
	if math.IsNaN(minutes) || minutes <= 0 {
		return 0
	}
	rounded := math.Round(minutes)
	if rounded >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(rounded)
}

// FormatMinutes renders whole minutes as "H hours M minutes", dropping a
// zero segment and using the singular for a count of one.
func FormatMinutes(total int64) string {
	if total <= 0 {
		return "0 minutes"
	}
	hours := total / 60
	mins := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if mins > 0 {
		parts = append(parts, plural(mins, "minute"))
	}
	return strings.Join(parts, " ")
}

func plural(n int64, unit string) string {
	s := strconv.FormatInt(n, 10) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}

// Summarize renders the weekly summary sentence for a total budget in
// minutes. A total that overflows float64 reads as "Infinity".
func Summarize(totalMinutes float64) string {
	return "Allocate " + formatTenths(totalMinutes/60.0) + " total study hours each week."
}

// formatTenths formats v with one decimal digit, rounding ties away from
// zero on the shortest decimal form of v. The decimal point is always '.'.
func formatTenths(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	digits := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	whole, frac, _ := strings.Cut(digits, ".")
	frac += "00"

	tenths, ok := new(big.Int).SetString(whole+frac[:1], 10)
	if !ok {
		return "0.0"
	}
	if frac[1] >= '5' {
		tenths.Add(tenths, big.NewInt(1))
	}

	s := tenths.String()
	if len(s) < 2 {
		s = "0" + s
	}
	out := s[:len(s)-1] + "." + s[len(s)-1:]
	if v < 0 && out != "0.0" {
		out = "-" + out
	}
	return out
}
