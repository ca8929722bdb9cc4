package currency

import (
	"fmt"
	"math"
)

// FormatINR renders an amount with Indian digit grouping, e.g.
// FormatINR(1234567) == "INR 12,34,567".
func FormatINR(amount float64) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	formatted := groupIndian(fmt.Sprintf("%.0f", rounded))

	result := "INR " + formatted
	if negative {
		result = "-" + result
	}

	return result
}

// groupIndian separates the last three digits, then pairs: 12,34,567.
func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	head := s[:n-3]
	tail := s[n-3:]

	var out []byte
	for i, c := range []byte(head) {
		if i > 0 && (len(head)-i)%2 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	out = append(out, ',')
	out = append(out, tail...)

	return string(out)
}
