package pricing

import "math"

// ToCents converts a major-unit USD amount to integer cents, rounding half
// away from zero. NaN, infinite and negative amounts clamp to 0 so an invalid
// price can never reach a payment request as a bogus total.
//
// Every cents computation in this codebase must go through ToCents; payload
// builders are not allowed to multiply by 100 themselves.
func ToCents(usd float64) int64 {
	if math.IsNaN(usd) || math.IsInf(usd, 0) || usd < 0 {
		return 0
	}
	return int64(math.Round(usd * 100))
}
