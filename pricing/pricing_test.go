package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name string
		usd  float64
		want int64
	}{
		{"zero", 0, 0},
		{"whole dollars", 450.00, 45000},
		{"cents", 49.99, 4999},
		{"half rounds away from zero", 0.005, 1},
		{"another half", 10.125, 1013},
		{"negative clamps to zero", -12.34, 0},
		{"nan clamps to zero", math.NaN(), 0},
		{"positive infinity clamps to zero", math.Inf(1), 0},
		{"negative infinity clamps to zero", math.Inf(-1), 0},
		{"float drift", 19.99, 1999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCents(tt.usd))
		})
	}
}

// Converting a value to cents, back to dollars and to cents again must be
// stable, otherwise totals would drift between the cart and the provider.
func TestToCentsStableOnReconversion(t *testing.T) {
	for _, usd := range []float64{0, 0.01, 49.99, 450, 1234.56, 99999.99} {
		cents := ToCents(usd)
		assert.Equal(t, cents, ToCents(float64(cents)/100), "usd=%v", usd)
	}
}
