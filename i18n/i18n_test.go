package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, LangES, Parse("es"))
	assert.Equal(t, LangES, Parse("es-AR"))
	assert.Equal(t, LangES, Parse("ES_MX"))
	assert.Equal(t, LangEN, Parse("en"))
	assert.Equal(t, LangEN, Parse(""))
	assert.Equal(t, LangEN, Parse("fr"))
}

func TestLookup(t *testing.T) {
	assert.Equal(t, "Your cart is empty.", T(LangEN, "cart.empty"))
	assert.Equal(t, "El carrito está vacío.", T(LangES, "cart.empty"))
}

// A missing key must come back as the key itself, never an error.
func TestLookupFallsBackToKey(t *testing.T) {
	assert.Equal(t, "no.such.key", T(LangEN, "no.such.key"))
	assert.Equal(t, "no.such.key", T(LangES, "no.such.key"))
	assert.Equal(t, "cart.empty", T(Lang("de"), "cart.empty"))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$450", FormatUSD(450))
	assert.Equal(t, "$1,250", FormatUSD(1249.50))
	assert.Equal(t, "$12,500", FormatUSD(12500))
	assert.Equal(t, "$0", FormatUSD(0.2))
}
