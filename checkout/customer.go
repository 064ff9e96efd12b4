package checkout

import (
	"regexp"
	"strings"

	"github.com/onewaymotor/storefront-api/models"
)

var (
	stateRe = regexp.MustCompile(`^[A-Z]{2}$`)
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	digitRe = regexp.MustCompile(`\D`)
)

// recognized spellings of the one country the provider finances in.
var usCountry = map[string]bool{
	"US":            true,
	"USA":           true,
	"UNITED STATES": true,
}

// CustomerComplete reports whether the buyer block is complete enough to
// forward to the provider. A partially-filled address makes the provider's
// hosted modal reject the whole session, so anything short of fully valid
// must be omitted entirely and left for the modal to collect.
func CustomerComplete(c *models.Customer) bool {
	if c == nil {
		return false
	}
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return false
	}
	a := c.Address
	if strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == "" {
		return false
	}
	if !stateRe.MatchString(a.State) {
		return false
	}
	if !zipRe.MatchString(a.Zip) {
		return false
	}
	return usCountry[strings.ToUpper(strings.TrimSpace(a.Country))]
}

// NormalizePhone converts raw phone input to E.164 US form: "+1" followed by
// ten digits with an area code starting 2-9. Invalid input returns "" so the
// field is dropped rather than sent malformed.
func NormalizePhone(raw string) string {
	digits := digitRe.ReplaceAllString(raw, "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return ""
	}
	if digits[0] < '2' || digits[0] > '9' {
		return ""
	}
	return "+1" + digits
}
