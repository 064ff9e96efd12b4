package checkout

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/onewaymotor/storefront-api/models"
	"github.com/onewaymotor/storefront-api/pricing"
)

// MinTotalCents is the smallest financed transaction the provider accepts.
const MinTotalCents int64 = 5000 // $50

const (
	maxItemNameLen = 120
	maxSKULen      = 64
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrBelowMinimum = fmt.Errorf("total below financing minimum of %d cents", MinTotalCents)
)

var skuSpaceRe = regexp.MustCompile(`\s+`)

// BuilderConfig controls payload construction.
//
// TrustClientTotal decides the unresolved override-vs-computed question: when
// true, a finite positive client-declared total wins over the recomputed sum;
// when false (the default) the total is always recomputed from line items
// plus shipping and tax. The default recomputes because this service is the
// trust boundary between the browser and the provider.
type BuilderConfig struct {
	MerchantName     string
	OriginBase       string // absolute site origin, e.g. "https://www.onewaymotor.com"
	MinTotalCents    int64
	TrustClientTotal bool
}

type Builder struct {
	cfg BuilderConfig
}

func NewBuilder(cfg BuilderConfig) *Builder {
	if cfg.MinTotalCents == 0 {
		cfg.MinTotalCents = MinTotalCents
	}
	if cfg.OriginBase == "" {
		cfg.OriginBase = "https://onewaymotor.com"
	}
	return &Builder{cfg: cfg}
}

// Build maps cart lines plus totals into the provider checkout payload.
// The customer block is included only when it passes full validation; the
// order id is minted later by the orchestrator.
func (b *Builder) Build(lines []models.CartLineItem, totals models.Totals, customer *models.Customer) (*models.CheckoutPayload, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]models.AffirmItem, 0, len(lines))
	var subtotal int64
	for i, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}
		if len(name) > maxItemNameLen {
			name = name[:maxItemNameLen]
		}

		sku := strings.TrimSpace(line.SKU)
		if sku == "" {
			sku = line.ID
		}
		if sku == "" {
			sku = fmt.Sprintf("SKU-%d", i+1)
		}
		sku = skuSpaceRe.ReplaceAllString(sku, "-")
		if len(sku) > maxSKULen {
			sku = sku[:maxSKULen]
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		unitPrice := pricing.ToCents(line.Price)
		subtotal += unitPrice * int64(qty)

		items = append(items, models.AffirmItem{
			DisplayName: name,
			SKU:         sku,
			UnitPrice:   unitPrice,
			Qty:         qty,
			ItemURL:     b.absURL(line.URL, "/"),
			ImageURL:    b.absURL(line.Image, ""),
		})
	}

	shippingCents := pricing.ToCents(totals.ShippingUSD)
	taxCents := pricing.ToCents(totals.TaxUSD)

	total := subtotal + shippingCents + taxCents
	if b.cfg.TrustClientTotal && totals.TotalUSD != nil {
		if declared := *totals.TotalUSD; !math.IsNaN(declared) && !math.IsInf(declared, 0) && declared > 0 {
			total = pricing.ToCents(declared)
		}
	}

	if total < b.cfg.MinTotalCents {
		return nil, ErrBelowMinimum
	}

	payload := &models.CheckoutPayload{
		Merchant: models.AffirmMerchant{
			UserConfirmationURL:       b.cfg.OriginBase + "/affirm/confirm.html",
			UserCancelURL:             b.cfg.OriginBase + "/affirm/cancel.html",
			UserConfirmationURLAction: "GET",
			Name:                      b.cfg.MerchantName,
		},
		Items:          items,
		Currency:       "USD",
		ShippingAmount: shippingCents,
		TaxAmount:      taxCents,
		Total:          total,
		Metadata:       map[string]string{"mode": "modal"},
	}

	if CustomerComplete(customer) {
		contact := models.AffirmContact{
			Name: models.AffirmName{First: customer.FirstName, Last: customer.LastName},
			Address: models.AffirmAddress{
				Line1:   customer.Address.Line1,
				City:    customer.Address.City,
				State:   customer.Address.State,
				Zipcode: customer.Address.Zip,
				Country: customer.Address.Country,
			},
		}
		billing := contact

		shipping := contact
		shipping.Email = strings.TrimSpace(customer.Email)
		shipping.PhoneNumber = NormalizePhone(customer.Phone)

		payload.Shipping = &shipping
		payload.Billing = &billing
	}

	return payload, nil
}

// absURL resolves ref against the configured origin when it is relative.
// Empty refs fall back to the given default path ("" keeps the field empty).
func (b *Builder) absURL(ref, fallback string) string {
	if ref == "" {
		ref = fallback
	}
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return ref
	}
	base, err := url.Parse(b.cfg.OriginBase)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
