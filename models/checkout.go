package models

// Wire types for the financing provider's client checkout payload. Field
// names follow the provider's API, so json tags are authoritative here.

type AffirmItem struct {
	DisplayName string `json:"display_name"`
	SKU         string `json:"sku"`
	UnitPrice   int64  `json:"unit_price"` // cents
	Qty         int    `json:"qty"`
	ItemURL     string `json:"item_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type AffirmName struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type AffirmAddress struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
}

type AffirmContact struct {
	Name        AffirmName    `json:"name"`
	Address     AffirmAddress `json:"address"`
	Email       string        `json:"email,omitempty"`
	PhoneNumber string        `json:"phone_number,omitempty"`
}

type AffirmMerchant struct {
	UserConfirmationURL       string `json:"user_confirmation_url"`
	UserCancelURL             string `json:"user_cancel_url"`
	UserConfirmationURLAction string `json:"user_confirmation_url_action,omitempty"`
	Name                      string `json:"name,omitempty"`
}

// CheckoutPayload is what the provider's hosted modal is opened with. Built
// fresh per checkout attempt, never persisted.
type CheckoutPayload struct {
	Merchant       AffirmMerchant    `json:"merchant"`
	Shipping       *AffirmContact    `json:"shipping,omitempty"`
	Billing        *AffirmContact    `json:"billing,omitempty"`
	Items          []AffirmItem      `json:"items"`
	Currency       string            `json:"currency"`
	ShippingAmount int64             `json:"shipping_amount"`
	TaxAmount      int64             `json:"tax_amount"`
	Total          int64             `json:"total"`
	OrderID        string            `json:"order_id,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// Totals carries the checkout-time amounts in USD. TotalUSD, when set, is a
// client-declared override whose treatment depends on builder configuration.
type Totals struct {
	ShippingUSD float64  `json:"shipping_usd"`
	TaxUSD      float64  `json:"tax_usd"`
	TotalUSD    *float64 `json:"total_usd,omitempty"`
}

// Customer is the buyer block supplied at checkout. It is only forwarded to
// the provider when it passes full validation; otherwise the provider's own
// modal collects the data.
type Customer struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   CustomerAddress `json:"address"`
}

type CustomerAddress struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}
