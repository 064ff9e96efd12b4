package models

// CartLineItem is one line of an in-memory cart. Prices are major-unit USD;
// conversion to cents happens in the checkout payload builder, never here.
type CartLineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"qty"`
	SKU      string  `json:"sku,omitempty"`
	Image    string  `json:"image,omitempty"`
	URL      string  `json:"url,omitempty"`
}
