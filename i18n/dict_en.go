package i18n

var en = dict{
	// Cart
	"cart.empty":   "Your cart is empty.",
	"cart.cleared": "Cart cleared",

	// Financing checkout
	"checkout.success":        "Your request was sent successfully!",
	"checkout.confirm_failed": "We had a problem confirming with our server. Please try again.",
	"checkout.failed":         "Financing was not completed. You can try again.",
	"checkout.cancelled":      "Process cancelled. No charge was made. Want to try again?",
	"checkout.invalid_data":   "Invalid data. Check the product price and total.",
	"checkout.below_minimum":  "The total is too low for financing.",
	"checkout.empty_cart":     "Add products to your cart.",
	"checkout.not_ready":      "Financing is not available right now. Please try again shortly.",
	"checkout.in_flight":      "A checkout is already in progress for this cart.",
	"checkout.no_attempt":     "There is no checkout in progress for this cart.",
	"checkout.retry_failed":   "Could not retry the payment.",

	// Card checkout
	"card.failed":      "Could not start the card payment.",
	"card.redirecting": "Redirecting to payment…",
}
