package i18n

var es = dict{
	// Carrito
	"cart.empty":   "El carrito está vacío.",
	"cart.cleared": "Carrito vaciado",

	// Checkout de financiación
	"checkout.success":        "¡Solicitud enviada con éxito!",
	"checkout.confirm_failed": "Tuvimos un problema al confirmar con nuestro servidor. Intentá nuevamente.",
	"checkout.failed":         "No se completó la financiación. Podés intentarlo de nuevo.",
	"checkout.cancelled":      "Proceso cancelado. No se realizó ningún cargo. ¿Querés intentarlo de nuevo?",
	"checkout.invalid_data":   "Datos inválidos. Revisá precio y total del producto.",
	"checkout.below_minimum":  "El total es demasiado bajo para financiación.",
	"checkout.empty_cart":     "Agregá productos al carrito.",
	"checkout.not_ready":      "La financiación no está disponible en este momento. Probá de nuevo en unos minutos.",
	"checkout.in_flight":      "Ya hay un checkout en curso para este carrito.",
	"checkout.no_attempt":     "No hay un checkout en curso para este carrito.",
	"checkout.retry_failed":   "No se pudo reintentar el pago.",

	// Pago con tarjeta
	"card.failed":      "No se pudo iniciar el pago con tarjeta.",
	"card.redirecting": "Redirigiendo al pago…",
}
