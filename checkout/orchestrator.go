package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/onewaymotor/storefront-api/models"
	"github.com/onewaymotor/storefront-api/store"
)

// State of a cart's checkout attempt.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingProvider State = "awaiting_provider"
	StateConfirming       State = "confirming"
)

// Outcome of a resolved attempt.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeFailed          Outcome = "failed"
	OutcomeCancelled       Outcome = "cancelled"
	OutcomeValidationError Outcome = "validation_error"
)

var (
	ErrCheckoutInFlight    = errors.New("checkout already in progress for this cart")
	ErrProviderUnavailable = errors.New("financing provider is not available")
	ErrNoAttempt           = errors.New("no checkout attempt for this cart")
	ErrNotRetryable        = errors.New("attempt is not retryable")
	ErrMissingToken        = errors.New("missing checkout token")
)

// Authorizer redeems a provider checkout token server-side: authorize, then
// capture when asked to.
type Authorizer interface {
	Authorize(ctx context.Context, checkoutToken, orderID string, amountCents int64, capture bool) error
}

// attempt tracks one cart's live or retryable checkout.
type attempt struct {
	orderID   string
	state     State
	payload   *models.CheckoutPayload
	retryable bool
}

// Orchestrator drives the financing checkout flow for each cart:
//
//	idle → validate (provider ready, cart non-empty, total ≥ minimum)
//	     → open (build payload, mint order id, hand payload to the modal)
//	     → awaiting provider → confirming (token redeemed server-side)
//	     → outcome → idle
//
// One attempt per cart at a time: the in-flight flag here replaces the
// disabled button of a single-page flow, since handlers run concurrently.
// The last payload of a failed or cancelled attempt is retained so the
// shopper gets one retry without rebuilding it.
type Orchestrator struct {
	builder *Builder
	loader  *Loader
	carts   *store.CartStore
	auth    Authorizer
	capture bool

	mu       sync.Mutex
	attempts map[string]*attempt
}

func NewOrchestrator(builder *Builder, loader *Loader, carts *store.CartStore, auth Authorizer, capture bool) *Orchestrator {
	return &Orchestrator{
		builder:  builder,
		loader:   loader,
		carts:    carts,
		auth:     auth,
		capture:  capture,
		attempts: make(map[string]*attempt),
	}
}

// BeginResult is handed back to the caller so its hosted modal can open.
type BeginResult struct {
	OrderID string                  `json:"order_id"`
	Payload *models.CheckoutPayload `json:"payload"`
}

// Resolution is the user-facing outcome of a provider callback.
type Resolution struct {
	Outcome    Outcome `json:"outcome"`
	MessageKey string  `json:"-"`
	Retryable  bool    `json:"retryable"`
}

// Begin validates the cart and opens a new attempt. The returned payload is
// what the provider modal is opened with; the attempt then waits for one of
// the provider callbacks.
func (o *Orchestrator) Begin(ctx context.Context, cartID string, totals models.Totals, customer *models.Customer) (*BeginResult, error) {
	o.mu.Lock()
	if a, ok := o.attempts[cartID]; ok && a.state != StateIdle {
		o.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	// Reserve the slot before the slow work so a concurrent Begin bounces.
	placeholder := &attempt{state: StateAwaitingProvider}
	o.attempts[cartID] = placeholder
	o.mu.Unlock()

	release := func() {
		o.mu.Lock()
		if o.attempts[cartID] == placeholder {
			delete(o.attempts, cartID)
		}
		o.mu.Unlock()
	}

	o.loader.Load(ctx)
	if !o.loader.Ready() {
		release()
		return nil, ErrProviderUnavailable
	}

	lines := o.carts.Items(cartID)
	payload, err := o.builder.Build(lines, totals, customer)
	if err != nil {
		release()
		return nil, err
	}

	orderID := mintOrderID()
	payload.OrderID = orderID

	o.mu.Lock()
	o.attempts[cartID] = &attempt{
		orderID: orderID,
		state:   StateAwaitingProvider,
		payload: payload,
	}
	o.mu.Unlock()

	return &BeginResult{OrderID: orderID, Payload: payload}, nil
}

// HandleSuccess is the provider's success callback: the modal completed and
// returned a single-use checkout token, which is redeemed server-side. On
// proxy failure the payload is retained and the shopper may retry.
func (o *Orchestrator) HandleSuccess(ctx context.Context, cartID, checkoutToken string) (*Resolution, error) {
	if checkoutToken == "" {
		return nil, ErrMissingToken
	}

	o.mu.Lock()
	a, ok := o.attempts[cartID]
	if !ok || a.state != StateAwaitingProvider || a.payload == nil {
		o.mu.Unlock()
		return nil, ErrNoAttempt
	}
	a.state = StateConfirming
	orderID, amount := a.orderID, a.payload.Total
	o.mu.Unlock()

	err := o.auth.Authorize(ctx, checkoutToken, orderID, amount, o.capture)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		// Back to idle but keep the payload for a user-initiated retry.
		a.state = StateIdle
		a.retryable = true
		return &Resolution{Outcome: OutcomeFailed, MessageKey: "checkout.confirm_failed", Retryable: true}, nil
	}

	o.carts.Clear(cartID)
	delete(o.attempts, cartID)
	return &Resolution{Outcome: OutcomeSuccess, MessageKey: "checkout.success"}, nil
}

// HandleFail is the provider-reported failure callback.
func (o *Orchestrator) HandleFail(cartID string) (*Resolution, error) {
	if err := o.settle(cartID, true); err != nil {
		return nil, err
	}
	return &Resolution{Outcome: OutcomeFailed, MessageKey: "checkout.failed", Retryable: true}, nil
}

// HandleClose is the user-closed-the-modal callback. No charge was made.
func (o *Orchestrator) HandleClose(cartID string) (*Resolution, error) {
	if err := o.settle(cartID, true); err != nil {
		return nil, err
	}
	return &Resolution{Outcome: OutcomeCancelled, MessageKey: "checkout.cancelled", Retryable: true}, nil
}

// HandleValidationError is the provider rejecting payload fields. The data
// must be corrected first, so no retry is offered and nothing is retained.
func (o *Orchestrator) HandleValidationError(cartID string) (*Resolution, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.attempts[cartID]; !ok {
		return nil, ErrNoAttempt
	}
	delete(o.attempts, cartID)
	return &Resolution{Outcome: OutcomeValidationError, MessageKey: "checkout.invalid_data"}, nil
}

// Retry re-opens the retained payload of a failed or cancelled attempt.
// One shot: a second retry needs a fresh Begin.
func (o *Orchestrator) Retry(cartID string) (*BeginResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	a, ok := o.attempts[cartID]
	if !ok || a.payload == nil {
		return nil, ErrNoAttempt
	}
	if a.state != StateIdle || !a.retryable {
		return nil, ErrNotRetryable
	}
	a.state = StateAwaitingProvider
	a.retryable = false
	return &BeginResult{OrderID: a.orderID, Payload: a.payload}, nil
}

// State reports the cart's current attempt state.
func (o *Orchestrator) State(cartID string) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if a, ok := o.attempts[cartID]; ok {
		return a.state
	}
	return StateIdle
}

// settle moves a live attempt back to idle, optionally retaining its payload
// for retry.
func (o *Orchestrator) settle(cartID string, retryable bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	a, ok := o.attempts[cartID]
	if !ok || a.state != StateAwaitingProvider {
		return ErrNoAttempt
	}
	a.state = StateIdle
	a.retryable = retryable
	return nil
}

// mintOrderID generates the opaque per-attempt id correlating the authorize
// and capture calls. Not a durable order record.
func mintOrderID() string {
	return "ORDER-" + time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
