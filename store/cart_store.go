package store

import (
	"sync"

	"github.com/onewaymotor/storefront-api/models"
)

// CartStore keeps every shopper's cart in memory, keyed by cart id. Carts are
// ephemeral: a process restart loses them (the catalog is the only durable
// state in this service). Handlers run concurrently, so all access goes
// through the mutex.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*cart
}

type cart struct {
	lines []models.CartLineItem
	open  bool
}

// CartView is the snapshot returned to HTTP clients.
type CartView struct {
	Items    []models.CartLineItem `json:"items"`
	TotalUSD float64               `json:"total_usd"`
	Open     bool                  `json:"open"`
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*cart)}
}

func (s *CartStore) get(cartID string) *cart {
	c, ok := s.carts[cartID]
	if !ok {
		c = &cart{}
		s.carts[cartID] = c
	}
	return c
}

// AddItem appends the line, or increments quantity when a line with the same
// id already exists. Adding always flags the cart as open — the drawer pops
// for the shopper.
func (s *CartStore) AddItem(cartID string, item models.CartLineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(cartID)
	c.open = true
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity += item.Quantity
			return
		}
	}
	c.lines = append(c.lines, item)
}

// RemoveItem deletes the line matching id. No-op if absent.
func (s *CartStore) RemoveItem(cartID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(cartID)
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of the line matching id, preserving the
// rest of the line. A quantity of zero or less removes the line.
func (s *CartStore) SetQuantity(cartID, id string, qty int) {
	if qty <= 0 {
		s.RemoveItem(cartID, id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(cartID)
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart entirely.
func (s *CartStore) Clear(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(cartID)
	c.lines = nil
}

// Close clears the open affordance flag.
func (s *CartStore) Close(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(cartID).open = false
}

// Items returns a copy of the cart's lines in insertion order.
func (s *CartStore) Items(cartID string) []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(cartID)
	out := make([]models.CartLineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total returns the cart sum in USD. This is the only place the client-side
// total is computed; consumers convert to cents via the pricing package
// before talking to a payment provider.
func (s *CartStore) Total(cartID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, line := range s.get(cartID).lines {
		sum += line.Price * float64(line.Quantity)
	}
	return sum
}

// View returns the cart snapshot handed to HTTP clients.
func (s *CartStore) View(cartID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(cartID)
	items := make([]models.CartLineItem, len(c.lines))
	copy(items, c.lines)

	var sum float64
	for _, line := range c.lines {
		sum += line.Price * float64(line.Quantity)
	}
	return CartView{Items: items, TotalUSD: sum, Open: c.open}
}
