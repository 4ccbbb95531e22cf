package execution

import (
	"context"
	"sort"
	"sync"

	"github.com/asharan/futbot/internal/order"
)

// Entry is one cached open order plus its local cancel-pending mark.
type Entry struct {
	Order         order.Order
	CancelPending bool
}

// Registry is an in-process view of a symbol's open orders, refreshed
// on demand from the venue. Entries are replaced wholesale on refresh,
// never patched field-by-field, so the cache can never represent a
// state the venue did not hold.
type Registry struct {
	client *Client
	symbol string

	mu      sync.Mutex
	entries map[int64]Entry
}

func NewRegistry(client *Client, symbol string) *Registry {
	return &Registry{
		client:  client,
		symbol:  symbol,
		entries: make(map[int64]Entry),
	}
}

func (r *Registry) Symbol() string { return r.symbol }

// Refresh replaces the cached view with one fresh ListOpen read. All
// cancel-pending marks are dropped; the venue answer is authoritative.
func (r *Registry) Refresh(ctx context.Context) error {
	open, err := r.client.ListOpen(ctx, r.symbol)
	if err != nil {
		return err
	}
	entries := make(map[int64]Entry, len(open))
	for _, o := range open {
		entries[o.OrderID] = Entry{Order: o}
	}
	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	return nil
}

// MarkCancelPending sets a purely local, advisory annotation used to
// disable a duplicate cancel control between click and venue
// acknowledgment. It is never authoritative order state and is cleared
// on the next Refresh.
func (r *Registry) MarkCancelPending(orderID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[orderID]; ok {
		e.CancelPending = true
		r.entries[orderID] = e
	}
}

// Get returns the cached entry for an order id, if present.
func (r *Registry) Get(orderID int64) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[orderID]
	return e, ok
}

// Snapshot returns the cached entries ordered by venue id.
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Order.OrderID < out[j].Order.OrderID
	})
	return out
}
