package execution

import (
	"context"

	"github.com/asharan/futbot/internal/order"
	"github.com/asharan/futbot/internal/venue"
)

// Client is the single choke point for order traffic to the venue. One
// synchronous venue call per operation, no retries, no caching; every
// failure comes back as a *Failure.
type Client struct {
	api venue.API
}

func New(api venue.API) *Client {
	return &Client{api: api}
}

// Place submits a validated spec. Venue rejections (bad precision,
// insufficient margin, closed market) come back classified, never as a
// raw transport error.
func (c *Client) Place(ctx context.Context, spec order.Spec) (order.Order, error) {
	raw, err := c.api.PlaceOrder(ctx, venue.ToOrderParams(spec))
	if err != nil {
		return order.Order{}, classify(err)
	}
	o, err := venue.OrderFromVenue(raw)
	if err != nil {
		return order.Order{}, classify(err)
	}
	return o, nil
}

// Cancel makes exactly one cancellation attempt. Canceling an order the
// venue has already resolved (or never held) returns a Failure of kind
// AlreadyTerminal, on every attempt.
func (c *Client) Cancel(ctx context.Context, symbol string, orderID int64) error {
	if _, err := c.api.CancelOrder(ctx, symbol, orderID); err != nil {
		return classifyCancel(err)
	}
	return nil
}

// Status queries one order by venue id.
func (c *Client) Status(ctx context.Context, symbol string, orderID int64) (order.Order, error) {
	raw, err := c.api.GetOrder(ctx, symbol, orderID)
	if err != nil {
		return order.Order{}, classify(err)
	}
	o, err := venue.OrderFromVenue(raw)
	if err != nil {
		return order.Order{}, classify(err)
	}
	return o, nil
}

// ListOpen performs one fresh venue read of the symbol's open orders.
// An order placed just before the call may legitimately be missing from
// the result; callers must tolerate that race.
func (c *Client) ListOpen(ctx context.Context, symbol string) ([]order.Order, error) {
	raw, err := c.api.OpenOrders(ctx, symbol)
	if err != nil {
		return nil, classify(err)
	}
	open := make([]order.Order, 0, len(raw))
	for _, v := range raw {
		o, err := venue.OrderFromVenue(v)
		if err != nil {
			return nil, classify(err)
		}
		open = append(open, o)
	}
	return open, nil
}

// TradeHistory returns the symbol's filled legs in venue order. Display
// ordering (newest first) is the caller's concern; see order.SortByTimeDesc.
func (c *Client) TradeHistory(ctx context.Context, symbol string) ([]order.Order, error) {
	raw, err := c.api.AccountTrades(ctx, symbol)
	if err != nil {
		return nil, classify(err)
	}
	trades := make([]order.Order, 0, len(raw))
	for _, t := range raw {
		trades = append(trades, venue.TradeFromVenue(t))
	}
	return trades, nil
}
