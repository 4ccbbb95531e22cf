// Package venue
package venue

import (
	"context"
	"fmt"
)

// OrderParams is the venue's order-placement wire contract. All numeric
// fields are exact decimal strings so nothing drifts off the venue's
// tick/step grid.
type OrderParams struct {
	Symbol      string
	Side        string
	Type        string
	Quantity    string
	Price       string
	StopPrice   string
	TimeInForce string
	WorkingType string
}

// Order mirrors the venue's order response shape.
type Order struct {
	OrderID     int64
	Symbol      string
	Side        string
	Type        string
	Status      string
	Price       string
	StopPrice   string
	OrigQty     string
	ExecutedQty string
	AvgPrice    string
	UpdateTime  int64 // milliseconds
}

// Trade mirrors one filled leg from the venue's account-trade listing.
type Trade struct {
	TradeID     int64
	OrderID     int64
	Symbol      string
	Side        string
	Price       string
	Quantity    string
	RealizedPnl string
	Time        int64 // milliseconds
}

// Kline mirrors one venue candlestick.
type Kline struct {
	OpenTime  int64
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
	CloseTime int64
}

// Error is a rejection the venue understood and declined, carrying the
// venue's numeric error code. Transport-level failures are never an
// *Error.
type Error struct {
	Code    int64
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("venue error %d: %s", e.Code, e.Message)
}

// API is the authenticated venue collaborator. Transport, signing and
// rate limiting live behind this boundary.
type API interface {
	PlaceOrder(ctx context.Context, p OrderParams) (Order, error)
	CancelOrder(ctx context.Context, symbol string, orderID int64) (Order, error)
	GetOrder(ctx context.Context, symbol string, orderID int64) (Order, error)
	OpenOrders(ctx context.Context, symbol string) ([]Order, error)
	AccountTrades(ctx context.Context, symbol string) ([]Trade, error)
	Klines(ctx context.Context, symbol, interval string, limit int) ([]Kline, error)
}
