package venue

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asharan/futbot/internal/order"
)

func spec(t *testing.T, side, kind, qty, limit, stop string) order.Spec {
	t.Helper()
	s, err := order.Validate("BTCUSDT", side, kind, qty, limit, stop, order.DefaultStep)
	require.NoError(t, err)
	return s
}

func TestToOrderParamsMarket(t *testing.T) {
	p := ToOrderParams(spec(t, "BUY", "Market", "0.01", "", ""))

	assert.Equal(t, OrderParams{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Type:     "MARKET",
		Quantity: "0.01",
	}, p)
}

func TestToOrderParamsLimit(t *testing.T) {
	p := ToOrderParams(spec(t, "SELL", "Limit", "0.01", "58000", ""))

	assert.Equal(t, "LIMIT", p.Type)
	assert.Equal(t, "58000", p.Price)
	assert.Equal(t, "GTC", p.TimeInForce)
	assert.Empty(t, p.StopPrice)
	assert.Empty(t, p.WorkingType)
}

func TestToOrderParamsStopLimit(t *testing.T) {
	p := ToOrderParams(spec(t, "BUY", "Stop-Limit", "0.01", "56900", "57000"))

	assert.Equal(t, "STOP", p.Type)
	assert.Equal(t, "56900", p.Price)
	assert.Equal(t, "57000", p.StopPrice)
	assert.Equal(t, "GTC", p.TimeInForce)
	assert.Equal(t, "CONTRACT_PRICE", p.WorkingType)
}

// Quantities and prices must survive as exact decimal strings, never
// as float-formatted approximations.
func TestToOrderParamsExactDecimals(t *testing.T) {
	s, err := order.Validate("BTCUSDT", "BUY", "Limit", "0.107", "58000.1", "", decimal.RequireFromString("0.001"))
	require.NoError(t, err)

	p := ToOrderParams(s)
	assert.Equal(t, "0.107", p.Quantity)
	assert.Equal(t, "58000.1", p.Price)
}

// Placing and reading back an order must reproduce the spec's symbol,
// side, kind and quantity exactly; the venue echoes the request fields
// and adds its own.
func TestRoundTrip(t *testing.T) {
	s := spec(t, "BUY", "Stop-Limit", "0.01", "56900", "57000")
	p := ToOrderParams(s)

	echoed := Order{
		OrderID:     5227059624,
		Symbol:      p.Symbol,
		Side:        p.Side,
		Type:        p.Type,
		Status:      "NEW",
		Price:       p.Price,
		StopPrice:   p.StopPrice,
		OrigQty:     p.Quantity,
		ExecutedQty: "0",
		UpdateTime:  1717243800000,
	}

	o, err := OrderFromVenue(echoed)
	require.NoError(t, err)
	assert.Equal(t, s.Symbol, o.Symbol)
	assert.Equal(t, s.Side, o.Side)
	assert.Equal(t, s.Kind, o.Kind)
	assert.True(t, s.Quantity.Equal(o.Quantity))
	assert.True(t, s.LimitPrice.Equal(o.LimitPrice))
	assert.True(t, s.StopPrice.Equal(o.StopPrice))
	assert.Equal(t, order.New, o.Status)
}

func TestOrderFromVenueStatuses(t *testing.T) {
	cases := map[string]order.Status{
		"NEW":              order.New,
		"PARTIALLY_FILLED": order.PartiallyFilled,
		"FILLED":           order.Filled,
		"CANCELED":         order.Canceled,
		"REJECTED":         order.Rejected,
		"EXPIRED":          order.Expired,
	}
	for raw, want := range cases {
		o, err := OrderFromVenue(Order{OrderID: 1, Symbol: "BTCUSDT", Side: "BUY", Type: "LIMIT", Status: raw})
		require.NoError(t, err, raw)
		assert.Equal(t, want, o.Status)
	}
}

// An unrecognized status is contract drift and must surface as its own
// error, never be coerced to a known state.
func TestOrderFromVenueUnknownStatus(t *testing.T) {
	_, err := OrderFromVenue(Order{OrderID: 1, Symbol: "BTCUSDT", Status: "PENDING_REVIEW"})
	require.Error(t, err)

	var us *UnknownStatusError
	require.True(t, errors.As(err, &us))
	assert.Equal(t, "PENDING_REVIEW", us.Raw)
}

func TestOrderFromVenueAbsentNumerics(t *testing.T) {
	o, err := OrderFromVenue(Order{
		OrderID: 7, Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET",
		Status: "FILLED", OrigQty: "0.01", ExecutedQty: "0.01",
		AvgPrice: "60100.5", Price: "0",
	})
	require.NoError(t, err)
	assert.True(t, o.LimitPrice.IsZero())
	assert.True(t, o.AvgPrice.Equal(decimal.RequireFromString("60100.5")))
}

func TestTradeFromVenue(t *testing.T) {
	o := TradeFromVenue(Trade{
		TradeID:     42,
		OrderID:     5227059624,
		Symbol:      "BTCUSDT",
		Side:        "SELL",
		Price:       "58321.4",
		Quantity:    "0.01",
		RealizedPnl: "1.25",
		Time:        1717243800000,
	})

	assert.Equal(t, int64(5227059624), o.OrderID)
	assert.Equal(t, order.Sell, o.Side)
	assert.Equal(t, order.Filled, o.Status)
	assert.True(t, o.FilledQty.Equal(decimal.RequireFromString("0.01")))
	assert.True(t, o.AvgPrice.Equal(decimal.RequireFromString("58321.4")))
	assert.True(t, o.RealizedPnl.Equal(decimal.RequireFromString("1.25")))
	assert.Equal(t, int64(1717243800), o.Time.Unix())
}
