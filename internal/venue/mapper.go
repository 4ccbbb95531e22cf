package venue

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/asharan/futbot/internal/order"
)

const (
	typeMarket = "MARKET"
	typeLimit  = "LIMIT"
	typeStop   = "STOP"

	timeInForceGTC       = "GTC"
	workingContractPrice = "CONTRACT_PRICE"
)

// ToOrderParams maps a validated spec onto the venue's placement
// contract. Limit and stop-limit orders rest GTC; stop triggers are
// evaluated against the contract (last trade) price, matching the
// venue default the operator sees in its own UI.
func ToOrderParams(s order.Spec) OrderParams {
	p := OrderParams{
		Symbol:   s.Symbol,
		Side:     string(s.Side),
		Quantity: s.Quantity.String(),
	}
	switch s.Kind {
	case order.Market:
		p.Type = typeMarket
	case order.Limit:
		p.Type = typeLimit
		p.Price = s.LimitPrice.String()
		p.TimeInForce = timeInForceGTC
	case order.StopLimit:
		p.Type = typeStop
		p.Price = s.LimitPrice.String()
		p.StopPrice = s.StopPrice.String()
		p.TimeInForce = timeInForceGTC
		p.WorkingType = workingContractPrice
	}
	return p
}

// UnknownStatusError reports a venue status string outside the known
// lifecycle. It is surfaced rather than coerced so callers can detect
// venue contract drift.
type UnknownStatusError struct {
	Raw string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unrecognized venue order status %q", e.Raw)
}

func statusFromVenue(raw string) (order.Status, error) {
	switch raw {
	case "NEW":
		return order.New, nil
	case "PARTIALLY_FILLED":
		return order.PartiallyFilled, nil
	case "FILLED":
		return order.Filled, nil
	case "CANCELED":
		return order.Canceled, nil
	case "REJECTED":
		return order.Rejected, nil
	case "EXPIRED":
		return order.Expired, nil
	default:
		return "", &UnknownStatusError{Raw: raw}
	}
}

func kindFromVenue(raw string) order.Kind {
	switch raw {
	case typeMarket:
		return order.Market
	case typeLimit:
		return order.Limit
	case typeStop:
		return order.StopLimit
	default:
		// Order types are echoed opaquely; only status drift is policed.
		return order.Kind(raw)
	}
}

// OrderFromVenue converts a raw venue order into the domain read model.
func OrderFromVenue(v Order) (order.Order, error) {
	st, err := statusFromVenue(v.Status)
	if err != nil {
		return order.Order{}, err
	}
	return order.Order{
		OrderID:    v.OrderID,
		Symbol:     v.Symbol,
		Side:       order.Side(v.Side),
		Kind:       kindFromVenue(v.Type),
		Status:     st,
		Quantity:   dec(v.OrigQty),
		LimitPrice: dec(v.Price),
		StopPrice:  dec(v.StopPrice),
		FilledQty:  dec(v.ExecutedQty),
		AvgPrice:   dec(v.AvgPrice),
		Time:       time.UnixMilli(v.UpdateTime).UTC(),
	}, nil
}

// TradeFromVenue converts one filled leg into the domain read model.
// Trade listings only ever contain fills, so the status is fixed.
func TradeFromVenue(t Trade) order.Order {
	return order.Order{
		OrderID:     t.OrderID,
		Symbol:      t.Symbol,
		Side:        order.Side(t.Side),
		Status:      order.Filled,
		Quantity:    dec(t.Quantity),
		FilledQty:   dec(t.Quantity),
		AvgPrice:    dec(t.Price),
		RealizedPnl: dec(t.RealizedPnl),
		Time:        time.UnixMilli(t.Time).UTC(),
	}
}

// dec parses a venue decimal string; absent or malformed values map to
// zero, which the read model treats as "not provided".
func dec(s string) decimal.Decimal {
	if s == "" {
		return decimal.Decimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}
	}
	return d
}
