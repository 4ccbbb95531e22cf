package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultStep is the venue's quantity step for the default instrument.
var DefaultStep = decimal.RequireFromString("0.001")

// ValidationError reports malformed front-end input. It is resolved
// locally and never reaches the venue.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Validate turns raw front-end input into a Spec. Price arguments are
// decimal strings; an empty string means absent. step is the venue's
// quantity step; quantities off the step grid are rejected, never
// rounded. Stop/limit price ordering relative to side is deliberately
// not checked here: that judgement belongs to the venue.
func Validate(symbol, side, kindLabel, quantity, limitPrice, stopPrice string, step decimal.Decimal) (Spec, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Spec{}, invalid("symbol", "must not be empty")
	}

	var s Side
	switch strings.ToUpper(strings.TrimSpace(side)) {
	case string(Buy):
		s = Buy
	case string(Sell):
		s = Sell
	default:
		return Spec{}, invalid("side", fmt.Sprintf("unknown side %q, want BUY or SELL", side))
	}

	var kind Kind
	switch strings.ToLower(strings.TrimSpace(kindLabel)) {
	case "market":
		kind = Market
	case "limit":
		kind = Limit
	case "stop-limit":
		kind = StopLimit
	default:
		return Spec{}, invalid("type", fmt.Sprintf("unknown order type %q, want Market, Limit or Stop-Limit", kindLabel))
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(quantity))
	if err != nil {
		return Spec{}, invalid("quantity", fmt.Sprintf("not a decimal number: %q", quantity))
	}
	if !qty.IsPositive() {
		return Spec{}, invalid("quantity", "must be positive")
	}
	if step.IsPositive() && !qty.Mod(step).IsZero() {
		return Spec{}, invalid("quantity", fmt.Sprintf("%s is not a multiple of the venue step %s", qty, step))
	}

	spec := Spec{Symbol: symbol, Side: s, Kind: kind, Quantity: qty}

	switch kind {
	case Market:
		if limitPrice != "" {
			return Spec{}, invalid("limitPrice", "not allowed on a market order")
		}
		if stopPrice != "" {
			return Spec{}, invalid("stopPrice", "not allowed on a market order")
		}
	case Limit:
		if stopPrice != "" {
			return Spec{}, invalid("stopPrice", "not allowed on a limit order")
		}
		spec.LimitPrice, err = parsePrice("limitPrice", limitPrice)
		if err != nil {
			return Spec{}, err
		}
	case StopLimit:
		spec.StopPrice, err = parsePrice("stopPrice", stopPrice)
		if err != nil {
			return Spec{}, err
		}
		spec.LimitPrice, err = parsePrice("limitPrice", limitPrice)
		if err != nil {
			return Spec{}, err
		}
	}

	return spec, nil
}

func parsePrice(field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Decimal{}, invalid(field, "required for this order type")
	}
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, invalid(field, fmt.Sprintf("not a decimal number: %q", raw))
	}
	if !p.IsPositive() {
		return decimal.Decimal{}, invalid(field, "must be positive")
	}
	return p, nil
}
