// Package order
package order

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type (
	Side   string
	Kind   string
	Status string
)

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

const (
	Market    Kind = "MARKET"
	Limit     Kind = "LIMIT"
	StopLimit Kind = "STOP_LIMIT"
)

// Status mirrors the venue's order lifecycle. Transitions are never
// invented locally; the venue is authoritative.
const (
	New             Status = "NEW"
	PartiallyFilled Status = "PARTIALLY_FILLED"
	Filled          Status = "FILLED"
	Canceled        Status = "CANCELED"
	Rejected        Status = "REJECTED"
	Expired         Status = "EXPIRED"
)

// Terminal reports whether the status can no longer change on the venue.
func (s Status) Terminal() bool {
	switch s {
	case Filled, Canceled, Rejected, Expired:
		return true
	}
	return false
}

// Spec is a validated, venue-agnostic order intent. It is only
// constructed by Validate and is discarded after mapping.
//
// Invariant: Market carries no prices, Limit carries LimitPrice only,
// StopLimit carries both.
type Spec struct {
	Symbol     string
	Side       Side
	Kind       Kind
	Quantity   decimal.Decimal
	LimitPrice decimal.Decimal
	StopPrice  decimal.Decimal
}

// Order is the read model of a venue order. Fields beyond the spec
// echoes are populated only where the venue provides them.
type Order struct {
	OrderID     int64           `json:"orderId"`
	Symbol      string          `json:"symbol"`
	Side        Side            `json:"side"`
	Kind        Kind            `json:"kind"`
	Status      Status          `json:"status"`
	Quantity    decimal.Decimal `json:"quantity"`
	LimitPrice  decimal.Decimal `json:"limitPrice"`
	StopPrice   decimal.Decimal `json:"stopPrice"`
	FilledQty   decimal.Decimal `json:"filledQty"`
	AvgPrice    decimal.Decimal `json:"avgPrice"`
	RealizedPnl decimal.Decimal `json:"realizedPnl"`
	Time        time.Time       `json:"time"`
}

// SortByTimeDesc orders entries newest-first. This is the display
// ordering every front end uses for trade history; venue-side ordering
// is not assumed.
func SortByTimeDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Time.After(orders[j].Time)
	})
}
