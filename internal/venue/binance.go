package venue

import (
	"context"
	"errors"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
)

// binanceAPI adapts the go-binance USDⓈ-M futures client to the API
// interface. It is the only file that knows the SDK.
type binanceAPI struct {
	client *futures.Client
}

// NewBinance returns an API backed by Binance futures. With testnet set
// every call goes to the practice network instead of production.
func NewBinance(apiKey, apiSecret string, testnet bool) API {
	futures.UseTestnet = testnet
	return &binanceAPI{client: futures.NewClient(apiKey, apiSecret)}
}

func (b *binanceAPI) PlaceOrder(ctx context.Context, p OrderParams) (Order, error) {
	svc := b.client.NewCreateOrderService().
		Symbol(p.Symbol).
		Side(futures.SideType(p.Side)).
		Type(futures.OrderType(p.Type)).
		Quantity(p.Quantity)
	if p.Price != "" {
		svc = svc.Price(p.Price)
	}
	if p.StopPrice != "" {
		svc = svc.StopPrice(p.StopPrice)
	}
	if p.TimeInForce != "" {
		svc = svc.TimeInForce(futures.TimeInForceType(p.TimeInForce))
	}
	if p.WorkingType != "" {
		svc = svc.WorkingType(futures.WorkingType(p.WorkingType))
	}

	res, err := svc.Do(ctx)
	if err != nil {
		return Order{}, wrapErr(err)
	}
	return Order{
		OrderID:     res.OrderID,
		Symbol:      res.Symbol,
		Side:        string(res.Side),
		Type:        string(res.Type),
		Status:      string(res.Status),
		Price:       res.Price,
		StopPrice:   res.StopPrice,
		OrigQty:     res.OrigQuantity,
		ExecutedQty: res.ExecutedQuantity,
		AvgPrice:    res.AvgPrice,
		UpdateTime:  res.UpdateTime,
	}, nil
}

func (b *binanceAPI) CancelOrder(ctx context.Context, symbol string, orderID int64) (Order, error) {
	res, err := b.client.NewCancelOrderService().
		Symbol(symbol).
		OrderID(orderID).
		Do(ctx)
	if err != nil {
		return Order{}, wrapErr(err)
	}
	return Order{
		OrderID:     res.OrderID,
		Symbol:      res.Symbol,
		Side:        string(res.Side),
		Type:        string(res.Type),
		Status:      string(res.Status),
		Price:       res.Price,
		StopPrice:   res.StopPrice,
		OrigQty:     res.OrigQuantity,
		ExecutedQty: res.ExecutedQuantity,
		UpdateTime:  res.UpdateTime,
	}, nil
}

func (b *binanceAPI) GetOrder(ctx context.Context, symbol string, orderID int64) (Order, error) {
	res, err := b.client.NewGetOrderService().
		Symbol(symbol).
		OrderID(orderID).
		Do(ctx)
	if err != nil {
		return Order{}, wrapErr(err)
	}
	return fromFuturesOrder(res), nil
}

func (b *binanceAPI) OpenOrders(ctx context.Context, symbol string) ([]Order, error) {
	res, err := b.client.NewListOpenOrdersService().
		Symbol(symbol).
		Do(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	orders := make([]Order, 0, len(res))
	for _, o := range res {
		orders = append(orders, fromFuturesOrder(o))
	}
	return orders, nil
}

func (b *binanceAPI) AccountTrades(ctx context.Context, symbol string) ([]Trade, error) {
	res, err := b.client.NewListAccountTradeService().
		Symbol(symbol).
		Do(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	trades := make([]Trade, 0, len(res))
	for _, t := range res {
		trades = append(trades, Trade{
			TradeID:     t.ID,
			OrderID:     t.OrderID,
			Symbol:      t.Symbol,
			Side:        string(t.Side),
			Price:       t.Price,
			Quantity:    t.Quantity,
			RealizedPnl: t.RealizedPnl,
			Time:        t.Time,
		})
	}
	return trades, nil
}

func (b *binanceAPI) Klines(ctx context.Context, symbol, interval string, limit int) ([]Kline, error) {
	res, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	klines := make([]Kline, 0, len(res))
	for _, k := range res {
		klines = append(klines, Kline{
			OpenTime:  k.OpenTime,
			Open:      k.Open,
			High:      k.High,
			Low:       k.Low,
			Close:     k.Close,
			Volume:    k.Volume,
			CloseTime: k.CloseTime,
		})
	}
	return klines, nil
}

func fromFuturesOrder(o *futures.Order) Order {
	return Order{
		OrderID:     o.OrderID,
		Symbol:      o.Symbol,
		Side:        string(o.Side),
		Type:        string(o.Type),
		Status:      string(o.Status),
		Price:       o.Price,
		StopPrice:   o.StopPrice,
		OrigQty:     o.OrigQuantity,
		ExecutedQty: o.ExecutedQuantity,
		AvgPrice:    o.AvgPrice,
		UpdateTime:  o.UpdateTime,
	}
}

// wrapErr converts the SDK's api error into *Error so callers can
// classify on the venue code without importing the SDK. Anything else
// (timeouts, DNS, TLS) passes through untouched.
func wrapErr(err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return &Error{Code: apiErr.Code, Message: apiErr.Message}
	}
	return err
}
