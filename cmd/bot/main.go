package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/asharan/futbot/internal/config"
	"github.com/asharan/futbot/internal/execution"
	"github.com/asharan/futbot/internal/order"
	"github.com/asharan/futbot/internal/utils"
	"github.com/asharan/futbot/internal/venue"
)

const usage = `Usage: bot <command> [args]

Commands:
  market-order     SYMBOL SIDE QUANTITY
  limit-order      SYMBOL SIDE QUANTITY PRICE
  stop-limit-order SYMBOL SIDE QUANTITY STOP_PRICE LIMIT_PRICE
  cancel-order     SYMBOL ORDER_ID
  order-status     SYMBOL ORDER_ID
  open-orders      [SYMBOL]
  trade-history    [SYMBOL]

Examples:
  bot market-order BTCUSDT BUY 0.01
  bot limit-order BTCUSDT SELL 0.01 58000
  bot stop-limit-order BTCUSDT BUY 0.01 57000 56900
  bot cancel-order BTCUSDT 5227059624

Credentials come from API_KEY and API_SECRET (environment or .env).
Set TESTNET=false to trade on production instead of the practice network.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}

	api := venue.NewBinance(cfg.APIKey, cfg.APISecret, cfg.Testnet)
	client := execution.New(api)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "market-order":
		err = placeOrder(ctx, client, cfg, os.Args[2:], "Market", 3)
	case "limit-order":
		err = placeOrder(ctx, client, cfg, os.Args[2:], "Limit", 4)
	case "stop-limit-order":
		err = placeOrder(ctx, client, cfg, os.Args[2:], "Stop-Limit", 5)
	case "cancel-order":
		err = cancelOrder(ctx, client, os.Args[2:])
	case "order-status":
		err = orderStatus(ctx, client, os.Args[2:])
	case "open-orders":
		err = openOrders(ctx, client, cfg, os.Args[2:])
	case "trade-history":
		err = tradeHistory(ctx, client, cfg, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

// placeOrder handles all three placement commands; arity tells it how
// many positional arguments the order type takes.
func placeOrder(ctx context.Context, client *execution.Client, cfg config.Config, args []string, kind string, arity int) error {
	if len(args) != arity {
		return fmt.Errorf("expected %d arguments, got %d (see 'bot help')", arity, len(args))
	}

	symbol, side, qty := args[0], args[1], args[2]
	var limitPrice, stopPrice string
	switch kind {
	case "Limit":
		limitPrice = args[3]
	case "Stop-Limit":
		stopPrice, limitPrice = args[3], args[4]
	}

	spec, err := order.Validate(symbol, side, kind, qty, limitPrice, stopPrice, cfg.Step())
	if err != nil {
		return err
	}

	placed, err := client.Place(ctx, spec)
	if err != nil {
		utils.GetLogger().Printf("CLI | %s order failed: %v", kind, err)
		return err
	}

	utils.GetLogger().Printf("CLI | %s order placed: %d %s %s %s", kind, placed.OrderID, placed.Symbol, placed.Side, placed.Quantity)
	fmt.Printf("Order placed: id=%d %s %s %s qty=%s status=%s\n",
		placed.OrderID, placed.Symbol, placed.Side, placed.Kind, placed.Quantity, placed.Status)
	if !placed.LimitPrice.IsZero() {
		fmt.Printf("  limit price: %s\n", placed.LimitPrice)
	}
	if !placed.StopPrice.IsZero() {
		fmt.Printf("  stop price:  %s\n", placed.StopPrice)
	}
	return nil
}

func cancelOrder(ctx context.Context, client *execution.Client, args []string) error {
	symbol, id, err := symbolAndID(args)
	if err != nil {
		return err
	}
	if err := client.Cancel(ctx, symbol, id); err != nil {
		utils.GetLogger().Printf("CLI | Cancel %d failed: %v", id, err)
		return err
	}
	utils.GetLogger().Printf("CLI | Order canceled: %d", id)
	fmt.Printf("Order %d canceled\n", id)
	return nil
}

func orderStatus(ctx context.Context, client *execution.Client, args []string) error {
	symbol, id, err := symbolAndID(args)
	if err != nil {
		return err
	}
	o, err := client.Status(ctx, symbol, id)
	if err != nil {
		return err
	}
	fmt.Printf("Order %d: %s %s %s qty=%s filled=%s status=%s\n",
		o.OrderID, o.Symbol, o.Side, o.Kind, o.Quantity, o.FilledQty, o.Status)
	return nil
}

func openOrders(ctx context.Context, client *execution.Client, cfg config.Config, args []string) error {
	symbol := cfg.Symbol
	if len(args) > 0 {
		symbol = args[0]
	}
	open, err := client.ListOpen(ctx, symbol)
	if err != nil {
		return err
	}
	if len(open) == 0 {
		fmt.Println("No open orders.")
		return nil
	}
	for _, o := range open {
		fmt.Printf("%d  %-4s %-10s qty=%-10s price=%-10s stop=%-10s %s\n",
			o.OrderID, o.Side, o.Kind, o.Quantity, o.LimitPrice, o.StopPrice, o.Status)
	}
	return nil
}

func tradeHistory(ctx context.Context, client *execution.Client, cfg config.Config, args []string) error {
	symbol := cfg.Symbol
	if len(args) > 0 {
		symbol = args[0]
	}
	trades, err := client.TradeHistory(ctx, symbol)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		fmt.Println("No trade history yet.")
		return nil
	}
	// Newest first for display.
	order.SortByTimeDesc(trades)
	for _, t := range trades {
		fmt.Printf("%s  order=%d %-4s qty=%-10s price=%-10s pnl=%s\n",
			t.Time.Format(time.RFC3339), t.OrderID, t.Side, t.FilledQty, t.AvgPrice, t.RealizedPnl)
	}
	return nil
}

func symbolAndID(args []string) (string, int64, error) {
	if len(args) != 2 {
		return "", 0, errors.New("expected SYMBOL and ORDER_ID (see 'bot help')")
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("order id must be an integer, got %q", args[1])
	}
	return args[0], id, nil
}

// reportFailure renders the failure category, not a raw error dump, so
// the CLI shows the same categories as the dashboards.
func reportFailure(err error) {
	var ve *order.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintln(os.Stderr, "Rejected before submission:", ve.Error())
		return
	}
	if f, ok := execution.AsFailure(err); ok {
		switch f.Kind {
		case execution.NetworkFailure:
			fmt.Fprintln(os.Stderr, "Network problem (safe to retry):", f.Message)
		case execution.AuthFailure:
			fmt.Fprintln(os.Stderr, "Credentials rejected by the venue:", f.Message)
		case execution.VenueRejection:
			fmt.Fprintf(os.Stderr, "Venue rejected the request (code %d): %s\n", f.Code, f.Message)
		case execution.AlreadyTerminal:
			fmt.Fprintln(os.Stderr, "Order is already resolved on the venue (or never existed).")
		case execution.UnknownStatus:
			fmt.Fprintln(os.Stderr, "Venue response not understood:", f.Message)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}
