// Package stream
//
// The ticker stores only the most recent mark price instead of fanning
// ticks out to subscribers; callers read it on demand with Last. That
// keeps the dashboards from being overwhelmed by high-frequency
// updates they would only throw away.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/asharan/futbot/internal/utils"
)

const (
	mainnetWSBase = "wss://fstream.binance.com/ws"
	testnetWSBase = "wss://stream.binancefuture.com/ws"

	maxBackoff = 1 * time.Minute
	staleAfter = 15 * time.Second
)

// Tick is one mark-price observation.
type Tick struct {
	Symbol string    `json:"symbol"`
	Price  string    `json:"price"`
	Time   time.Time `json:"time"`
}

type markPriceEvent struct {
	EventType string `json:"e"`
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	MarkPrice string `json:"p"`
}

// Ticker maintains a reconnecting subscription to the venue's
// mark-price stream for one symbol.
type Ticker struct {
	url    string
	symbol string

	mu         sync.RWMutex
	last       Tick
	hasTick    bool
	receivedAt time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTicker builds a ticker for the symbol. testnet selects the
// practice network endpoint.
func NewTicker(symbol string, testnet bool) *Ticker {
	base := mainnetWSBase
	if testnet {
		base = testnetWSBase
	}
	return &Ticker{
		url:    fmt.Sprintf("%s/%s@markPrice@1s", base, strings.ToLower(symbol)),
		symbol: strings.ToUpper(symbol),
	}
}

// Start launches the connection loop. It returns immediately; the
// ticker reports no tick until the first message arrives.
func (t *Ticker) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(1)
	go t.connectionLoop(ctx)
}

// Stop tears the connection loop down and waits for it to exit.
func (t *Ticker) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()
}

// Last returns the most recent tick and whether one has been received.
func (t *Ticker) Last() (Tick, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last, t.hasTick
}

// HasFreshTick reports whether a tick arrived recently enough to display.
func (t *Ticker) HasFreshTick() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hasTick && time.Since(t.receivedAt) < staleAfter
}

func (t *Ticker) connectionLoop(ctx context.Context) {
	defer t.wg.Done()

	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := t.readUntilClosed(ctx)
		if err != nil && ctx.Err() == nil {
			utils.GetLogger().Printf("Stream | %s mark price connection lost: %v. Backing off for %v", t.symbol, err, backoff)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		// Exponential backoff, capped
		if backoff < maxBackoff {
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}

func (t *Ticker) readUntilClosed(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var ev markPriceEvent
		if err := json.Unmarshal(msg, &ev); err != nil || ev.EventType != "markPriceUpdate" {
			continue
		}
		t.mu.Lock()
		t.last = Tick{
			Symbol: ev.Symbol,
			Price:  ev.MarkPrice,
			Time:   time.UnixMilli(ev.EventTime).UTC(),
		}
		t.hasTick = true
		t.receivedAt = time.Now()
		t.mu.Unlock()
	}
}
