package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/asharan/futbot/internal/candle"
	"github.com/asharan/futbot/internal/execution"
	"github.com/asharan/futbot/internal/order"
	"github.com/asharan/futbot/internal/tfutils"
	"github.com/asharan/futbot/internal/utils"
)

// failurePayload is the uniform error body every endpoint returns, so
// both dashboards render the same categories.
type failurePayload struct {
	Kind    string `json:"kind"`
	Code    int64  `json:"code,omitempty"`
	Message string `json:"message"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	name := "basic.html"
	if s.opts.Pro {
		name = "pro.html"
	}
	data := struct {
		Symbol  string
		Testnet bool
	}{Symbol: s.cfg.Symbol, Testnet: s.cfg.Testnet}
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	symbol := r.FormValue("symbol")
	if symbol == "" {
		symbol = s.cfg.Symbol
	}

	spec, err := order.Validate(
		symbol,
		r.FormValue("side"),
		r.FormValue("type"),
		r.FormValue("quantity"),
		r.FormValue("limitPrice"),
		r.FormValue("stopPrice"),
		s.cfg.Step(),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	placed, err := s.client.Place(r.Context(), spec)
	if err != nil {
		utils.GetLogger().Printf("Dashboard | Place failed: %v", err)
		writeError(w, err)
		return
	}
	utils.GetLogger().Printf("Dashboard | Order placed: %d %s %s %s", placed.OrderID, placed.Symbol, placed.Side, placed.Quantity)
	writeJSON(w, http.StatusOK, placed)
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failurePayload{Kind: "VALIDATION_ERROR", Message: "order id must be an integer"})
		return
	}
	o, err := s.client.Status(r.Context(), s.cfg.Symbol, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleOpenOrders(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Registry.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	type row struct {
		Order         order.Order `json:"order"`
		CancelPending bool        `json:"cancelPending"`
	}
	snapshot := s.opts.Registry.Snapshot()
	rows := make([]row, 0, len(snapshot))
	for _, e := range snapshot {
		rows = append(rows, row{Order: e.Order, CancelPending: e.CancelPending})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failurePayload{Kind: "VALIDATION_ERROR", Message: "order id must be an integer"})
		return
	}

	// Advisory only: disables the button until the next refresh.
	s.opts.Registry.MarkCancelPending(id)

	if err := s.client.Cancel(r.Context(), s.cfg.Symbol, id); err != nil {
		utils.GetLogger().Printf("Dashboard | Cancel %d failed: %v", id, err)
		writeError(w, err)
		return
	}
	utils.GetLogger().Printf("Dashboard | Order canceled: %d", id)
	writeJSON(w, http.StatusOK, map[string]any{"orderId": id, "canceled": true})
}

func (s *Server) handleTradeHistory(w http.ResponseWriter, r *http.Request) {
	trades, err := s.client.TradeHistory(r.Context(), s.cfg.Symbol)
	if err != nil {
		writeError(w, err)
		return
	}
	// Newest first for display.
	order.SortByTimeDesc(trades)
	writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleKlines(w http.ResponseWriter, r *http.Request) {
	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = s.cfg.ChartTimeframe
	}
	if !tfutils.IsValidTimeframe(timeframe) {
		writeJSON(w, http.StatusBadRequest, failurePayload{Kind: "VALIDATION_ERROR", Message: "unsupported timeframe: " + timeframe})
		return
	}

	limit := s.cfg.ChartLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 10 || n > 500 {
			writeJSON(w, http.StatusBadRequest, failurePayload{Kind: "VALIDATION_ERROR", Message: "limit must be an integer between 10 and 500"})
			return
		}
		limit = n
	}

	candles, err := candle.Fetch(r.Context(), s.opts.Chart, s.cfg.Symbol, timeframe, limit)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, failurePayload{Kind: "NETWORK_FAILURE", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, candles)
}

func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	if s.opts.Ticker == nil || !s.opts.Ticker.HasFreshTick() {
		writeJSON(w, http.StatusOK, map[string]any{"available": false})
		return
	}
	tick, _ := s.opts.Ticker.Last()
	writeJSON(w, http.StatusOK, map[string]any{"available": true, "tick": tick})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the failure taxonomy onto HTTP statuses. The category
// reaches the browser untouched so the UI renders it, not a rephrasing.
func writeError(w http.ResponseWriter, err error) {
	var ve *order.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, failurePayload{Kind: "VALIDATION_ERROR", Message: ve.Error()})
		return
	}

	if f, ok := execution.AsFailure(err); ok {
		status := http.StatusBadGateway
		switch f.Kind {
		case execution.AuthFailure:
			status = http.StatusUnauthorized
		case execution.VenueRejection:
			status = http.StatusUnprocessableEntity
		case execution.AlreadyTerminal:
			status = http.StatusConflict
		case execution.NetworkFailure, execution.UnknownStatus:
			status = http.StatusBadGateway
		}
		writeJSON(w, status, failurePayload{Kind: string(f.Kind), Code: f.Code, Message: f.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, failurePayload{Kind: "NETWORK_FAILURE", Message: err.Error()})
}
