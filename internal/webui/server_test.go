package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asharan/futbot/internal/config"
	"github.com/asharan/futbot/internal/execution"
	"github.com/asharan/futbot/internal/venue"
)

type fakeAPI struct {
	placeResp venue.Order
	placeErr  error
	cancelErr error
	openResp  []venue.Order
	klines    []venue.Kline
}

func (f *fakeAPI) PlaceOrder(context.Context, venue.OrderParams) (venue.Order, error) {
	return f.placeResp, f.placeErr
}

func (f *fakeAPI) CancelOrder(context.Context, string, int64) (venue.Order, error) {
	return venue.Order{}, f.cancelErr
}

func (f *fakeAPI) GetOrder(context.Context, string, int64) (venue.Order, error) {
	return f.placeResp, nil
}

func (f *fakeAPI) OpenOrders(context.Context, string) ([]venue.Order, error) {
	return f.openResp, nil
}

func (f *fakeAPI) AccountTrades(context.Context, string) ([]venue.Trade, error) {
	return nil, nil
}

func (f *fakeAPI) Klines(context.Context, string, string, int) ([]venue.Kline, error) {
	return f.klines, nil
}

func testConfig() config.Config {
	return config.Config{
		APIKey: "k", APISecret: "s", Testnet: true,
		Symbol: "BTCUSDT", QuantityStep: "0.001",
		ListenAddr: ":0", ChartTimeframe: "5m", ChartLimit: 50,
	}
}

func newProServer(api *fakeAPI) *Server {
	client := execution.New(api)
	return New(testConfig(), client, Options{
		Pro:      true,
		Registry: execution.NewRegistry(client, "BTCUSDT"),
		Chart:    api,
	})
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPlaceOrderEndpoint(t *testing.T) {
	api := &fakeAPI{placeResp: venue.Order{
		OrderID: 42, Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET",
		Status: "NEW", OrigQty: "0.01",
	}}
	srv := newProServer(api)

	rec := postForm(t, srv.Handler(), "/api/orders", url.Values{
		"side": {"BUY"}, "type": {"Market"}, "quantity": {"0.01"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var placed struct {
		OrderID int64  `json:"orderId"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	assert.Equal(t, int64(42), placed.OrderID)
	assert.Equal(t, "NEW", placed.Status)
}

func TestPlaceOrderValidationError(t *testing.T) {
	srv := newProServer(&fakeAPI{})

	rec := postForm(t, srv.Handler(), "/api/orders", url.Values{
		"side": {"BUY"}, "type": {"Limit"}, "quantity": {"0.01"}, // no limit price
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var f failurePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "VALIDATION_ERROR", f.Kind)
}

func TestPlaceOrderVenueRejection(t *testing.T) {
	api := &fakeAPI{placeErr: &venue.Error{Code: -2019, Message: "Margin is insufficient."}}
	srv := newProServer(api)

	rec := postForm(t, srv.Handler(), "/api/orders", url.Values{
		"side": {"BUY"}, "type": {"Market"}, "quantity": {"0.01"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var f failurePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "VENUE_REJECTION", f.Kind)
	assert.Equal(t, int64(-2019), f.Code)
}

func TestCancelAlreadyTerminal(t *testing.T) {
	api := &fakeAPI{cancelErr: &venue.Error{Code: -2011, Message: "Unknown order sent."}}
	srv := newProServer(api)

	rec := postForm(t, srv.Handler(), "/api/orders/999/cancel", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var f failurePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "ALREADY_TERMINAL", f.Kind)
}

func TestOpenOrdersEndpoint(t *testing.T) {
	api := &fakeAPI{openResp: []venue.Order{
		{OrderID: 1, Symbol: "BTCUSDT", Side: "BUY", Type: "LIMIT", Status: "NEW", Price: "57000", OrigQty: "0.01"},
	}}
	srv := newProServer(api)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/open", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []struct {
		Order struct {
			OrderID int64 `json:"orderId"`
		} `json:"order"`
		CancelPending bool `json:"cancelPending"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Order.OrderID)
	assert.False(t, rows[0].CancelPending)
}

func TestKlinesRejectsBadTimeframe(t *testing.T) {
	srv := newProServer(&fakeAPI{})

	req := httptest.NewRequest(http.MethodGet, "/api/klines?timeframe=7m", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// The basic dashboard only places orders; the pro surface must not leak
// into it.
func TestBasicVariantHidesProRoutes(t *testing.T) {
	client := execution.New(&fakeAPI{})
	srv := New(testConfig(), client, Options{})

	for _, path := range []string{"/api/orders/open", "/api/trades", "/api/klines", "/api/ticker"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestIndexRenders(t *testing.T) {
	srv := newProServer(&fakeAPI{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BTCUSDT")
}
