package binance_http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yashhpatill/trading-bot/internal/adapters/binance_auth"
	"github.com/Yashhpatill/trading-bot/internal/telemetry"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, binance_auth.NewSigner("test-key", "test-secret"), 5000)
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c, srv
}

func TestServerTime(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fapi/v1/time", r.URL.Path)
		// the time endpoint is unsigned
		assert.Empty(t, r.URL.Query().Get("signature"))
		w.Write([]byte(`{"serverTime": 1700000000123}`))
	})

	ts, err := c.ServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1700000000123), ts)
}

func TestServerTimeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(srv.URL, nil, 5000)
	srv.Close()

	_, err := c.ServerTime(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNewOrderSignsAndSends(t *testing.T) {
	var got url.Values
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/fapi/v1/order", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-MBX-APIKEY"))
		got = r.URL.Query()
		w.Write([]byte(`{"symbol":"BTCUSDT","orderId":42,"type":"MARKET","side":"BUY","status":"FILLED","avgPrice":"50000.00"}`))
	})

	resp, err := c.NewOrder(context.Background(), NewOrderRequest{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Type:     "MARKET",
		Quantity: "0.01",
	})
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", got.Get("symbol"))
	assert.Equal(t, "BUY", got.Get("side"))
	assert.Equal(t, "MARKET", got.Get("type"))
	assert.Equal(t, "0.01", got.Get("quantity"))
	assert.Equal(t, "1700000000000", got.Get("timestamp"))
	assert.Equal(t, "5000", got.Get("recvWindow"))
	assert.NotEmpty(t, got.Get("signature"))

	// market orders must not carry price parameters
	assert.False(t, got.Has("price"))
	assert.False(t, got.Has("stopPrice"))
	assert.False(t, got.Has("timeInForce"))

	assert.Equal(t, int64(42), resp.OrderID)
	assert.Equal(t, "FILLED", resp.Status)
	assert.Equal(t, "50000.00", resp.AvgPrice)
}

func TestNewOrderIncludesRestingFields(t *testing.T) {
	var got url.Values
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"symbol":"BTCUSDT","orderId":7,"type":"STOP_LIMIT","side":"SELL","status":"NEW"}`))
	})

	_, err := c.NewOrder(context.Background(), NewOrderRequest{
		Symbol:      "BTCUSDT",
		Side:        "SELL",
		Type:        "STOP_LIMIT",
		TimeInForce: "GTC",
		Quantity:    "0.5",
		Price:       "48000",
		StopPrice:   "49000",
	})
	require.NoError(t, err)

	assert.Equal(t, "GTC", got.Get("timeInForce"))
	assert.Equal(t, "48000", got.Get("price"))
	assert.Equal(t, "49000", got.Get("stopPrice"))
}

func TestNewOrderExchangeRejection(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-2019,"msg":"Margin is insufficient."}`))
	})

	_, err := c.NewOrder(context.Background(), NewOrderRequest{
		Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "100",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, int64(-2019), apiErr.Code)
	assert.Equal(t, "Margin is insufficient.", apiErr.Msg)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
}

func TestMetricsReflectOrderTraffic(t *testing.T) {
	sentBefore := telemetry.Metrics.OrdersSent.Value()
	acceptedBefore := telemetry.Metrics.OrdersAccepted.Value()
	rejectedBefore := telemetry.Metrics.OrderRejections.Value()

	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("quantity") == "100" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":-2019,"msg":"Margin is insufficient."}`))
			return
		}
		w.Write([]byte(`{"symbol":"BTCUSDT","orderId":1,"status":"NEW"}`))
	})

	_, err := c.NewOrder(context.Background(), NewOrderRequest{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.01"})
	require.NoError(t, err)
	_, err = c.NewOrder(context.Background(), NewOrderRequest{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "100"})
	require.Error(t, err)

	// the registry feeds the end-of-session summary, so reads must see
	// what the client recorded
	assert.Equal(t, sentBefore+2, telemetry.Metrics.OrdersSent.Value())
	assert.Equal(t, acceptedBefore+1, telemetry.Metrics.OrdersAccepted.Value())
	assert.Equal(t, rejectedBefore+1, telemetry.Metrics.OrderRejections.Value())
	assert.Greater(t, int64(telemetry.Metrics.APILatency.P50()), int64(0))
}

func TestNewOrderMalformedErrorBody(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.NewOrder(context.Background(), NewOrderRequest{
		Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "1",
	})
	require.Error(t, err)

	// not the exchange's structured shape, so not an APIError
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
