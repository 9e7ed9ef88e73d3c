package binance_http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Yashhpatill/trading-bot/internal/telemetry"
)

// NewOrderRequest is the payload for POST /fapi/v1/order. Empty optional
// fields are omitted from the outgoing query entirely — market orders carry
// no price parameters at all.
type NewOrderRequest struct {
	Symbol      string // e.g. "BTCUSDT"
	Side        string // "BUY" or "SELL"
	Type        string // "MARKET", "LIMIT" or "STOP_LIMIT"
	TimeInForce string // "GTC" for resting orders, empty otherwise
	Quantity    string
	Price       string
	StopPrice   string
}

func (r NewOrderRequest) values() url.Values {
	v := url.Values{}
	v.Set("symbol", r.Symbol)
	v.Set("side", r.Side)
	v.Set("type", r.Type)
	v.Set("quantity", r.Quantity)
	if r.TimeInForce != "" {
		v.Set("timeInForce", r.TimeInForce)
	}
	if r.Price != "" {
		v.Set("price", r.Price)
	}
	if r.StopPrice != "" {
		v.Set("stopPrice", r.StopPrice)
	}
	return v
}

// OrderResponse mirrors the exchange's order payload. Fields the exchange
// omits stay zero-valued; callers surface those as absent rather than
// inventing defaults.
type OrderResponse struct {
	Symbol        string `json:"symbol"`
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Status        string `json:"status"`
	Type          string `json:"type"`
	Side          string `json:"side"`
	TimeInForce   string `json:"timeInForce"`
	Price         string `json:"price"`
	AvgPrice      string `json:"avgPrice"`
	StopPrice     string `json:"stopPrice"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	UpdateTime    int64  `json:"updateTime"`
}

// NewOrder submits one order and waits for the exchange's synchronous
// answer. A non-2xx status with the exchange's error body comes back as
// *APIError; transport and decoding failures come back as plain errors.
func (c *Client) NewOrder(ctx context.Context, req NewOrderRequest) (*OrderResponse, error) {
	body, status, err := c.post(ctx, "/fapi/v1/order", req.values(), true)
	if err != nil {
		telemetry.Metrics.TransportErrors.Inc()
		return nil, err
	}
	telemetry.Metrics.OrdersSent.Inc()
	if status < 200 || status >= 300 {
		telemetry.Metrics.OrderRejections.Inc()
		return nil, classify(status, body)
	}

	var resp OrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal order response: %w", err)
	}

	telemetry.Metrics.OrdersAccepted.Inc()
	return &resp, nil
}
