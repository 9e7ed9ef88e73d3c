package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Yashhpatill/trading-bot/internal/adapters/outbound/binance_http"
	"github.com/dustin/go-humanize"
)

// ExchangeClient is the slice of the exchange REST API the gateway uses.
// Satisfied by *binance_http.Client.
type ExchangeClient interface {
	ServerTime(ctx context.Context) (time.Time, error)
	NewOrder(ctx context.Context, req binance_http.NewOrderRequest) (*binance_http.OrderResponse, error)
}

var _ ExchangeClient = (*binance_http.Client)(nil)

// Gateway owns the authenticated client for the life of the process and
// turns validated order parameters into exchange calls. One order per call,
// synchronous, no retries — the caller re-collects parameters on rejection.
type Gateway struct {
	client ExchangeClient
	log    *slog.Logger
}

func New(client ExchangeClient, log *slog.Logger) *Gateway {
	return &Gateway{client: client, log: log}
}

// CheckConnection probes the exchange's time endpoint. Any failure here is
// fatal to startup: trading against an unreachable or out-of-sync venue is
// worse than not starting.
func (g *Gateway) CheckConnection(ctx context.Context) (time.Time, error) {
	serverTime, err := g.client.ServerTime(ctx)
	if err != nil {
		g.log.Error(fmt.Sprintf("connection check failed: %v", err))
		return time.Time{}, fmt.Errorf("connection check: %w", err)
	}

	skew := humanize.RelTime(serverTime, time.Now(), "behind local clock", "ahead of local clock")
	g.log.Info(fmt.Sprintf("connected to Binance Futures, server time %s (%s)",
		serverTime.UTC().Format(time.RFC3339), skew))
	return serverTime, nil
}

func (g *Gateway) PlaceMarketOrder(ctx context.Context, symbol string, side Side, quantity float64) Outcome {
	return g.place(ctx, OrderRequest{Symbol: symbol, Side: side, Kind: Market, Quantity: quantity})
}

func (g *Gateway) PlaceLimitOrder(ctx context.Context, symbol string, side Side, quantity, price float64) Outcome {
	return g.place(ctx, OrderRequest{Symbol: symbol, Side: side, Kind: Limit, Quantity: quantity, Price: price})
}

func (g *Gateway) PlaceStopLimitOrder(ctx context.Context, symbol string, side Side, quantity, price, stopPrice float64) Outcome {
	return g.place(ctx, OrderRequest{Symbol: symbol, Side: side, Kind: StopLimit, Quantity: quantity, Price: price, StopPrice: stopPrice})
}

// place runs one submission end to end. Every failure becomes a Rejected
// outcome — the session loop never sees an error or a panic from here.
func (g *Gateway) place(ctx context.Context, req OrderRequest) Outcome {
	g.log.Info(attemptLine(req))

	if err := req.Validate(); err != nil {
		g.log.Error(fmt.Sprintf("%s order invalid: %v", req.Kind, err))
		return Reject(err.Error())
	}

	resp, err := g.client.NewOrder(ctx, req.wire())
	if err != nil {
		var apiErr *binance_http.APIError
		if errors.As(err, &apiErr) {
			g.log.Error(fmt.Sprintf("%s order rejected by exchange: %s", req.Kind, apiErr.Msg))
			return Reject(apiErr.Msg)
		}
		g.log.Error(fmt.Sprintf("%s order failed: %v", req.Kind, err))
		return Reject(err.Error())
	}

	g.log.Info(fmt.Sprintf("%s order successful: %+v", req.Kind, *resp))
	return Accepted(PlacedOrder{
		Symbol:   resp.Symbol,
		OrderID:  formatOrderID(resp.OrderID),
		Kind:     resp.Type,
		Side:     resp.Side,
		Status:   resp.Status,
		AvgPrice: resp.AvgPrice,
	})
}

func attemptLine(req OrderRequest) string {
	spec := kindSpecs[req.Kind]
	line := fmt.Sprintf("attempting %s %s order for %s %s",
		req.Kind, req.Side, formatDecimal(req.Quantity), req.Symbol)
	if spec.needsPrice {
		line += fmt.Sprintf(" at limit price %s", formatDecimal(req.Price))
	}
	if spec.needsStop {
		line += fmt.Sprintf(" with stop price %s", formatDecimal(req.StopPrice))
	}
	return line
}

// formatOrderID keeps an omitted order id absent instead of showing 0.
func formatOrderID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
