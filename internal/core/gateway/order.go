package gateway

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Yashhpatill/trading-bot/internal/adapters/outbound/binance_http"
)

// Side of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide normalizes a user-supplied side token to the exchange's
// upper-case form. Accepts any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	}
	return "", fmt.Errorf("side must be 'buy' or 'sell', got %q", s)
}

// Kind is the order type, with the exchange's own tokens as values.
type Kind string

const (
	Market    Kind = "MARKET"
	Limit     Kind = "LIMIT"
	StopLimit Kind = "STOP_LIMIT"
)

// kindSpec is the per-kind field-presence table: which price fields an order
// kind must carry and the time-in-force it is submitted with. One table
// instead of three copies of the same submission path.
type kindSpec struct {
	needsPrice  bool
	needsStop   bool
	timeInForce string
}

var kindSpecs = map[Kind]kindSpec{
	Market:    {},
	Limit:     {needsPrice: true, timeInForce: "GTC"},
	StopLimit: {needsPrice: true, needsStop: true, timeInForce: "GTC"},
}

// OrderRequest is one order as collected from the user. Price and StopPrice
// are zero exactly when the kind forbids them.
type OrderRequest struct {
	Symbol    string
	Side      Side
	Kind      Kind
	Quantity  float64
	Price     float64
	StopPrice float64
}

// Validate enforces the field-presence invariant: quantity always positive,
// price/stopPrice positive when the kind requires them and zero when it
// does not, symbol a non-empty upper-case ticker.
func (r OrderRequest) Validate() error {
	spec, ok := kindSpecs[r.Kind]
	if !ok {
		return fmt.Errorf("unknown order kind %q", r.Kind)
	}
	if r.Symbol == "" || r.Symbol != strings.ToUpper(r.Symbol) {
		return fmt.Errorf("symbol must be a non-empty upper-case ticker, got %q", r.Symbol)
	}
	if r.Side != Buy && r.Side != Sell {
		return fmt.Errorf("side must be BUY or SELL, got %q", r.Side)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %v", r.Quantity)
	}
	if spec.needsPrice && r.Price <= 0 {
		return fmt.Errorf("%s orders require a positive price, got %v", r.Kind, r.Price)
	}
	if !spec.needsPrice && r.Price != 0 {
		return fmt.Errorf("%s orders do not take a price", r.Kind)
	}
	if spec.needsStop && r.StopPrice <= 0 {
		return fmt.Errorf("%s orders require a positive stop price, got %v", r.Kind, r.StopPrice)
	}
	if !spec.needsStop && r.StopPrice != 0 {
		return fmt.Errorf("%s orders do not take a stop price", r.Kind)
	}
	return nil
}

// wire converts the validated request into the exchange payload. Market
// orders omit all price fields; resting orders go out good-till-cancelled.
func (r OrderRequest) wire() binance_http.NewOrderRequest {
	spec := kindSpecs[r.Kind]
	out := binance_http.NewOrderRequest{
		Symbol:      r.Symbol,
		Side:        string(r.Side),
		Type:        string(r.Kind),
		TimeInForce: spec.timeInForce,
		Quantity:    formatDecimal(r.Quantity),
	}
	if spec.needsPrice {
		out.Price = formatDecimal(r.Price)
	}
	if spec.needsStop {
		out.StopPrice = formatDecimal(r.StopPrice)
	}
	return out
}

// formatDecimal prints v in its shortest exact decimal form — the exchange
// takes quantities and prices as strings.
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
