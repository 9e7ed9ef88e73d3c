package cli

import (
	"context"
	"time"

	"github.com/Yashhpatill/trading-bot/internal/adapters/inbound/binance_ws"
	"github.com/Yashhpatill/trading-bot/internal/config"
	"github.com/Yashhpatill/trading-bot/internal/core/gateway"
)

// previewWait bounds how long order entry waits for the first mark-price
// event before carrying on without one.
const previewWait = 500 * time.Millisecond

// Session drives the interactive menu until the user exits, the input stream
// ends, or the surrounding context is cancelled.
type Session struct {
	console *Console
	gw      *gateway.Gateway
	filters config.SymbolFilters

	// wsURL enables the mark-price preview during order entry; empty
	// disables it.
	wsURL string
}

func NewSession(console *Console, gw *gateway.Gateway, filters config.SymbolFilters, wsURL string) *Session {
	return &Session{console: console, gw: gw, filters: filters, wsURL: wsURL}
}

// Run loops over the menu. Returns nil on a normal exit selection,
// ErrInputClosed when input ends, and ctx.Err() on cancellation — including
// while blocked at any prompt.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.console.ReadLine(ctx, "Enter your choice (1-4): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			s.console.Printf("\n[Placing Market Order]\n")
			err = s.placeOrder(ctx, gateway.Market)
		case "2":
			s.console.Printf("\n[Placing Limit Order]\n")
			err = s.placeOrder(ctx, gateway.Limit)
		case "3":
			s.console.Printf("\n[Placing Stop-Limit Order]\n")
			err = s.placeOrder(ctx, gateway.StopLimit)
		case "4":
			s.console.Printf("Exiting. Goodbye!\n")
			return nil
		default:
			s.console.Printf("Invalid choice. Please select from 1, 2, 3, or 4.\n")
			continue
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) printMenu() {
	s.console.Printf("\n--- Main Menu ---\n")
	s.console.Printf("1. Place Market Order\n")
	s.console.Printf("2. Place Limit Order\n")
	s.console.Printf("3. Place Stop-Limit Order\n")
	s.console.Printf("4. Exit\n")
}

// placeOrder collects the parameters for one order of the given kind,
// submits it, and reports the outcome. Only an ended input stream or
// cancellation propagates as an error; rejected orders are a normal outcome.
func (s *Session) placeOrder(ctx context.Context, kind gateway.Kind) error {
	symbol, err := Prompt(ctx, s.console, "Enter symbol (e.g., BTCUSDT): ",
		AsSymbol, func(sym string) bool { return sym != "" }, "Symbol cannot be empty.")
	if err != nil {
		return err
	}

	if preview := s.startPreview(ctx, symbol); preview != nil {
		defer preview.Stop()
		select {
		case <-preview.Ready():
			if price, ok := preview.Last(); ok {
				s.console.Printf("Current mark price for %s: %s\n", symbol, price)
			}
		case <-time.After(previewWait):
		case <-ctx.Done():
		}
	}

	side, err := Prompt(ctx, s.console, "Enter side (buy/sell): ",
		AsSide, nil, "Side must be 'buy' or 'sell'.")
	if err != nil {
		return err
	}

	filter, known := s.filters.For(symbol)

	qtyValid, qtyMsg := quantityRule(filter, known)
	quantity, err := Prompt(ctx, s.console, "Enter quantity (e.g., 0.001): ",
		AsDecimal, qtyValid, qtyMsg)
	if err != nil {
		return err
	}

	var outcome gateway.Outcome
	switch kind {
	case gateway.Market:
		outcome = s.gw.PlaceMarketOrder(ctx, symbol, side, quantity)

	case gateway.Limit:
		priceValid, priceMsg := priceRule(filter, known, "Price")
		price, err := Prompt(ctx, s.console, "Enter limit price (e.g., 50000): ",
			AsDecimal, priceValid, priceMsg)
		if err != nil {
			return err
		}
		outcome = s.gw.PlaceLimitOrder(ctx, symbol, side, quantity, price)

	case gateway.StopLimit:
		stopValid, stopMsg := priceRule(filter, known, "Stop price")
		stopPrice, err := Prompt(ctx, s.console, "Enter STOP price (trigger price): ",
			AsDecimal, stopValid, stopMsg)
		if err != nil {
			return err
		}
		limitValid, limitMsg := priceRule(filter, known, "Limit price")
		price, err := Prompt(ctx, s.console, "Enter LIMIT price (execution price): ",
			AsDecimal, limitValid, limitMsg)
		if err != nil {
			return err
		}
		outcome = s.gw.PlaceStopLimitOrder(ctx, symbol, side, quantity, price, stopPrice)
	}

	Report(s.console.out, outcome)
	return nil
}

func (s *Session) startPreview(ctx context.Context, symbol string) *binance_ws.Ticker {
	if s.wsURL == "" {
		return nil
	}
	return binance_ws.Follow(ctx, s.wsURL, symbol)
}
