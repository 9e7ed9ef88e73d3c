package binance_ws

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Yashhpatill/trading-bot/internal/telemetry"
)

// Ticker follows one symbol's mark-price stream and keeps the most recent
// price. It exists to show the user a live reference price during order
// entry, so it is strictly best-effort: when the stream is down, Last simply
// reports no price.
//
// Gorilla/websocket allows one concurrent reader, so all reads happen on the
// runLoop goroutine; mu only guards the cached price and connection handle.
type Ticker struct {
	url  string
	stop context.CancelFunc
	done chan struct{}

	ready     chan struct{}
	readyOnce sync.Once

	mu   sync.Mutex
	conn *websocket.Conn
	last string
}

// markPriceEvent is the subset of the <symbol>@markPrice payload we read.
type markPriceEvent struct {
	Symbol string `json:"s"`
	Price  string `json:"p"`
}

// Follow dials <baseURL>/ws/<symbol>@markPrice and starts reading until
// Stop or ctx cancellation.
func Follow(ctx context.Context, baseURL, symbol string) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{
		url:   fmt.Sprintf("%s/ws/%s@markPrice", strings.TrimRight(baseURL, "/"), strings.ToLower(symbol)),
		stop:  cancel,
		done:  make(chan struct{}),
		ready: make(chan struct{}),
	}
	go t.runLoop(ctx)
	return t
}

// Ready closes once the first mark-price event has arrived, letting callers
// bound their wait instead of sleeping.
func (t *Ticker) Ready() <-chan struct{} {
	return t.ready
}

// Last returns the most recent mark price, ok=false before the first event
// arrives or after the stream has gone away.
func (t *Ticker) Last() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.last != ""
}

// Stop tears the stream down and waits for the read loop to exit.
func (t *Ticker) Stop() {
	t.stop()
	t.mu.Lock()
	if t.conn != nil {
		t.conn.Close()
	}
	t.mu.Unlock()
	<-t.done
}

func (t *Ticker) dial(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()
	return nil
}

// runLoop reads events and reconnects on failure with capped backoff.
func (t *Ticker) runLoop(ctx context.Context) {
	defer close(t.done)

	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if err := t.dial(ctx); err != nil {
			telemetry.Debugf("mark price stream dial failed: %v", err)
		} else {
			backoff = time.Second
			t.readLoop()
		}

		t.mu.Lock()
		t.last = ""
		t.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (t *Ticker) readLoop() {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	for {
		var evt markPriceEvent
		if err := conn.ReadJSON(&evt); err != nil {
			return
		}
		if evt.Price == "" {
			continue
		}
		t.mu.Lock()
		t.last = evt.Price
		t.mu.Unlock()
		t.readyOnce.Do(func() { close(t.ready) })
	}
}
