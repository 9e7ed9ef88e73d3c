package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Yashhpatill/trading-bot/internal/core/gateway"
)

// ErrInputClosed is returned when the interactive input stream ends. It is
// the only way out of a prompt without a valid value besides cancellation.
var ErrInputClosed = errors.New("input stream closed")

// Console wraps the interactive streams so prompts are testable without a
// terminal. Input is read on its own goroutine so that ReadLine can abandon
// a blocked read when the session's context is cancelled — an interrupt
// must end the session even while it sits at a prompt.
type Console struct {
	out   io.Writer
	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{out: out, lines: make(chan lineResult)}
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			c.lines <- lineResult{text: sc.Text()}
		}
		if err := sc.Err(); err != nil {
			c.lines <- lineResult{err: err}
		}
		close(c.lines)
	}()
	return c
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ReadLine prints prompt and returns the next input line, whitespace
// trimmed. Returns ctx.Err() as soon as ctx is cancelled, even while the
// underlying read is still blocked.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}

// Prompt keeps asking until convert succeeds and valid (when non-nil)
// accepts the value. A conversion failure prints a format message and
// retries; a predicate failure prints errMsg and retries. There is no retry
// limit — invalid values never reach the caller.
func Prompt[T any](ctx context.Context, c *Console, prompt string, convert func(string) (T, error), valid func(T) bool, errMsg string) (T, error) {
	var zero T
	for {
		raw, err := c.ReadLine(ctx, prompt)
		if err != nil {
			return zero, err
		}

		v, err := convert(raw)
		if err != nil {
			c.Printf("Invalid format. Please try again. %s\n", errMsg)
			continue
		}
		if valid != nil && !valid(v) {
			c.Printf("%s\n", errMsg)
			continue
		}
		return v, nil
	}
}

// AsSymbol upper-cases a ticker. Emptiness is left to the predicate.
func AsSymbol(s string) (string, error) {
	return strings.ToUpper(s), nil
}

func AsSide(s string) (gateway.Side, error) {
	return gateway.ParseSide(s)
}

func AsDecimal(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
