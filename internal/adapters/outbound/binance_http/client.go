package binance_http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Yashhpatill/trading-bot/internal/adapters/binance_auth"
	"github.com/Yashhpatill/trading-bot/internal/telemetry"
	"golang.org/x/time/rate"
)

type Client struct {
	baseURL      string
	httpClient   *http.Client
	signer       *binance_auth.Signer
	recvWindow   int
	readLimiter  *rate.Limiter
	writeLimiter *rate.Limiter

	// now is swappable so tests can pin the signed timestamp.
	now func() time.Time
}

func NewClient(baseURL string, signer *binance_auth.Signer, recvWindowMS int) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		signer:       signer,
		recvWindow:   recvWindowMS,
		readLimiter:  rate.NewLimiter(rate.Limit(20), 20),
		writeLimiter: rate.NewLimiter(rate.Limit(10), 10),
		now:          time.Now,
	}
}

// APIError is a structured trading error returned by the exchange: a non-2xx
// status whose body carries the {"code":N,"msg":S} shape. Anything else that
// goes wrong during a call surfaces as a plain error.
type APIError struct {
	HTTPStatus int
	Code       int64
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("binance: code=%d msg=%q", e.Code, e.Msg)
}

// classify converts a non-2xx response into *APIError when the body is the
// exchange's error shape, or a plain error when it is not.
func classify(status int, body []byte) error {
	var payload struct {
		Code int64  `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Msg != "" {
		return &APIError{HTTPStatus: status, Code: payload.Code, Msg: payload.Msg}
	}
	return fmt.Errorf("unexpected response: status=%d body=%s", status, body)
}

// do executes one request. Signed requests carry timestamp, recvWindow and
// signature in the query string per the Binance signing scheme.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, signed bool) ([]byte, int, error) {
	lim := c.readLimiter
	if method != http.MethodGet {
		lim = c.writeLimiter
	}
	if err := lim.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	if signed {
		params.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
		params.Set("recvWindow", strconv.Itoa(c.recvWindow))
	}
	query := params.Encode()
	if signed {
		query += "&signature=" + c.signer.Sign(query)
	}

	reqURL := c.baseURL + path
	if query != "" {
		reqURL += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.signer.Apply(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	telemetry.Metrics.APILatency.Record(time.Since(start))
	telemetry.Debugf("binance_http: %s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start))

	return respBody, resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, signed bool) ([]byte, int, error) {
	return c.do(ctx, http.MethodGet, path, params, signed)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, signed bool) ([]byte, int, error) {
	return c.do(ctx, http.MethodPost, path, params, signed)
}
