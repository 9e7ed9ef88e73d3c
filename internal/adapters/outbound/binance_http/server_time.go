package binance_http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ServerTime fetches the exchange clock from GET /fapi/v1/time.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	body, status, err := c.get(ctx, "/fapi/v1/time", nil, false)
	if err != nil {
		return time.Time{}, err
	}
	if status != http.StatusOK {
		return time.Time{}, classify(status, body)
	}

	var resp struct {
		ServerTime int64 `json:"serverTime"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return time.Time{}, fmt.Errorf("unmarshal server time: %w", err)
	}

	return time.UnixMilli(resp.ServerTime), nil
}
