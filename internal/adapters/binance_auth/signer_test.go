package binance_auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vector from the Binance API signing documentation.
const (
	docSecret  = "NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j"
	docPayload = "symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559"
	docSig     = "c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71"
)

func TestSignKnownVector(t *testing.T) {
	s := NewSigner("vmPUZE6mv9SD5VNHk4HlWFsOr6aKE2zvsw0MuIgwCIPy6utIco14y7Ju91duEh8A", docSecret)
	require.NotNil(t, s)
	assert.Equal(t, docSig, s.Sign(docPayload))
}

func TestSignDeterministic(t *testing.T) {
	s := NewSigner("key", "secret")
	assert.Equal(t, s.Sign("a=1&b=2"), s.Sign("a=1&b=2"))
	assert.NotEqual(t, s.Sign("a=1&b=2"), s.Sign("a=1&b=3"))
}

func TestApplySetsAPIKeyHeader(t *testing.T) {
	s := NewSigner("my-key", "my-secret")
	req, err := http.NewRequest(http.MethodPost, "https://example.com/fapi/v1/order", nil)
	require.NoError(t, err)

	s.Apply(req)
	assert.Equal(t, "my-key", req.Header.Get("X-MBX-APIKEY"))
}

func TestMissingCredentials(t *testing.T) {
	assert.Nil(t, NewSigner("", "secret"))
	assert.Nil(t, NewSigner("key", ""))

	var s *Signer
	assert.False(t, s.Enabled())
	assert.Equal(t, "", s.Sign("anything"))
	// Apply on a nil signer must not panic
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	s.Apply(req)
	assert.Empty(t, req.Header.Get("X-MBX-APIKEY"))
}
