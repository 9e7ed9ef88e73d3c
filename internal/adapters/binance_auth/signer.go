package binance_auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
)

// Signer implements Binance API request signing: the API key travels in the
// X-MBX-APIKEY header, and signed endpoints append an HMAC-SHA256 of the
// query string (hex encoded) as the "signature" parameter.
type Signer struct {
	apiKey string
	secret []byte
}

// NewSigner returns a Signer for the given credentials. Returns nil when
// either credential is empty, allowing callers to detect missing keys.
func NewSigner(apiKey, apiSecret string) *Signer {
	if apiKey == "" || apiSecret == "" {
		return nil
	}
	return &Signer{apiKey: apiKey, secret: []byte(apiSecret)}
}

// Sign returns the hex HMAC-SHA256 of payload. Empty when s is nil.
func (s *Signer) Sign(payload string) string {
	if s == nil {
		return ""
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Apply sets the API key header on req. No-op when s is nil.
func (s *Signer) Apply(req *http.Request) {
	if s == nil {
		return
	}
	req.Header.Set("X-MBX-APIKEY", s.apiKey)
}

// Enabled reports whether this signer has credentials loaded.
func (s *Signer) Enabled() bool {
	return s != nil && s.apiKey != ""
}
