package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedSigner(appToken, secret string, unix int64) *Signer {
	s := NewSigner(appToken, secret)
	s.now = func() time.Time { return time.Unix(unix, 0) }
	return s
}

func TestSignerHeaders(t *testing.T) {
	s := fixedSigner("app-token-1", "top-secret", 1700000000)

	path := "/resources/applicants?levelName=KYC-PEIBO"
	body := []byte(`{"externalUserId":"ext-1"}`)
	headers := s.Sign("POST", path, body)

	mac := hmac.New(sha256.New, []byte("top-secret"))
	mac.Write([]byte("1700000000" + "POST" + path + string(body)))

	assert.Equal(t, "app-token-1", headers["X-App-Token"])
	assert.Equal(t, "1700000000", headers["X-App-Access-Ts"])
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), headers["X-App-Access-Sig"])
}

func TestSignerEmptyBody(t *testing.T) {
	s := fixedSigner("app-token-1", "top-secret", 1700000000)

	headers := s.Sign("GET", "/resources/applicants/abc/one", nil)

	mac := hmac.New(sha256.New, []byte("top-secret"))
	mac.Write([]byte("1700000000" + "GET" + "/resources/applicants/abc/one"))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), headers["X-App-Access-Sig"])
}

func TestSignerDigestDependsOnPath(t *testing.T) {
	s := fixedSigner("app-token-1", "top-secret", 1700000000)

	a := s.Sign("GET", "/resources/applicants/a/one", nil)
	b := s.Sign("GET", "/resources/applicants/b/one", nil)
	assert.NotEqual(t, a["X-App-Access-Sig"], b["X-App-Access-Sig"])
}
