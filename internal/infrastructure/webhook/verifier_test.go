package webhook

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

var testSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

func signedHeaders(t *testing.T, secret, msgID string, ts time.Time, payload []byte) http.Header {
	t.Helper()
	wh, err := svix.NewWebhook(secret)
	require.NoError(t, err)
	sig, err := wh.Sign(msgID, ts, payload)
	require.NoError(t, err)

	h := http.Header{}
	h.Set(HeaderID, msgID)
	h.Set(HeaderTimestamp, strconv.FormatInt(ts.Unix(), 10))
	h.Set(HeaderSignature, sig)
	return h
}

func TestSvixVerifier(t *testing.T) {
	v, err := NewSvixVerifier(testSecret)
	require.NoError(t, err)
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)

	t.Run("valid", func(t *testing.T) {
		h := signedHeaders(t, testSecret, "msg_1", time.Now(), payload)
		assert.NoError(t, v.Verify(payload, h))
	})

	t.Run("missing headers", func(t *testing.T) {
		h := signedHeaders(t, testSecret, "msg_1", time.Now(), payload)
		h.Del(HeaderSignature)
		assert.ErrorIs(t, v.Verify(payload, h), ErrMissingHeaders)
	})

	t.Run("tampered body", func(t *testing.T) {
		h := signedHeaders(t, testSecret, "msg_1", time.Now(), payload)
		assert.ErrorIs(t, v.Verify([]byte(`{"type":"user.deleted"}`), h), ErrInvalidSignature)
	})

	t.Run("other secret", func(t *testing.T) {
		other := "whsec_" + base64.StdEncoding.EncodeToString([]byte("ffffffffffffffffffffffffffffffff"))
		h := signedHeaders(t, other, "msg_1", time.Now(), payload)
		assert.ErrorIs(t, v.Verify(payload, h), ErrInvalidSignature)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		h := signedHeaders(t, testSecret, "msg_1", time.Now().Add(-time.Hour), payload)
		assert.ErrorIs(t, v.Verify(payload, h), ErrInvalidSignature)
	})
}

func TestNewSvixVerifier_BadSecret(t *testing.T) {
	_, err := NewSvixVerifier("whsec_%%%not-base64")
	assert.Error(t, err)
}
