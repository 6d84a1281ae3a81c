// Package webhook authenticates identity-provider deliveries signed with the
// Svix scheme.
package webhook

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	svix "github.com/svix/svix-webhooks/go"
)

const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

var (
	ErrMissingHeaders   = errors.New("missing svix headers")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

type Verifier interface {
	Verify(payload []byte, headers http.Header) error
}

type SvixVerifier struct {
	wh *svix.Webhook
}

func NewSvixVerifier(secret string) (*SvixVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("webhook secret: %w", err)
	}
	return &SvixVerifier{wh: wh}, nil
}

// Verify returns ErrMissingHeaders before any cryptographic check, and
// ErrInvalidSignature for bad signatures or stale timestamps.
func (v *SvixVerifier) Verify(payload []byte, headers http.Header) error {
	if !HasHeaders(headers) {
		return ErrMissingHeaders
	}
	if err := v.wh.Verify(payload, headers); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}

func HasHeaders(h http.Header) bool {
	for _, k := range []string{HeaderID, HeaderTimestamp, HeaderSignature} {
		if strings.TrimSpace(h.Get(k)) == "" {
			return false
		}
	}
	return true
}
