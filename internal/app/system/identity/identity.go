// Package identity consumes the external identity provider. The provider
// issues and validates credentials; all this service sees is an opaque
// bearer token and, on success, a stable subject identifier that keys into
// the local users collection.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrInvalidCredential is returned when the provider rejects a token.
var ErrInvalidCredential = errors.New("invalid credential")

// Verifier validates a bearer credential and yields the subject identifier
// it was issued to.
type Verifier interface {
	Verify(ctx context.Context, credential string) (subjectID string, err error)
}

// HTTPVerifier calls the provider's verification endpoint. The endpoint
// receives the credential as a bearer header and answers 200 with
// {"subject": "..."} or a 4xx on rejection.
type HTTPVerifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPVerifier builds a verifier against the given endpoint.
func NewHTTPVerifier(endpoint string, timeout time.Duration) *HTTPVerifier {
	return &HTTPVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Verify implements Verifier.
func (v *HTTPVerifier) Verify(ctx context.Context, credential string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity verify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return "", ErrInvalidCredential
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity verify: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Subject string `json:"subject"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("identity verify: decode: %w", err)
	}
	if body.Subject == "" {
		return "", ErrInvalidCredential
	}
	return body.Subject, nil
}

// Static maps fixed tokens to subjects. It backs tests and local
// development; an empty map rejects everything.
type Static map[string]string

// Verify implements Verifier.
func (s Static) Verify(_ context.Context, credential string) (string, error) {
	if sub, ok := s[credential]; ok {
		return sub, nil
	}
	return "", ErrInvalidCredential
}

// TokenAsSubject treats the credential itself as the subject id. Dev mode
// only; wired when no verification endpoint is configured.
type TokenAsSubject struct{}

// Verify implements Verifier.
func (TokenAsSubject) Verify(_ context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrInvalidCredential
	}
	return credential, nil
}

// BearerToken extracts the credential from an Authorization header or,
// failing that, a "token" query parameter (the form websocket clients use,
// since browsers cannot set headers on the upgrade request).
func BearerToken(r *http.Request) string {
	if hdr := r.Header.Get("Authorization"); strings.HasPrefix(hdr, "Bearer ") {
		return strings.TrimPrefix(hdr, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
