package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	errs "github.com/shoppro/storefront/internal/domain/error"
	authport "github.com/shoppro/storefront/internal/domain/port/auth"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
)

const (
	googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	verifyTimeout      = 10 * time.Second
)

// tokenInfoResponse is the subset of Google's tokeninfo payload we use
type tokenInfoResponse struct {
	Audience string `json:"aud"`
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint.
// The token's audience must match the configured OAuth client ID.
type GoogleVerifier struct {
	clientID string
	endpoint string
	client   *http.Client
	logger   coreport.Logger
}

func NewGoogleVerifier(clientID string, logger coreport.Logger) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		endpoint: googleTokenInfoURL,
		client:   &http.Client{Timeout: verifyTimeout},
		logger:   logger,
	}
}

func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*authport.Identity, error) {
	if v.clientID == "" {
		v.logger.Warn("Google sign-in attempted but no client ID is configured", nil)
		return nil, errs.ErrBackendUnavailable
	}
	if idToken == "" {
		return nil, errs.ErrInvalidToken
	}

	reqURL := v.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errs.ErrInvalidToken
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("Google tokeninfo request failed", map[string]any{
			"error": err.Error(),
		})
		return nil, errs.ErrBackendUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// continue below
	case resp.StatusCode >= 500:
		return nil, errs.ErrBackendUnavailable
	default:
		// Google answers 4xx for expired, malformed, or revoked tokens
		return nil, errs.ErrInvalidToken
	}

	var info tokenInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errs.ErrInvalidToken
	}

	if info.Audience != v.clientID {
		v.logger.Warn("Google token rejected: audience mismatch", map[string]any{
			"audience": info.Audience,
		})
		return nil, errs.ErrInvalidToken
	}
	if info.Subject == "" || info.Email == "" {
		return nil, errs.ErrInvalidToken
	}

	return &authport.Identity{
		Subject: info.Subject,
		Email:   info.Email,
		Name:    info.Name,
	}, nil
}
