package auth

import "context"

// Identity is the verified profile returned by a federated provider
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// FederatedVerifier validates third-party identity tokens (Google sign-in)
type FederatedVerifier interface {
	// VerifyIDToken checks the provider token and returns the verified identity
	//
	// Possible errors:
	// - ErrInvalidToken: If the token is rejected by the provider
	// - ErrBackendUnavailable: If the provider is unreachable or not configured
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}
