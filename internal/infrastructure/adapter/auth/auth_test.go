package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/logger"
	timeadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/time"
)

var testInstant = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testUser(t *testing.T) *entity.User {
	t.Helper()
	tp := timeadapter.NewFixedTimeProvider(testInstant)
	user, err := entity.NewUser("alice", "hash", "alice@example.com", "abcd1234", "", entity.RoleUser, tp)
	require.NoError(t, err)
	user.ID = 7
	return user
}

func TestJWTIssuerRoundTrip(t *testing.T) {
	tp := timeadapter.NewFixedTimeProvider(testInstant)
	issuer := NewJWTIssuer("test-secret", 72*time.Hour, tp)

	token, err := issuer.Issue(testUser(t))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, entity.RoleUser, claims.Role)
}

func TestJWTIssuerRejectsExpiredToken(t *testing.T) {
	issued := timeadapter.NewFixedTimeProvider(testInstant)
	issuer := NewJWTIssuer("test-secret", time.Hour, issued)

	token, err := issuer.Issue(testUser(t))
	require.NoError(t, err)

	later := timeadapter.NewFixedTimeProvider(testInstant.Add(2 * time.Hour))
	verifier := NewJWTIssuer("test-secret", time.Hour, later)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestJWTIssuerRejectsForgedToken(t *testing.T) {
	tp := timeadapter.NewFixedTimeProvider(testInstant)
	issuer := NewJWTIssuer("test-secret", time.Hour, tp)
	other := NewJWTIssuer("other-secret", time.Hour, tp)

	token, err := other.Issue(testUser(t))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	_, err = issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, hasher.Compare(hash, "s3cret-pass"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong-pass"), errs.ErrInvalidCredentials)
	assert.ErrorIs(t, hasher.Compare("not-a-hash", "s3cret-pass"), errs.ErrInvalidCredentials)
}

func newTestGoogleVerifier(clientID string, handler http.HandlerFunc) (*GoogleVerifier, *httptest.Server) {
	server := httptest.NewServer(handler)
	verifier := NewGoogleVerifier(clientID, logger.NewNoopLogger())
	verifier.endpoint = server.URL
	return verifier, server
}

func TestGoogleVerifier(t *testing.T) {
	t.Run("accepts a token with the right audience", func(t *testing.T) {
		verifier, server := newTestGoogleVerifier("client-123", func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.URL.Query().Get("id_token"))
			w.Write([]byte(`{"aud":"client-123","sub":"google-uid-1","email":"carol@example.com","name":"Carol"}`))
		})
		defer server.Close()

		identity, err := verifier.VerifyIDToken(context.Background(), "id-token")
		require.NoError(t, err)
		assert.Equal(t, "google-uid-1", identity.Subject)
		assert.Equal(t, "carol@example.com", identity.Email)
		assert.Equal(t, "Carol", identity.Name)
	})

	t.Run("rejects an audience mismatch", func(t *testing.T) {
		verifier, server := newTestGoogleVerifier("client-123", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"aud":"someone-else","sub":"google-uid-1","email":"carol@example.com"}`))
		})
		defer server.Close()

		_, err := verifier.VerifyIDToken(context.Background(), "id-token")
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("maps provider 4xx to an invalid token", func(t *testing.T) {
		verifier, server := newTestGoogleVerifier("client-123", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		defer server.Close()

		_, err := verifier.VerifyIDToken(context.Background(), "expired-token")
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("maps provider outage to backend unavailable", func(t *testing.T) {
		verifier, server := newTestGoogleVerifier("client-123", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		defer server.Close()

		_, err := verifier.VerifyIDToken(context.Background(), "id-token")
		assert.ErrorIs(t, err, errs.ErrBackendUnavailable)
	})

	t.Run("fails closed when no client ID is configured", func(t *testing.T) {
		verifier := NewGoogleVerifier("", logger.NewNoopLogger())

		_, err := verifier.VerifyIDToken(context.Background(), "id-token")
		assert.ErrorIs(t, err, errs.ErrBackendUnavailable)
	})
}
