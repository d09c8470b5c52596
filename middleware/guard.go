package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrEthical07/passy"
	"github.com/MrEthical07/passy/jwt"
)

type claimsContextKey struct{}

// TokenVerifier is satisfied by *jwt.Manager.
type TokenVerifier interface {
	Verify(token string) (*jwt.BridgeClaims, error)
}

// ClaimsFromContext returns the claims stored by RequireBridgeToken.
func ClaimsFromContext(ctx context.Context) (*jwt.BridgeClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.BridgeClaims)
	return claims, ok
}

// RequireBridgeToken rejects requests without a valid bearer token with 401.
// On success the token subject becomes the request's client id. A nil
// verifier rejects everything.
func RequireBridgeToken(verifier TokenVerifier, metrics *passy.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				unauthorized(w, metrics)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, metrics)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, metrics)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			ctx = passy.WithClientID(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, metrics *passy.Metrics) {
	metrics.Inc(passy.MetricUnauthorized)
	writeError(w, http.StatusUnauthorized, "unauthorized")
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" {
		return "", false
	}

	return token, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
