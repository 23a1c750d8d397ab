package middleware

import (
	"context"
	"net/http"
	"strings"

	"nicu-progress/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader identifica al clínico en modo dev (sin JWT_SECRET).
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext:
// - Con verifier (JWT_SECRET configurado) => Bearer access token, Verify() y claims.
// - Sin verifier => modo dev: X-Debug-User-ID se toma como clínico autenticado.
// - Sin claims el request sigue igual; cada handler responde 401 si las exige.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolveClaims(r, verifier); ok {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{UserID: uid, TokenType: "debug"}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	// Token vencido o inválido: el handler responde 401 y el cliente
	// intenta /token/refresh.
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil || strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, false
	}
	return claims, true
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
