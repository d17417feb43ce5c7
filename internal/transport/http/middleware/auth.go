package middleware

import (
	"net/http"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/requestctx"
	"hrportal/internal/transport/http/api"
)

// Auth rejects requests without a valid bearer token and stores the caller
// in the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "No token, authorization denied", GetRequestID(r.Context()))
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "Token is not valid", GetRequestID(r.Context()))
				return
			}

			ctx := requestctx.WithPrincipal(r.Context(), requestctx.Principal{
				UserID: claims.UserID,
				Role:   claims.Role,
				Name:   claims.Name,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func GetUser(r *http.Request) (requestctx.Principal, bool) {
	return requestctx.GetPrincipal(r.Context())
}
