package delivery

import (
	"net/http"
	"strings"

	"github.com/Vovarama1992/memo_coach/internal/ports"
)

// AuthMiddleware lets through requests carrying a valid parent token.
func AuthMiddleware(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "missing bearer token"})
				return
			}

			valid, err := auth.ValidateToken(r.Context(), token)
			if err != nil || !valid {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "invalid token"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
