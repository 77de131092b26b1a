package delivery

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/memo_coach/internal/domain"
	"github.com/Vovarama1992/memo_coach/internal/ports"
)

// AuthHandler issues the parent token that guards the attempt journal.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Password)
	if errors.Is(err, domain.ErrInvalidPassword) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "invalid password"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal", Message: "login unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
