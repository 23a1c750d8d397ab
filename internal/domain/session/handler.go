package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"nicu-progress/internal/platform/logger"
	"nicu-progress/internal/platform/validation"
	"nicu-progress/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/token", loginHandler(svc, log))
	r.Post("/token/refresh", refreshHandler(svc))
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// loginHandler godoc
// @Summary Obtener tokens
// @Description Valida usuario y contraseña del clínico y devuelve un access token y un refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} auth.TokenPair
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "invalid username or password"
// @Router /token [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		pair, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrBadCredentials) || errors.Is(err, ErrInvalidInput) {
				log.Warn("login rejected", map[string]any{"username": req.Username})
				http.Error(w, auth.ErrBadCredentials.Error(), http.StatusUnauthorized)
				return
			}
			log.Error("issue tokens failed", map[string]any{"error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, pair)
	}
}

// refreshHandler godoc
// @Summary Renovar access token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body refreshRequest true "Refresh token"
// @Success 200 {object} refreshResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "invalid token"
// @Router /token/refresh [post]
func refreshHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		access, err := svc.Refresh(r.Context(), req.Refresh)
		if err != nil {
			http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, refreshResponse{Access: access})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
