package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/brandontaylor1/quibotanicals/internal/services/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles admin login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		h.jsonError(w, "Email and password required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.jsonError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		if errors.Is(err, auth.ErrStorageUnavailable) && result != nil {
			// Session is active in memory only; it will not survive a restart
			log.Printf("login degraded to in-memory session: %v", err)
		} else {
			h.jsonError(w, "Login failed", http.StatusInternalServerError)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    result.Token,
		Path:     "/",
		Expires:  result.Expires,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":    result.Session,
		"expires": result.Expires,
	})
}

// Logout ends the admin session. Idempotent.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		log.Printf("logout: persisted session not removed: %v", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SessionInfo reports the current session state for UI bootstrapping
func (h *Handler) SessionInfo(w http.ResponseWriter, r *http.Request) {
	state := h.authService.State()

	response := map[string]interface{}{
		"state":    state.String(),
		"is_admin": h.authService.IsAdmin(),
	}
	if session := h.authService.Current(); session != nil {
		response["user"] = session
	}

	h.writeJSON(w, http.StatusOK, response)
}
