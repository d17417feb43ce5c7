package authhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrportal/internal/domain/auth"
	"hrportal/internal/mockbackend/data"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
	"hrportal/internal/validation"
)

const (
	avatarField    = "avatar"
	maxAvatarBytes = 2 << 20
	minPassword    = 6
)

type Handler struct {
	Store  *data.Store
	Secret string
	TTL    time.Duration
	// Limit throttles the unauthenticated endpoints. Nil means unlimited.
	Limit func(http.Handler) http.Handler
}

func NewHandler(store *data.Store, secret string, ttl time.Duration, limit func(http.Handler) http.Handler) *Handler {
	return &Handler{Store: store, Secret: secret, TTL: ttl, Limit: limit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.Limit != nil {
				r.Use(h.Limit)
			}
			r.Post("/login", h.HandleLogin)
			r.Post("/register", h.HandleRegister)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.Secret))
			r.Get("/profile", h.HandleProfile)
			r.Put("/profile", h.HandleUpdateProfile)
			r.Put("/change-password", h.HandleChangePassword)
			r.Post("/logout", h.HandleLogout)
		})
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := validation.New()
	v.Email("email", payload.Email)
	v.Required("password", payload.Password)
	if api.Reject(w, v, middleware.GetRequestID(r.Context())) {
		return
	}

	user, err := h.Store.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, data.ErrInvalidCredentials) {
			slog.Info("login rejected", "email", payload.Email, "ip", shared.ClientIP(r))
		}
		shared.WriteError(w, r, err)
		return
	}
	h.issue(w, r, user, http.StatusOK)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var payload data.RegisterInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := validation.New()
	v.Required("firstName", payload.FirstName)
	v.Required("lastName", payload.LastName)
	v.Email("email", payload.Email)
	if v.Required("password", payload.Password) {
		v.MinLength("password", payload.Password, minPassword)
	}
	if api.Reject(w, v, middleware.GetRequestID(r.Context())) {
		return
	}

	user, err := h.Store.Register(payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.issue(w, r, user, http.StatusCreated)
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request, user auth.User, status int) {
	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.DisplayName(),
	}, h.TTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "Server error", middleware.GetRequestID(r.Context()))
		return
	}
	api.WriteJSON(w, status, api.Envelope{
		Success:   true,
		Data:      auth.AuthResult{Token: token, User: user},
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	user, err := h.Store.Profile(p)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

// HandleUpdateProfile accepts either a JSON body or a multipart form whose
// avatar part replaces the profile image.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	reqID := middleware.GetRequestID(r.Context())

	var payload data.ProfileInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxAvatarBytes + 1<<20); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart form", reqID)
			return
		}
		payload.FirstName = r.FormValue("firstName")
		payload.LastName = r.FormValue("lastName")
		payload.Phone = r.FormValue("phone")
		payload.Department = r.FormValue("department")
		payload.Position = r.FormValue("position")

		if _, header, err := r.FormFile(avatarField); err == nil {
			v := validation.New()
			v.ContentType(avatarField, header.Header.Get("Content-Type"), "image/")
			v.SizeBelow(avatarField, header.Size, maxAvatarBytes)
			if api.Reject(w, v, reqID) {
				return
			}
			payload.ProfileImage = "/uploads/avatars/" + uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
		}
	} else if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	user, err := h.Store.UpdateProfile(p, payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, user, reqID)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	var payload changePasswordRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := validation.New()
	v.Required("currentPassword", payload.CurrentPassword)
	if v.Required("newPassword", payload.NewPassword) {
		v.MinLength("newPassword", payload.NewPassword, minPassword)
	}
	if api.Reject(w, v, middleware.GetRequestID(r.Context())) {
		return
	}
	if err := h.Store.ChangePassword(p, payload.CurrentPassword, payload.NewPassword); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"message": "Password updated successfully"}, middleware.GetRequestID(r.Context()))
}

// HandleLogout is stateless; tokens simply expire.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"message": "Logged out successfully"}, middleware.GetRequestID(r.Context()))
}
