package leavehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/leave"
	"hrportal/internal/mockbackend/data"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Store *data.Store
}

func NewHandler(store *data.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/my-leaves", h.handleMine)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Put("/{leaveID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Put("/{leaveID}/status", h.handleStatus)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Delete("/{leaveID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Store.ListLeaves(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	leaves, err := h.Store.MyLeaves(p)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, leaves, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	var payload leave.Request
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	created, err := h.Store.CreateLeave(p, payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	var payload leave.Request
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	updated, err := h.Store.UpdateLeave(p, chi.URLParam(r, "leaveID"), payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	var payload leave.StatusChange
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	updated, err := h.Store.SetLeaveStatus(p, chi.URLParam(r, "leaveID"), payload.Status)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteLeave(p, chi.URLParam(r, "leaveID")); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"message": "Leave request deleted"}, middleware.GetRequestID(r.Context()))
}
