package attendancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/attendance"
	"hrportal/internal/domain/auth"
	"hrportal/internal/mockbackend/data"
	"hrportal/internal/requestctx"
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
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAttendanceRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAttendanceRead)).Get("/my-attendance", h.handleMine)
		r.With(middleware.RequirePermission(auth.PermAttendanceWrite)).Post("/check-in", h.handlePunch(h.Store.CheckIn))
		r.With(middleware.RequirePermission(auth.PermAttendanceWrite)).Post("/check-out", h.handlePunch(h.Store.CheckOut))
		r.With(middleware.RequirePermission(auth.PermAttendanceManage)).Put("/{recordID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	listing, err := h.Store.ListAttendance(p)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, listing, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	records, err := h.Store.MyAttendance(p)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

type punchFunc func(requestctx.Principal, string) (attendance.Record, error)

func (h *Handler) handlePunch(punch punchFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := shared.Caller(w, r)
		if !ok {
			return
		}
		var payload attendance.Punch
		if !shared.DecodeOptionalJSON(w, r, &payload) {
			return
		}
		rec, err := punch(p, payload.Notes)
		if err != nil {
			shared.WriteError(w, r, err)
			return
		}
		api.Success(w, rec, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload attendance.Update
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	rec, err := h.Store.UpdateAttendance(chi.URLParam(r, "recordID"), payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}
