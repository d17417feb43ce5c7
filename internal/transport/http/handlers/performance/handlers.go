package performancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/performance"
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
	r.Route("/performance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceReview)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPerformanceRead)).Get("/my-reviews", h.handleMine)
		r.With(middleware.RequirePermission(auth.PermPerformanceReview)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermPerformanceReview)).Patch("/{reviewID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Store.ListReviews(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	reviews, err := h.Store.MyReviews(p)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, reviews, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	var payload performance.Input
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	review, err := h.Store.CreateReview(p, payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Created(w, review, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload performance.Input
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	review, err := h.Store.UpdateReview(chi.URLParam(r, "reviewID"), payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, review, middleware.GetRequestID(r.Context()))
}
