package payrollhandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/mockbackend/data"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
	"hrportal/internal/validation"
)

type Handler struct {
	Store *data.Store
}

func NewHandler(store *data.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payrolls", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/employee/{employeeID}", h.handleEmployee)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/{payrollID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermPayrollRun)).Post("/", h.handleGenerate)
		r.With(middleware.RequirePermission(auth.PermPayrollRun)).Put("/{payrollID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	v := validation.New()
	filter := payroll.Filter{
		Month: queryInt(v, "month", q.Get("month")),
		Year:  queryInt(v, "year", q.Get("year")),
	}
	if api.Reject(w, v, middleware.GetRequestID(r.Context())) {
		return
	}
	records, err := h.Store.ListPayrolls(p, filter)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func queryInt(v *validation.Validator, field, raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(field, "must be a number")
		return 0
	}
	return n
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	records, err := h.Store.EmployeePayrolls(p, chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	rec, err := h.Store.GetPayroll(p, chi.URLParam(r, "payrollID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload payroll.GenerateRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	records, err := h.Store.GeneratePayroll(payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Created(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload payroll.Patch
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	rec, err := h.Store.UpdatePayroll(chi.URLParam(r, "payrollID"), payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}
