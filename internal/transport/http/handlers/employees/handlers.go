package employeehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/employee"
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

// RegisterRoutes expects r to be behind the auth middleware. Listing is open
// to every role; compensation fields are redacted per caller.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	api.Success(w, h.Store.ListEmployees(p), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	emp, err := h.Store.GetEmployee(p, chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func validateEmployee(v *validation.Validator, payload data.EmployeeInput, creating bool) {
	if creating {
		v.Required("firstName", payload.FirstName)
		v.Required("lastName", payload.LastName)
		v.Email("email", payload.Email)
	} else if payload.Email != "" {
		v.Email("email", payload.Email)
	}
	v.Enum("status", payload.Status, employee.Statuses)
	if payload.HireDate != "" {
		v.Date("hireDate", payload.HireDate)
	}
	if payload.Salary != nil && payload.Salary.IsNegative() {
		v.Add("salary", "must not be negative")
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload data.EmployeeInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := validation.New()
	validateEmployee(v, payload, true)
	if api.Reject(w, v, middleware.GetRequestID(r.Context())) {
		return
	}
	emp, err := h.Store.CreateEmployee(payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload data.EmployeeInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := validation.New()
	validateEmployee(v, payload, false)
	if api.Reject(w, v, middleware.GetRequestID(r.Context())) {
		return
	}
	emp, err := h.Store.UpdateEmployee(chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEmployee(chi.URLParam(r, "employeeID")); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"message": "Employee removed"}, middleware.GetRequestID(r.Context()))
}
