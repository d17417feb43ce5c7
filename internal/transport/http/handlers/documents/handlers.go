package documenthandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/document"
	"hrportal/internal/mockbackend/data"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
	"hrportal/internal/validation"
)

const fileField = "file"

type Handler struct {
	Store    *data.Store
	MaxBytes int64
}

func NewHandler(store *data.Store, maxBytes int64) *Handler {
	return &Handler{Store: store, MaxBytes: maxBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDocumentsVerify)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermDocumentsRead)).Get("/my-documents", h.handleMine)
		r.With(middleware.RequirePermission(auth.PermDocumentsRead)).Get("/stats/overview", h.handleStats)
		r.With(middleware.RequirePermission(auth.PermDocumentsWrite)).Post("/", h.handleUpload)
		r.With(middleware.RequirePermission(auth.PermDocumentsWrite)).Patch("/{documentID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermDocumentsVerify)).Post("/{documentID}/verify", h.handleVerify)
		r.With(middleware.RequirePermission(auth.PermDocumentsWrite)).Delete("/{documentID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := document.Filter{Type: q.Get("type"), Status: q.Get("status")}
	api.Success(w, h.Store.ListDocuments(filter), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	docs, err := h.Store.MyDocuments(p)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	stats, err := h.Store.DocumentStats(p)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart form", reqID)
		return
	}
	file, header, err := r.FormFile(fileField)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "file_required", "No file uploaded", reqID)
		return
	}
	_ = file.Close()

	v := validation.New()
	if h.MaxBytes > 0 {
		v.SizeBelow(fileField, header.Size, h.MaxBytes+1)
	}
	if api.Reject(w, v, reqID) {
		return
	}

	doc, err := h.Store.UploadDocument(p, data.UploadInput{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Type:        r.FormValue("type"),
		Description: r.FormValue("description"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		FileSize:    header.Size,
	})
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Created(w, doc, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	var payload document.Patch
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	doc, err := h.Store.UpdateDocument(p, chi.URLParam(r, "documentID"), payload)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, doc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	doc, err := h.Store.VerifyDocument(p, chi.URLParam(r, "documentID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, doc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := shared.Caller(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteDocument(p, chi.URLParam(r, "documentID")); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"message": "Document deleted"}, middleware.GetRequestID(r.Context()))
}
