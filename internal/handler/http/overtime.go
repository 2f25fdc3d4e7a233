package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/overtime"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/middleware"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/response"
	overtimeservice "github.com/presenzeapp/presenze-backend-go/internal/service/overtime"
)

type OvertimeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	overtimeService *overtimeservice.Service
}

func NewOvertimeHandler(overtimeService *overtimeservice.Service) OvertimeHandler {
	return &OvertimeHandlerImpl{overtimeService: overtimeService}
}

// Create implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req overtime.CreateOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeID(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.overtimeService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime entry submitted", created)
}

// ListMy implements OvertimeHandler.
func (h *OvertimeHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	var statusFilter *overtime.Status
	if s := r.URL.Query().Get("status"); s != "" {
		os := overtime.Status(s)
		statusFilter = &os
	}

	entries, err := h.overtimeService.List(r.Context(), middleware.EmployeeID(r.Context()), statusFilter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Approve implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		response.BadRequest(w, "Overtime entry ID is required", nil)
		return
	}

	approved, err := h.overtimeService.Approve(r.Context(), entryID, middleware.EmployeeID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime entry approved", approved)
}

// Reject implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		response.BadRequest(w, "Overtime entry ID is required", nil)
		return
	}

	rejected, err := h.overtimeService.Reject(r.Context(), entryID, middleware.EmployeeID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime entry rejected", rejected)
}

// Delete implements OvertimeHandler. Removing an automatic entry unblocks a
// manual submission for the same day.
func (h *OvertimeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		response.BadRequest(w, "Overtime entry ID is required", nil)
		return
	}

	if err := h.overtimeService.Remove(r.Context(), entryID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime entry deleted", nil)
}
