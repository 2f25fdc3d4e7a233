package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/response"
	sickleaveservice "github.com/presenzeapp/presenze-backend-go/internal/service/sickleave"
)

type SickLeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type SickLeaveHandlerImpl struct {
	sickLeaveService *sickleaveservice.Service
}

func NewSickLeaveHandler(sickLeaveService *sickleaveservice.Service) SickLeaveHandler {
	return &SickLeaveHandlerImpl{sickLeaveService: sickLeaveService}
}

// Create implements SickLeaveHandler. Sick leaves are recorded by an admin
// on the employee's behalf, so the target employee comes from the body.
func (h *SickLeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req sickleave.CreateSickLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create sick leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.sickLeaveService.Record(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sick leave recorded", created)
}

// List implements SickLeaveHandler.
func (h *SickLeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	leaves, err := h.sickLeaveService.List(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}

// Delete implements SickLeaveHandler.
func (h *SickLeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Sick leave ID is required", nil)
		return
	}

	if err := h.sickLeaveService.Remove(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sick leave deleted", nil)
}
