package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/domain/trip"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/middleware"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/response"
	tripservice "github.com/presenzeapp/presenze-backend-go/internal/service/trip"
)

type TripHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type TripHandlerImpl struct {
	tripService *tripservice.Service
}

func NewTripHandler(tripService *tripservice.Service) TripHandler {
	return &TripHandlerImpl{tripService: tripService}
}

// Create implements TripHandler.
func (h *TripHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req trip.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create trip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeID(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.tripService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Business trip submitted", created)
}

// ListMy implements TripHandler.
func (h *TripHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	var statusFilter *trip.Status
	if s := r.URL.Query().Get("status"); s != "" {
		ts := trip.Status(s)
		statusFilter = &ts
	}

	trips, err := h.tripService.List(r.Context(), middleware.EmployeeID(r.Context()), statusFilter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, trips)
}

// Approve implements TripHandler.
func (h *TripHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "id")
	if tripID == "" {
		response.BadRequest(w, "Business trip ID is required", nil)
		return
	}

	approved, err := h.tripService.Approve(r.Context(), tripID, middleware.EmployeeID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip approved", approved)
}

// Reject implements TripHandler.
func (h *TripHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req trip.RejectTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject trip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rejected, err := h.tripService.Reject(r.Context(), req, middleware.EmployeeID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip rejected", rejected)
}
