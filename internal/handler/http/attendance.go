package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/presenzeapp/presenze-backend-go/internal/domain/attendance"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/middleware"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/response"
	attendanceservice "github.com/presenzeapp/presenze-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendanceservice.Service
}

func NewAttendanceHandler(attendanceService *attendanceservice.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler. An absent timestamp means "now";
// offline replays carry the original device timestamp.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCheck(w, r)
	if !ok {
		return
	}

	rec, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", rec)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCheck(w, r)
	if !ok {
		return
	}

	rec, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", rec)
}

// Edit implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	var req attendance.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Edit attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.Edit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record updated", rec)
}

// ListMy implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "from must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "to must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	records, err := h.attendanceService.ListRange(r.Context(), middleware.EmployeeID(r.Context()), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *AttendanceHandlerImpl) decodeCheck(w http.ResponseWriter, r *http.Request) (attendance.CheckRequest, bool) {
	var req attendance.CheckRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("attendance check decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return req, false
		}
	}
	req.EmployeeID = middleware.EmployeeID(r.Context())
	if req.Timestamp == "" {
		req.Timestamp = time.Now().Format(time.RFC3339)
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}

	return req, true
}
