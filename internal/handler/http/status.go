package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/response"
	statusservice "github.com/presenzeapp/presenze-backend-go/internal/service/status"
)

type StatusHandler interface {
	GetDay(w http.ResponseWriter, r *http.Request)
	GetRange(w http.ResponseWriter, r *http.Request)
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
}

type StatusHandlerImpl struct {
	resolver *statusservice.Resolver
}

func NewStatusHandler(resolver *statusservice.Resolver) StatusHandler {
	return &StatusHandlerImpl{resolver: resolver}
}

// GetDay implements StatusHandler.
func (h *StatusHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	day, err := h.resolver.ResolveDayStatus(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// GetRange implements StatusHandler.
func (h *StatusHandlerImpl) GetRange(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

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
	if to.Before(from) {
		response.BadRequest(w, "to must not precede from", nil)
		return
	}

	days, err := h.resolver.ResolveRange(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

// GetMonthlySummary implements StatusHandler.
func (h *StatusHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "month must be between 1 and 12", nil)
		return
	}

	summary, err := h.resolver.SummarizeMonth(r.Context(), employeeID, year, time.Month(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
