package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainqueue "github.com/presenzeapp/presenze-backend-go/internal/domain/queue"
	"github.com/presenzeapp/presenze-backend-go/internal/handler/http/response"
	"github.com/presenzeapp/presenze-backend-go/internal/pkg/validator"
	"github.com/presenzeapp/presenze-backend-go/internal/queue"
)

type QueueHandler interface {
	Enqueue(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	TriggerDrain(w http.ResponseWriter, r *http.Request)
	Connectivity(w http.ResponseWriter, r *http.Request)
}

type QueueHandlerImpl struct {
	queue   *queue.Queue
	watcher *queue.Watcher
}

func NewQueueHandler(q *queue.Queue, watcher *queue.Watcher) QueueHandler {
	return &QueueHandlerImpl{queue: q, watcher: watcher}
}

type enqueueRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Enqueue implements QueueHandler. Clients that performed a mutation while
// offline hand it over here for durable replay.
func (h *QueueHandlerImpl) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Enqueue decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !validator.IsInSlice(req.Type, domainqueue.OperationTypeValues) {
		response.HandleError(w, domainqueue.ErrUnknownOperationType)
		return
	}

	id, err := h.queue.Enqueue(domainqueue.OperationType(req.Type), req.Payload)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Operation queued", map[string]string{"operation_id": id})
}

// Pending implements QueueHandler.
func (h *QueueHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"pending": h.queue.Pending(),
		"count":   h.queue.Len(),
		"online":  h.watcher.Online(),
	})
}

// TriggerDrain implements QueueHandler. The drain runs asynchronously;
// subscribers of the queue topic observe its progress.
func (h *QueueHandlerImpl) TriggerDrain(w http.ResponseWriter, r *http.Request) {
	h.watcher.TriggerDrain()
	response.SuccessWithMessage(w, "Drain triggered", nil)
}

type connectivityRequest struct {
	Online bool `json:"online"`
}

// Connectivity implements QueueHandler. Clients report connectivity
// transitions; a restore arms the debounced drain trigger.
func (h *QueueHandlerImpl) Connectivity(w http.ResponseWriter, r *http.Request) {
	var req connectivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Connectivity decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.Online {
		h.watcher.NotifyOnline()
	} else {
		h.watcher.NotifyOffline()
	}

	response.SuccessWithMessage(w, "Connectivity state recorded", nil)
}
