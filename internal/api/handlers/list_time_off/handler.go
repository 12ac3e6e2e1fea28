package list_time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
	msgDirectoryDown = "справочник временно недоступен"
)

type Handler struct {
	service TimeOffService
	logger  Logger
}

func NewHandler(service TimeOffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/time-off
// Query params: staffId, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /time-off - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	staffIDStr := r.URL.Query().Get("staffId")
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(callerID, staffIDStr, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /time-off - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем список отгулов (сервис сам проверит права администратора)
	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, timeoff.ErrAccessDenied):
			h.logger.Warn("GET /time-off - Access denied: caller_id=%s", callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timeoff.ErrInvalidInput):
			h.logger.Warn("GET /time-off - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, timeoff.ErrDirectoryUnavailable):
			h.logger.Error("GET /time-off - Directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryDown)

		default:
			h.logger.Error("GET /time-off - Failed to list time offs: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /time-off - Time offs retrieved successfully: count=%d, caller_id=%s",
		len(result.TimeOffs), callerID)
	handlers.RespondJSON(w, http.StatusOK, result.TimeOffs)
}
