package delete_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff"
	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff/models"
)

const (
	msgInvalidTimeOffID = "некорректный ID отгула"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "отгул не найден"
	msgForbidden        = "доступ запрещен"
	msgDirectoryDown    = "справочник временно недоступен"
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

// Handle DELETE /api/v1/time-off/{timeOffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем timeOffId из URL
	vars := mux.Vars(r)
	timeOffIDStr := vars["timeOffId"]

	timeOffID, err := strconv.ParseInt(timeOffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-off/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /time-off/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем запись (сервис сам проверит права администратора)
	serviceReq := &models.DeleteTimeOffRequest{CallerID: callerID}
	if err := h.service.Delete(r.Context(), timeOffID, serviceReq); err != nil {
		switch {
		case errors.Is(err, timeoff.ErrTimeOffNotFound):
			h.logger.Warn("DELETE /time-off/{id} - Time off not found: time_off_id=%d", timeOffID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeoff.ErrAccessDenied):
			h.logger.Warn("DELETE /time-off/{id} - Access denied: time_off_id=%d, caller_id=%s",
				timeOffID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timeoff.ErrDirectoryUnavailable):
			h.logger.Error("DELETE /time-off/{id} - Directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryDown)

		default:
			h.logger.Error("DELETE /time-off/{id} - Failed to delete time off: time_off_id=%d, error=%v",
				timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /time-off/{id} - Time off deleted successfully: time_off_id=%d, caller_id=%s",
		timeOffID, callerID)
	handlers.RespondNoContent(w)
}
