package create_time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff"
)

const (
	msgInvalidBody    = "некорректное тело запроса"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgStaffNotFound  = "сотрудник не найден"
	msgForbidden      = "доступ запрещен"
	msgInvalidTimeOff = "некорректные параметры отгула"
	msgDirectoryDown  = "справочник временно недоступен"
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

// Handle POST /api/v1/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /time-off - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Создаем запись (сервис сам проверит права администратора)
	timeOff, err := h.service.Create(r.Context(), req.ToServiceRequest(callerID))
	if err != nil {
		switch {
		case errors.Is(err, timeoff.ErrStaffNotFound):
			h.logger.Warn("POST /time-off - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, timeoff.ErrAccessDenied):
			h.logger.Warn("POST /time-off - Access denied: caller_id=%s", callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timeoff.ErrInvalidInput):
			h.logger.Warn("POST /time-off - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeOff)

		case errors.Is(err, timeoff.ErrDirectoryUnavailable):
			h.logger.Error("POST /time-off - Directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryDown)

		default:
			h.logger.Error("POST /time-off - Failed to create time off: staff_id=%s, error=%v",
				req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-off - Time off created successfully: id=%d, staff_id=%s, caller_id=%s",
		timeOff.ID, timeOff.StaffID, callerID)
	handlers.RespondJSON(w, http.StatusCreated, timeOff)
}
