package get_staff_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgForbidden      = "доступ запрещен"
	msgDirectoryDown  = "справочник временно недоступен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/bookings
// Query params: date (обязательно), includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем staffId из URL
	vars := mux.Vars(r)
	staffID := vars["staffId"]
	if staffID == "" {
		h.logger.Warn("GET /staff/{staffId}/bookings - Empty staff ID")
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /staff/{staffId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем query параметры
	dateStr := r.URL.Query().Get("date")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(staffID, callerID, dateStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем дневной календарь сотрудника (сервис сам проверит права доступа)
	result, err := h.service.GetStaffDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /staff/{staffId}/bookings - Access denied: staff_id=%s, caller_id=%s",
				staffID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrDirectoryUnavailable):
			h.logger.Error("GET /staff/{staffId}/bookings - Directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryDown)

		default:
			h.logger.Error("GET /staff/{staffId}/bookings - Failed to get bookings: staff_id=%s, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{staffId}/bookings - Bookings retrieved successfully: staff_id=%s, date=%s, count=%d",
		staffID, dateStr, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
