package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgDirectoryDown     = "справочник временно недоступен"
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

// Handle GET /api/v1/customers/{customerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем customerId из URL
	vars := mux.Vars(r)
	customerID := vars["customerId"]
	if customerID == "" {
		h.logger.Warn("GET /customers/{customerId}/bookings - Empty customer ID")
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{customerId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetCustomerBookingsRequest{
		CustomerID: customerID,
		CallerID:   callerID,
		Status:     statusPtr,
	}

	// Получаем бронирования клиента (сервис сам проверит права доступа)
	result, err := h.service.GetCustomerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /customers/{customerId}/bookings - Access denied: customer_id=%s, caller_id=%s",
				customerID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/{customerId}/bookings - Invalid status filter: status=%s", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrDirectoryUnavailable):
			h.logger.Error("GET /customers/{customerId}/bookings - Directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryDown)

		default:
			h.logger.Error("GET /customers/{customerId}/bookings - Failed to get bookings: customer_id=%s, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{customerId}/bookings - Bookings retrieved successfully: customer_id=%s, count=%d",
		customerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
