package get_staff_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	getStaffAvailability "github.com/m04kA/SBP-SchedulingService/internal/usecase/get_staff_availability"
)

const (
	msgMissingServiceID     = "ID услуги обязателен"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest       = "некорректные параметры запроса"
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceNotProvided   = "сотрудник не оказывает выбранную услугу"
	msgDirectoryUnavailable = "справочник сотрудников временно недоступен"
)

type Handler struct {
	useCase GetStaffAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetStaffAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID := vars["staffId"]

	// Извлекаем serviceId из query параметров
	serviceID := r.URL.Query().Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /staff/{staffId}/availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{staffId}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(staffID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getStaffAvailability.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{staffId}/availability - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getStaffAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /staff/{staffId}/availability - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getStaffAvailability.ErrServiceNotProvidedByStaff):
			h.logger.Warn("GET /staff/{staffId}/availability - Service not provided by staff: staff_id=%s, service_id=%s",
				staffID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, getStaffAvailability.ErrDirectoryUnavailable):
			h.logger.Error("GET /staff/{staffId}/availability - Staff directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryUnavailable)

		case errors.Is(err, getStaffAvailability.ErrInvalidInput):
			h.logger.Warn("GET /staff/{staffId}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /staff/{staffId}/availability - Failed to get availability: staff_id=%s, service_id=%s, error=%v",
				staffID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /staff/{staffId}/availability - Availability retrieved successfully: staff_id=%s, service_id=%s, slots_count=%d",
		staffID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
