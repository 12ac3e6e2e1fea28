package get_combined_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	getCombinedAvailability "github.com/m04kA/SBP-SchedulingService/internal/usecase/get_combined_availability"
)

const (
	msgMissingServiceID     = "ID услуги обязателен"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest       = "некорректные параметры запроса"
	msgServiceNotFound      = "услуга не найдена"
	msgDirectoryUnavailable = "справочник сотрудников временно недоступен"
)

type Handler struct {
	useCase GetCombinedAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetCombinedAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из query параметров
	serviceID := r.URL.Query().Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCombinedAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getCombinedAvailability.ErrDirectoryUnavailable):
			h.logger.Error("GET /availability - Staff directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryUnavailable)

		case errors.Is(err, getCombinedAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /availability - Failed to get availability: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Combined availability retrieved successfully: service_id=%s, slots_count=%d",
		serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
