package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/scheduling"
	createBooking "github.com/m04kA/SBP-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidRecurrenceEnd = "некорректный формат даты окончания повторения, ожидается YYYY-MM-DD"
	msgInvalidRecurrence    = "некорректное правило повторения"
	msgOutsideWorkingHours  = "время вне рабочих часов сотрудника"
	msgStaffOnTimeOff       = "сотрудник недоступен в выбранное время"
	msgSlotConflict         = "выбранный временной слот уже занят"
	msgAllOccurrencesFailed = "все вхождения серии отклонены"
	msgPastDate             = "нельзя создать бронирование на прошедшую дату"
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgCustomerNotFound     = "клиент не найден"
	msgServiceNotProvided   = "сотрудник не оказывает выбранную услугу"
	msgStaffInactive        = "сотрудник не принимает записи"
	msgDirectoryUnavailable = "справочник временно недоступен"
	msgInvalidRequest       = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(callerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		switch {
		case errors.Is(err, errInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, errInvalidRecurrenceEndDate):
			handlers.RespondBadRequest(w, msgInvalidRecurrenceEnd)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: staff_id=%s, date=%s, time=%s",
				req.StaffID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, scheduling.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: staff_id=%s, date=%s, time=%s",
				req.StaffID, req.Date, req.Time)
			handlers.RespondConflict(w, msgOutsideWorkingHours)

		case errors.Is(err, scheduling.ErrStaffOnTimeOff):
			h.logger.Warn("POST /bookings - Staff on time off: staff_id=%s, date=%s", req.StaffID, req.Date)
			handlers.RespondConflict(w, msgStaffOnTimeOff)

		case errors.Is(err, createBooking.ErrNoAvailableOccurrences):
			h.logger.Warn("POST /bookings - All occurrences rejected: staff_id=%s, date=%s", req.StaffID, req.Date)
			handlers.RespondConflict(w, msgAllOccurrencesFailed)

		case errors.Is(err, scheduling.ErrInvalidRecurrence):
			h.logger.Warn("POST /bookings - Invalid recurrence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Past booking date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: caller_id=%s", callerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrServiceNotProvidedByStaff):
			h.logger.Warn("POST /bookings - Service not provided by staff: staff_id=%s, service_id=%s",
				req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, createBooking.ErrStaffInactive):
			h.logger.Warn("POST /bookings - Staff inactive: staff_id=%s", req.StaffID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, createBooking.ErrDirectoryUnavailable):
			h.logger.Error("POST /bookings - Directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: caller_id=%s, staff_id=%s, error=%v",
				callerID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Bookings created successfully: caller_id=%s, staff_id=%s, created=%d, rejected=%d",
		callerID, req.StaffID, len(result.Bookings), len(result.Rejected))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
