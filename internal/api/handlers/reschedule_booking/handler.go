package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SBP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/scheduling"
	rescheduleBooking "github.com/m04kA/SBP-SchedulingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgInvalidDate          = "некорректный формат новой даты, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат нового времени, ожидается HH:MM"
	msgBookingNotFound      = "бронирование не найдено"
	msgNotReschedulable     = "бронирование нельзя перенести в текущем статусе"
	msgOutsideWorkingHours  = "время вне рабочих часов сотрудника"
	msgStaffOnTimeOff       = "сотрудник недоступен в выбранное время"
	msgSlotConflict         = "выбранный временной слот уже занят"
	msgPastDate             = "нельзя перенести бронирование на прошедшую дату"
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceNotProvided   = "сотрудник не оказывает выбранную услугу"
	msgStaffInactive        = "сотрудник не принимает записи"
	msgDirectoryUnavailable = "справочник временно недоступен"
	msgInvalidRequest       = "некорректные параметры запроса"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(bookingID, callerID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/{id} - Slot conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, scheduling.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /bookings/{id} - Outside working hours: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgOutsideWorkingHours)

		case errors.Is(err, scheduling.ErrStaffOnTimeOff):
			h.logger.Warn("PATCH /bookings/{id} - Staff on time off: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgStaffOnTimeOff)

		case errors.Is(err, rescheduleBooking.ErrBookingNotReschedulable):
			h.logger.Warn("PATCH /bookings/{id} - Booking not reschedulable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, caller_id=%s",
				bookingID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrStaffNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Staff not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, rescheduleBooking.ErrServiceNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Service not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleBooking.ErrServiceNotProvidedByStaff):
			h.logger.Warn("PATCH /bookings/{id} - Service not provided by new staff: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, rescheduleBooking.ErrStaffInactive):
			h.logger.Warn("PATCH /bookings/{id} - New staff inactive: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/{id} - Past target date: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, rescheduleBooking.ErrDirectoryUnavailable):
			h.logger.Error("PATCH /bookings/{id} - Directory unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDirectoryUnavailable)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to reschedule booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /bookings/{id} - Booking rescheduled successfully: booking_id=%d, staff_id=%s, date=%s",
		bookingID, response.StaffID, response.BookingDate)
	handlers.RespondJSON(w, http.StatusOK, response)
}
