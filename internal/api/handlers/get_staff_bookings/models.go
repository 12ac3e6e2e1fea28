package get_staff_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	staffID string,
	callerID string,
	dateStr string,
	includeInactiveStr string,
) (*models.GetStaffDayRequest, error) {
	// Дата обязательна: эндпоинт отдает календарь на один день
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date value: %w", err)
	}

	req := &models.GetStaffDayRequest{
		StaffID:         staffID,
		CallerID:        callerID,
		Date:            date,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
