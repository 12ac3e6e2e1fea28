package list_time_off

import (
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Времена периода передаются в формате RFC 3339.
func ToServiceRequest(callerID, staffIDStr, fromStr, toStr string) (*models.ListTimeOffRequest, error) {
	req := &models.ListTimeOffRequest{
		CallerID: callerID,
	}

	if staffIDStr != "" {
		req.StaffID = &staffIDStr
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	return req, nil
}
