package get_host_bookings

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	bookingModels "github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
)

// ToServiceRequest собирает модель сервиса из path и query параметров
// Даты - YYYY-MM-DD, конец периода включает весь указанный день
func ToServiceRequest(hostID int64, startDateStr, endDateStr, statusStr, includeCancelledStr string) (*bookingModels.GetHostBookingsRequest, error) {
	req := &bookingModels.GetHostBookingsRequest{
		HostID: hostID,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		endOfDay := endDate.AddDate(0, 0, 1)
		req.EndDate = &endOfDay
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
