package check_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.HostID <= 0 {
		return fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	if req.AppointmentTypeID <= 0 {
		return fmt.Errorf("%w: appointmentTypeID must be positive", ErrInvalidInput)
	}

	if req.WindowStart.IsZero() || req.WindowEnd.IsZero() {
		return fmt.Errorf("%w: window start and end are required", ErrInvalidInput)
	}

	if !req.WindowEnd.After(req.WindowStart) {
		return fmt.Errorf("%w: window end must be after window start", ErrInvalidInput)
	}

	return nil
}
