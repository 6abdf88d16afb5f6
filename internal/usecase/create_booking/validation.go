package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

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

	if err := validateCustomer(&req.Customer); err != nil {
		return err
	}

	return nil
}

// validateCustomer проверяет контактные данные клиента
// Планировщик не интерпретирует их, но пустые и неправдоподобные отвергает
func validateCustomer(c *domain.Customer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customer email exceeds %d characters", ErrInvalidInput, domain.MaxCustomerEmailLength)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: customer email is malformed", ErrInvalidInput)
	}

	if c.Company != nil && len(*c.Company) > domain.MaxCustomerCompanyLength {
		return fmt.Errorf("%w: customer company exceeds %d characters", ErrInvalidInput, domain.MaxCustomerCompanyLength)
	}

	return nil
}

// validateWindow проверяет окно против типа встречи и текущего времени
// Длина окна должна совпадать с длительностью типа встречи
func validateWindow(req *Request, appointmentType *domain.AppointmentType, now time.Time) error {
	if !req.WindowStart.After(now) {
		return fmt.Errorf("%w: window start must be in the future", ErrInvalidInput)
	}

	windowMinutes := int(req.WindowEnd.Sub(req.WindowStart) / time.Minute)
	if windowMinutes != appointmentType.DurationMinutes {
		return fmt.Errorf("%w: window is %d minutes, appointment type %q requires %d",
			ErrInvalidInput, windowMinutes, appointmentType.Name, appointmentType.DurationMinutes)
	}

	return nil
}
