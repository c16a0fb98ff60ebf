package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/phone"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, phoneRegion string) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	if err := req.SlotTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid slotTime: %v", ErrInvalidInput, err)
	}

	if req.Mode != "" && !req.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	seen := make(map[string]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty service id", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate service id %q", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is longer than %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if !phone.IsValid(req.CustomerPhone, phoneRegion) {
		return fmt.Errorf("%w: invalid customerPhone", ErrInvalidInput)
	}

	return nil
}

// resolveServices находит услуги провайдера в порядке запроса
func resolveServices(p *domain.Provider, ids []string) ([]domain.Service, error) {
	services := make([]domain.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := p.FindService(id)
		if !ok {
			return nil, fmt.Errorf("%w: id=%s", ErrServiceNotFound, id)
		}
		services = append(services, s)
	}
	return services, nil
}

func derefAppointments(items []*domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(items))
	for _, a := range items {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}
