package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

const (
	maxServiceTypeLength    = 100
	maxServiceAddressLength = 500
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.ServiceType) > maxServiceTypeLength {
		return fmt.Errorf("%w: serviceType must not exceed %d characters", ErrInvalidInput, maxServiceTypeLength)
	}

	if strings.TrimSpace(req.ServiceAddress) == "" {
		return fmt.Errorf("%w: serviceAddress is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.ServiceAddress) > maxServiceAddressLength {
		return fmt.Errorf("%w: serviceAddress must not exceed %d characters", ErrInvalidInput, maxServiceAddressLength)
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if err := validateLocation(req.Longitude, req.Latitude); err != nil {
		return err
	}

	if req.ScheduledDate != nil && req.ScheduledDate.Before(now) {
		return ErrInvalidDate
	}

	return nil
}

// validateLocation координаты либо заданы обе и корректны, либо не заданы
func validateLocation(lon, lat *float64) error {
	if lon == nil && lat == nil {
		return nil
	}
	if lon == nil || lat == nil {
		return fmt.Errorf("%w: longitude and latitude must be set together", ErrInvalidInput)
	}

	point := domain.GeoPoint{Longitude: *lon, Latitude: *lat}
	if err := point.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
