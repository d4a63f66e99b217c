package create_event

import (
	"fmt"
	"strings"

	"github.com/dormclub/ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CalendarID == "" {
		return fmt.Errorf("%w: calendarID is required", ErrInvalidInput)
	}

	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}
	if len([]rune(purpose)) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose must be at most %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	if req.Guests < 1 {
		return fmt.Errorf("%w: guests must be at least 1", ErrInvalidInput)
	}

	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	return nil
}

// validateMiniServices проверяет, что все запрошенные мини-сервисы
// доступны на календаре
func validateMiniServices(requested, available []string) error {
	for _, name := range requested {
		found := false
		for _, candidate := range available {
			if candidate == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrMiniServiceNotFound, name)
		}
	}
	return nil
}
