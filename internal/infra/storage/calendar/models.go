package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/dormclub/ReservationService/internal/domain"
)

// rulesJSON сериализует domain.Rules в JSONB колонку и обратно
type rulesJSON struct {
	Rules domain.Rules
}

type rulesPayload struct {
	NightTime                    bool `json:"night_time"`
	ReservationWithoutPermission bool `json:"reservation_without_permission"`
	MaxReservationHours          int  `json:"max_reservation_hours"`
	InAdvanceHours               int  `json:"in_advance_hours"`
	InAdvanceMinutes             int  `json:"in_advance_minutes"`
	InPriorDays                  int  `json:"in_prior_days"`
}

// Value реализует driver.Valuer
func (r rulesJSON) Value() (driver.Value, error) {
	return json.Marshal(rulesPayload{
		NightTime:                    r.Rules.NightTime,
		ReservationWithoutPermission: r.Rules.ReservationWithoutPermission,
		MaxReservationHours:          r.Rules.MaxReservationHours,
		InAdvanceHours:               r.Rules.InAdvanceHours,
		InAdvanceMinutes:             r.Rules.InAdvanceMinutes,
		InPriorDays:                  r.Rules.InPriorDays,
	})
}

// Scan реализует sql.Scanner
func (r *rulesJSON) Scan(src interface{}) error {
	if src == nil {
		r.Rules = domain.Rules{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("calendar.repository: cannot scan rules from %T", src)
	}

	var payload rulesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("calendar.repository: unmarshal rules: %w", err)
	}

	r.Rules = domain.Rules{
		NightTime:                    payload.NightTime,
		ReservationWithoutPermission: payload.ReservationWithoutPermission,
		MaxReservationHours:          payload.MaxReservationHours,
		InAdvanceHours:               payload.InAdvanceHours,
		InAdvanceMinutes:             payload.InAdvanceMinutes,
		InPriorDays:                  payload.InPriorDays,
	}
	return nil
}
