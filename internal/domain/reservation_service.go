package domain

import "time"

// ReservationService represents one reservable area of the club (game room,
// grill spot, study room). Calendars belong to exactly one service; the
// service lifecycle governs calendar creation and removal.
type ReservationService struct {
	ID          int64
	Name        string // unique display name
	Alias       string // unique alias; doubles as the manager role and the membership entitlement key
	Public      bool
	Web         *string
	ContactMail string

	// Access-control system wiring: reader group and room of the area.
	AccessGroup *string
	RoomID      *int64
	LockersID   []int64

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRemoved reports whether the service has been soft deleted.
func (s *ReservationService) IsRemoved() bool {
	return s.DeletedAt != nil
}

// MiniService represents an optional extra bookable together with an event
// (projector, bar table, console), owned by one reservation service.
type MiniService struct {
	ID                   int64
	Name                 string
	AccessGroup          *string
	RoomID               *int64
	LockersID            []int64
	ReservationServiceID int64

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
