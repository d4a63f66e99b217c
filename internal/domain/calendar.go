package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCalendar возвращается при недопустимых значениях календаря
var ErrInvalidCalendar = errors.New("domain: invalid calendar")

// DefaultCalendarColor цвет календаря по умолчанию
const DefaultCalendarColor = "#05baf5"

// Calendar represents one bookable resource stream of a reservation service:
// the game room, the grill spot, a study room. Its identity is the identifier
// of the backing calendar in the external scheduling system.
type Calendar struct {
	ID              string
	ReservationType string // unique display label, e.g. "Grill"
	Color           string
	MaxPeople       int

	// MoreThanMaxPeopleWithPermission allows reservations above MaxPeople;
	// such reservations are created unapproved and wait for a manager.
	// When false the guest count is a hard cap.
	MoreThanMaxPeopleWithPermission bool

	// CollisionWithItself allows several reservations to coexist on this
	// calendar, up to MaxPeople concurrent events. When false any overlap
	// on the calendar itself blocks a new reservation.
	CollisionWithItself bool

	// CollisionWithCalendar lists other calendar ids whose reservations
	// also block this calendar. The administrative layer keeps the
	// relation symmetric; the evaluator only consumes the resolved set.
	CollisionWithCalendar []string

	MiniServices []string

	// Per-tier reservation policies.
	ClubMemberRules   Rules
	ActiveMemberRules Rules
	ManagerRules      Rules

	ReservationServiceID int64

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the Calendar invariants.
func (c *Calendar) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCalendar)
	}
	if c.ReservationType == "" {
		return fmt.Errorf("%w: reservationType is required", ErrInvalidCalendar)
	}
	if c.MaxPeople < 1 {
		return fmt.Errorf("%w: maxPeople must be >= 1, got %d", ErrInvalidCalendar, c.MaxPeople)
	}
	for _, rules := range []Rules{c.ClubMemberRules, c.ActiveMemberRules, c.ManagerRules} {
		if err := rules.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RulesFor returns the policy applicable to the given tier.
func (c *Calendar) RulesFor(tier Tier) Rules {
	switch tier {
	case TierManager:
		return c.ManagerRules
	case TierActiveMember:
		return c.ActiveMemberRules
	default:
		return c.ClubMemberRules
	}
}

// CollisionGroup returns the calendar ids whose reservations are checked
// together for overlap: the calendar itself plus its declared collisions.
func (c *Calendar) CollisionGroup() []string {
	group := make([]string, 0, len(c.CollisionWithCalendar)+1)
	group = append(group, c.ID)
	group = append(group, c.CollisionWithCalendar...)
	return group
}

// CollidesWith reports whether the given calendar id is part of the
// declared collision set.
func (c *Calendar) CollidesWith(calendarID string) bool {
	for _, id := range c.CollisionWithCalendar {
		if id == calendarID {
			return true
		}
	}
	return false
}

// IsRemoved reports whether the calendar has been soft deleted.
func (c *Calendar) IsRemoved() bool {
	return c.DeletedAt != nil
}
