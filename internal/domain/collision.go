package domain

// DetectCollision decides whether the requested interval conflicts with
// existing reservations on the calendar or on any calendar of its collision
// group. existingByCalendar holds, per calendar id of the group, the
// reservations already recorded in the window of interest (supplied by the
// external scheduling collaborator).
//
// The policy is count sensitive, not a plain any-overlap test:
//   - without self collision allowance, more than MaxPeople concurrent
//     reservations on the calendar itself make the slot unavailable;
//   - an empty gathered set is free;
//   - two or more gathered reservations always conflict;
//   - a single gathered reservation conflicts unless it is exactly
//     back-to-back with the request.
func DetectCollision(calendar *Calendar, requested Interval, existingByCalendar map[string][]Interval) bool {
	var gathered []Interval
	for _, calendarID := range calendar.CollisionGroup() {
		gathered = append(gathered, existingByCalendar[calendarID]...)
	}

	if !calendar.CollisionWithItself {
		if len(existingByCalendar[calendar.ID]) > calendar.MaxPeople {
			return true
		}
	}

	switch len(gathered) {
	case 0:
		return false
	case 1:
		// Exact adjacency is the only permitted touch.
		return !gathered[0].BackToBack(requested)
	default:
		return true
	}
}
