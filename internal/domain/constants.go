package domain

import "time"

// Day window for regular (non night) reservations, in the local time of the club.
const (
	DayWindowOpenHour  = 8
	DayWindowCloseHour = 22
)

// Time format constants
const (
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // naive local datetime, no zone
)

// MaxPurposeLength ограничение длины поля "цель бронирования"
const MaxPurposeLength = 40

// ActiveStates список состояний, в которых событие занимает слот календаря
var ActiveStates = []EventState{
	StateNotApproved,
	StateUpdateRequested,
	StateConfirmed,
}

// dayWindowOpen возвращает границу начала дневного окна для даты t
func dayWindowOpen(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), DayWindowOpenHour, 0, 0, 0, t.Location())
}

// dayWindowClose возвращает границу конца дневного окна для даты t
func dayWindowClose(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), DayWindowCloseHour, 0, 0, 0, t.Location())
}
