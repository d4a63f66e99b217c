package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormclub/ReservationService/internal/domain"
)

func setupMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewRepository(db)
	closer := func() { db.Close() }

	return repo, mock, closer
}

const testRulesJSON = `{"night_time":false,"reservation_without_permission":true,"max_reservation_hours":6,"in_advance_hours":24,"in_advance_minutes":0,"in_prior_days":14}`

func calendarRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(calendarColumns).
		AddRow("cal-grill", "Grill", "#05baf5", 8, false, false,
			"{cal-terrace}", "{bar_table}",
			testRulesJSON, testRulesJSON, testRulesJSON,
			int64(1), nil, now, now)
}

func TestCreate(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()

	mock.ExpectQuery("INSERT INTO calendars").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	calendar := &domain.Calendar{
		ID:                   "cal-grill",
		ReservationType:      "Grill",
		Color:                domain.DefaultCalendarColor,
		MaxPeople:            8,
		ReservationServiceID: 1,
	}

	created, err := repo.Create(context.Background(), calendar)
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
}

func TestGetByID(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM calendars WHERE id = .+ AND deleted_at IS NULL").
		WithArgs("cal-grill").
		WillReturnRows(calendarRow(now))

	calendar, err := repo.GetByID(context.Background(), "cal-grill", false)
	require.NoError(t, err)

	assert.Equal(t, "Grill", calendar.ReservationType)
	assert.Equal(t, []string{"cal-terrace"}, calendar.CollisionWithCalendar)
	assert.Equal(t, []string{"bar_table"}, calendar.MiniServices)
	assert.Equal(t, 6, calendar.ActiveMemberRules.MaxReservationHours)
	assert.Equal(t, 14, calendar.ActiveMemberRules.InPriorDays)
}

func TestGetByID_IncludeRemoved(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()
	removed := sqlmock.NewRows(calendarColumns).
		AddRow("cal-old", "Old grill", "#05baf5", 4, false, false,
			"{}", "{}", testRulesJSON, testRulesJSON, testRulesJSON,
			int64(1), now, now, now)

	// Без фильтра deleted_at IS NULL
	mock.ExpectQuery("SELECT .+ FROM calendars WHERE id = ").
		WithArgs("cal-old").
		WillReturnRows(removed)

	calendar, err := repo.GetByID(context.Background(), "cal-old", true)
	require.NoError(t, err)
	assert.True(t, calendar.IsRemoved())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .+ FROM calendars").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(calendarColumns))

	_, err := repo.GetByID(context.Background(), "missing", false)
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestGetByReservationServiceID(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM calendars WHERE reservation_service_id = .+ ORDER BY reservation_type ASC").
		WithArgs(int64(1)).
		WillReturnRows(calendarRow(now))

	calendars, err := repo.GetByReservationServiceID(context.Background(), 1, false)
	require.NoError(t, err)
	require.Len(t, calendars, 1)
	assert.Equal(t, "cal-grill", calendars[0].ID)
}

func TestUpdateCollisions(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectExec("UPDATE calendars SET collision_with_calendar = ").
		WithArgs(sqlmock.AnyArg(), "cal-grill").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCollisions(context.Background(), "cal-grill", []string{"cal-terrace", "cal-lounge"})
	require.NoError(t, err)
}

func TestSoftRemoveAndRestore(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectExec("UPDATE calendars SET deleted_at = NOW").
		WithArgs("cal-grill").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftRemove(context.Background(), "cal-grill"))

	mock.ExpectExec("UPDATE calendars SET deleted_at = .+ WHERE id = .+ AND deleted_at IS NOT NULL").
		WithArgs(nil, "cal-grill").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Restore(context.Background(), "cal-grill"))
}

func TestRemove_NotFound(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectExec("DELETE FROM calendars").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Remove(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}
