package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/internal/integrations/memberapi"
	"github.com/dormclub/ReservationService/internal/integrations/schedule"
)

// Mock collaborators

type MockCalendarRepo struct{ mock.Mock }
type MockCatalogRepo struct{ mock.Mock }
type MockScheduleClient struct{ mock.Mock }
type MockMemberClient struct{ mock.Mock }

func (m *MockCalendarRepo) GetByID(ctx context.Context, id string, includeRemoved bool) (*domain.Calendar, error) {
	args := m.Called(ctx, id, includeRemoved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calendar), args.Error(1)
}

func (m *MockCatalogRepo) GetServiceByID(ctx context.Context, id int64) (*domain.ReservationService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationService), args.Error(1)
}

func (m *MockScheduleClient) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]schedule.Event, error) {
	args := m.Called(ctx, calendarID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.Event), args.Error(1)
}

func (m *MockMemberClient) GetMember(ctx context.Context, userID int64) (*memberapi.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberapi.Member), args.Error(1)
}

func (m *MockMemberClient) GetEntitlements(ctx context.Context, userID int64) ([]memberapi.ServiceEntitlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]memberapi.ServiceEntitlement), args.Error(1)
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func localDate(day, hour, minute int) time.Time {
	return time.Date(2025, time.May, day, hour, minute, 0, 0, time.Local)
}

func newTestUseCase(calendarRepo *MockCalendarRepo, catalogRepo *MockCatalogRepo, scheduleClient *MockScheduleClient, members *MockMemberClient) *UseCase {
	uc := NewUseCase(calendarRepo, catalogRepo, scheduleClient, members, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: localDate(10, 12, 0)}
	return uc
}

func studyCalendar() *domain.Calendar {
	return &domain.Calendar{
		ID:              "cal-study",
		ReservationType: "Study room",
		MaxPeople:       4,
		ActiveMemberRules: domain.Rules{
			MaxReservationHours: 6,
			InAdvanceHours:      24,
			InPriorDays:         14,
		},
		ClubMemberRules:      domain.Rules{MaxReservationHours: 3, InPriorDays: 14},
		ManagerRules:         domain.Rules{NightTime: true, MaxReservationHours: 24, InPriorDays: 365},
		ReservationServiceID: 7,
	}
}

func studyService() *domain.ReservationService {
	return &domain.ReservationService{ID: 7, Name: "Study room", Alias: "study_room", ContactMail: "study@club.example"}
}

func studyMember() *memberapi.Member {
	return &memberapi.Member{ID: 42, Username: "jnovak", FullName: "Jan Novak", ActiveMember: true}
}

func studyEntitlements() []memberapi.ServiceEntitlement {
	return []memberapi.ServiceEntitlement{{Alias: "study_room", Name: "Study room"}}
}

func TestExecute_AvailableSlot(t *testing.T) {
	calendarRepo := &MockCalendarRepo{}
	catalogRepo := &MockCatalogRepo{}
	scheduleClient := &MockScheduleClient{}
	members := &MockMemberClient{}
	uc := newTestUseCase(calendarRepo, catalogRepo, scheduleClient, members)

	req := &Request{
		UserID:     42,
		CalendarID: "cal-study",
		Guests:     2,
		Start:      localDate(12, 11, 0),
		End:        localDate(12, 13, 0),
	}

	members.On("GetMember", mock.Anything, int64(42)).Return(studyMember(), nil)
	members.On("GetEntitlements", mock.Anything, int64(42)).Return(studyEntitlements(), nil)
	calendarRepo.On("GetByID", mock.Anything, "cal-study", false).Return(studyCalendar(), nil)
	catalogRepo.On("GetServiceByID", mock.Anything, int64(7)).Return(studyService(), nil)
	scheduleClient.On("ListEvents", mock.Anything, "cal-study", req.Start, req.End).Return([]schedule.Event{}, nil)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.False(t, resp.Approval)
	assert.Equal(t, string(domain.OutcomeConfirmed), resp.Outcome)
}

func TestExecute_TakenSlotReportsAlreadyBooked(t *testing.T) {
	calendarRepo := &MockCalendarRepo{}
	catalogRepo := &MockCatalogRepo{}
	scheduleClient := &MockScheduleClient{}
	members := &MockMemberClient{}
	uc := newTestUseCase(calendarRepo, catalogRepo, scheduleClient, members)

	req := &Request{
		UserID:     42,
		CalendarID: "cal-study",
		Guests:     2,
		Start:      localDate(12, 11, 0),
		End:        localDate(12, 13, 0),
	}

	members.On("GetMember", mock.Anything, int64(42)).Return(studyMember(), nil)
	members.On("GetEntitlements", mock.Anything, int64(42)).Return(studyEntitlements(), nil)
	calendarRepo.On("GetByID", mock.Anything, "cal-study", false).Return(studyCalendar(), nil)
	catalogRepo.On("GetServiceByID", mock.Anything, int64(7)).Return(studyService(), nil)
	scheduleClient.On("ListEvents", mock.Anything, "cal-study", req.Start, req.End).
		Return([]schedule.Event{{ID: "ext-9", Start: localDate(12, 10, 0), End: localDate(12, 12, 0)}}, nil)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Занятый слот - это ответ предпросмотра, а не ошибка
	assert.False(t, resp.Available)
	assert.Equal(t, string(domain.OutcomeAlreadyBooked), resp.Outcome)
}

func TestExecute_ScheduleUnavailableFailsThePreview(t *testing.T) {
	calendarRepo := &MockCalendarRepo{}
	catalogRepo := &MockCatalogRepo{}
	scheduleClient := &MockScheduleClient{}
	members := &MockMemberClient{}
	uc := newTestUseCase(calendarRepo, catalogRepo, scheduleClient, members)

	req := &Request{
		UserID:     42,
		CalendarID: "cal-study",
		Guests:     2,
		Start:      localDate(12, 11, 0),
		End:        localDate(12, 13, 0),
	}

	members.On("GetMember", mock.Anything, int64(42)).Return(studyMember(), nil)
	members.On("GetEntitlements", mock.Anything, int64(42)).Return(studyEntitlements(), nil)
	calendarRepo.On("GetByID", mock.Anything, "cal-study", false).Return(studyCalendar(), nil)
	catalogRepo.On("GetServiceByID", mock.Anything, int64(7)).Return(studyService(), nil)
	scheduleClient.On("ListEvents", mock.Anything, "cal-study", req.Start, req.End).Return(nil, schedule.ErrUnavailable)

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailableForEvaluation)
}

func TestExecute_MissingEntitlementReportedAsRejection(t *testing.T) {
	calendarRepo := &MockCalendarRepo{}
	catalogRepo := &MockCatalogRepo{}
	scheduleClient := &MockScheduleClient{}
	members := &MockMemberClient{}
	uc := newTestUseCase(calendarRepo, catalogRepo, scheduleClient, members)

	req := &Request{
		UserID:     42,
		CalendarID: "cal-study",
		Guests:     2,
		Start:      localDate(12, 11, 0),
		End:        localDate(12, 13, 0),
	}

	members.On("GetMember", mock.Anything, int64(42)).Return(studyMember(), nil)
	members.On("GetEntitlements", mock.Anything, int64(42)).Return([]memberapi.ServiceEntitlement{}, nil)
	calendarRepo.On("GetByID", mock.Anything, "cal-study", false).Return(studyCalendar(), nil)
	catalogRepo.On("GetServiceByID", mock.Anything, int64(7)).Return(studyService(), nil)
	scheduleClient.On("ListEvents", mock.Anything, "cal-study", req.Start, req.End).Return([]schedule.Event{}, nil)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, string(domain.OutcomeRejected), resp.Outcome)
	assert.Equal(t, string(domain.ReasonMissingEntitlement), resp.Reason)
}
