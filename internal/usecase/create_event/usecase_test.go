package create_event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/internal/integrations/accesscard"
	"github.com/dormclub/ReservationService/internal/integrations/mailer"
	"github.com/dormclub/ReservationService/internal/integrations/memberapi"
	"github.com/dormclub/ReservationService/internal/integrations/schedule"
	"github.com/dormclub/ReservationService/pkg/ptr"
)

// Mock collaborators

type MockEventRepo struct{ mock.Mock }
type MockCalendarRepo struct{ mock.Mock }
type MockCatalogRepo struct{ mock.Mock }
type MockScheduleClient struct{ mock.Mock }
type MockMemberClient struct{ mock.Mock }
type MockAccessCardClient struct{ mock.Mock }
type MockMailClient struct{ mock.Mock }

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

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

func (m *MockScheduleClient) InsertEvent(ctx context.Context, request schedule.InsertEventRequest) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func (m *MockScheduleClient) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	return m.Called(ctx, calendarID, eventID).Error(0)
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

func (m *MockAccessCardClient) AddCardWithGracefulDegradation(ctx context.Context, grant accesscard.CardGrant) error {
	return m.Called(ctx, grant).Error(0)
}

func (m *MockMailClient) SendWithGracefulDegradation(ctx context.Context, message mailer.Message) error {
	return m.Called(ctx, message).Error(0)
}

// passthroughTxManager выполняет функцию без транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedTimeProvider возвращает зафиксированное время
type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type testEnv struct {
	eventRepo    *MockEventRepo
	calendarRepo *MockCalendarRepo
	catalogRepo  *MockCatalogRepo
	schedule     *MockScheduleClient
	members      *MockMemberClient
	accessCards  *MockAccessCardClient
	mail         *MockMailClient
	uc           *UseCase
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		eventRepo:    &MockEventRepo{},
		calendarRepo: &MockCalendarRepo{},
		catalogRepo:  &MockCatalogRepo{},
		schedule:     &MockScheduleClient{},
		members:      &MockMemberClient{},
		accessCards:  &MockAccessCardClient{},
		mail:         &MockMailClient{},
	}
	env.uc = NewUseCase(
		env.eventRepo,
		env.calendarRepo,
		env.catalogRepo,
		env.schedule,
		env.members,
		env.accessCards,
		env.mail,
		passthroughTxManager{},
		nopLogger{},
	)
	env.uc.timeProvider = fixedTimeProvider{now: now}
	return env
}

func testNow() time.Time {
	return time.Date(2025, time.May, 10, 12, 0, 0, 0, time.Local)
}

func testRequest() *Request {
	return &Request{
		UserID:     42,
		CalendarID: "cal-grill",
		Purpose:    "Birthday grill",
		Guests:     5,
		Email:      "jnovak@club.example",
		Start:      time.Date(2025, time.May, 12, 11, 0, 0, 0, time.Local),
		End:        time.Date(2025, time.May, 12, 16, 0, 0, 0, time.Local),
	}
}

func grillCalendar() *domain.Calendar {
	return &domain.Calendar{
		ID:              "cal-grill",
		ReservationType: "Grill",
		MaxPeople:       8,
		MiniServices:    []string{"bar_table"},
		ClubMemberRules: domain.Rules{
			MaxReservationHours: 3,
			InPriorDays:         14,
		},
		ActiveMemberRules: domain.Rules{
			MaxReservationHours: 6,
			InAdvanceHours:      24,
			InPriorDays:         14,
		},
		ManagerRules: domain.Rules{
			NightTime:           true,
			MaxReservationHours: 24,
			InPriorDays:         365,
		},
		ReservationServiceID: 1,
	}
}

func grillService() *domain.ReservationService {
	return &domain.ReservationService{
		ID:          1,
		Name:        "Grill spot",
		Alias:       "grill",
		ContactMail: "grill@club.example",
		AccessGroup: ptr.Ptr("grill-readers"),
	}
}

func grillMember() *memberapi.Member {
	return &memberapi.Member{
		ID:           42,
		Username:     "jnovak",
		FullName:     "Jan Novak",
		RoomNumber:   "B214",
		ActiveMember: true,
	}
}

func grillEntitlements() []memberapi.ServiceEntitlement {
	return []memberapi.ServiceEntitlement{{Alias: "grill", Name: "Grill spot"}}
}

func TestExecute_ConfirmedReservation(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest()

	env.members.On("GetMember", mock.Anything, int64(42)).Return(grillMember(), nil)
	env.members.On("GetEntitlements", mock.Anything, int64(42)).Return(grillEntitlements(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(grillCalendar(), nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.schedule.On("ListEvents", mock.Anything, "cal-grill", req.Start, req.End).Return([]schedule.Event{}, nil)
	env.schedule.On("InsertEvent", mock.Anything, mock.MatchedBy(func(r schedule.InsertEventRequest) bool {
		return r.CalendarID == "cal-grill" && r.Summary == "Birthday grill"
	})).Return("ext-123", nil)
	env.eventRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Event")).
		Return(&domain.Event{
			ID:         "ext-123",
			Purpose:    "Birthday grill",
			Guests:     5,
			Email:      "jnovak@club.example",
			State:      domain.StateConfirmed,
			UserID:     42,
			CalendarID: "cal-grill",
		}, nil)
	env.accessCards.On("AddCardWithGracefulDegradation", mock.Anything, accesscard.CardGrant{
		AccessGroup:    "grill-readers",
		VariableSymbol: "42",
		ValidFrom:      req.Start,
		ValidTo:        req.End,
	}).Return(nil)
	env.mail.On("SendWithGracefulDegradation", mock.Anything, mock.MatchedBy(func(m mailer.Message) bool {
		return m.To == "jnovak@club.example" && m.Subject == "Reservation confirmed: Grill spot"
	})).Return(nil)

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "ext-123", resp.ID)
	assert.Equal(t, string(domain.StateConfirmed), resp.State)
	env.eventRepo.AssertExpectations(t)
	env.schedule.AssertExpectations(t)
	env.accessCards.AssertExpectations(t)
	env.mail.AssertExpectations(t)
	// Контакт сервиса не уведомляется о подтвержденной без согласования брони
	env.mail.AssertNumberOfCalls(t, "SendWithGracefulDegradation", 1)
}

func TestExecute_SlotTaken(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest()

	env.members.On("GetMember", mock.Anything, int64(42)).Return(grillMember(), nil)
	env.members.On("GetEntitlements", mock.Anything, int64(42)).Return(grillEntitlements(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(grillCalendar(), nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.schedule.On("ListEvents", mock.Anything, "cal-grill", req.Start, req.End).
		Return([]schedule.Event{{
			ID:    "ext-77",
			Start: time.Date(2025, time.May, 12, 10, 0, 0, 0, time.Local),
			End:   time.Date(2025, time.May, 12, 12, 0, 0, 0, time.Local),
		}}, nil)

	_, err := env.uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotTaken)

	env.schedule.AssertNotCalled(t, "InsertEvent", mock.Anything, mock.Anything)
	env.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_MemberServiceUnavailable(t *testing.T) {
	env := newTestEnv(testNow())

	env.members.On("GetMember", mock.Anything, int64(42)).Return(nil, memberapi.ErrUnavailable)

	_, err := env.uc.Execute(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailableForEvaluation)
}

func TestExecute_ScheduleUnavailableIsNotAFreeSlot(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest()

	env.members.On("GetMember", mock.Anything, int64(42)).Return(grillMember(), nil)
	env.members.On("GetEntitlements", mock.Anything, int64(42)).Return(grillEntitlements(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(grillCalendar(), nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.schedule.On("ListEvents", mock.Anything, "cal-grill", req.Start, req.End).
		Return(nil, schedule.ErrUnavailable)

	_, err := env.uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailableForEvaluation)

	env.schedule.AssertNotCalled(t, "InsertEvent", mock.Anything, mock.Anything)
}

func TestExecute_PersistFailureRollsBackExternalEvent(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest()

	env.members.On("GetMember", mock.Anything, int64(42)).Return(grillMember(), nil)
	env.members.On("GetEntitlements", mock.Anything, int64(42)).Return(grillEntitlements(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(grillCalendar(), nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.schedule.On("ListEvents", mock.Anything, "cal-grill", req.Start, req.End).Return([]schedule.Event{}, nil)
	env.schedule.On("InsertEvent", mock.Anything, mock.Anything).Return("ext-123", nil)
	env.eventRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	env.schedule.On("DeleteEvent", mock.Anything, "cal-grill", "ext-123").Return(nil)

	_, err := env.uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	env.schedule.AssertCalled(t, "DeleteEvent", mock.Anything, "cal-grill", "ext-123")
	env.accessCards.AssertNotCalled(t, "AddCardWithGracefulDegradation", mock.Anything, mock.Anything)
	env.mail.AssertNotCalled(t, "SendWithGracefulDegradation", mock.Anything, mock.Anything)
}

func TestExecute_NightTimeFlaggedPrefixesSummary(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest()
	req.Start = time.Date(2025, time.May, 12, 23, 0, 0, 0, time.Local)
	req.End = time.Date(2025, time.May, 12, 23, 30, 0, 0, time.Local)

	member := grillMember()
	member.ActiveMember = false

	env.members.On("GetMember", mock.Anything, int64(42)).Return(member, nil)
	env.members.On("GetEntitlements", mock.Anything, int64(42)).Return(grillEntitlements(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(grillCalendar(), nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.schedule.On("ListEvents", mock.Anything, "cal-grill", req.Start, req.End).Return([]schedule.Event{}, nil)
	env.schedule.On("InsertEvent", mock.Anything, mock.MatchedBy(func(r schedule.InsertEventRequest) bool {
		return r.Summary == "Not approved - Birthday grill"
	})).Return("ext-124", nil)
	env.eventRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Event) bool {
		return e.State == domain.StateNotApproved
	})).Return(&domain.Event{ID: "ext-124", Email: "jnovak@club.example", State: domain.StateNotApproved}, nil)
	env.mail.On("SendWithGracefulDegradation", mock.Anything, mock.Anything).Return(nil)

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StateNotApproved), resp.State)
	// Несогласованная бронь не выдает карту доступа
	env.accessCards.AssertNotCalled(t, "AddCardWithGracefulDegradation", mock.Anything, mock.Anything)
	env.schedule.AssertExpectations(t)
	// Участник и контакт сервиса получают по письму
	env.mail.AssertNumberOfCalls(t, "SendWithGracefulDegradation", 2)
}

func TestExecute_UnknownMiniServiceRejected(t *testing.T) {
	env := newTestEnv(testNow())
	req := testRequest()
	req.AdditionalServices = []string{"sauna"}

	env.members.On("GetMember", mock.Anything, int64(42)).Return(grillMember(), nil)
	env.members.On("GetEntitlements", mock.Anything, int64(42)).Return(grillEntitlements(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(grillCalendar(), nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)

	_, err := env.uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMiniServiceNotFound)
}

func TestExecute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero user id", func(r *Request) { r.UserID = 0 }},
		{"empty calendar id", func(r *Request) { r.CalendarID = "" }},
		{"empty email", func(r *Request) { r.Email = "" }},
		{"zero guests", func(r *Request) { r.Guests = 0 }},
		{"zero start", func(r *Request) { r.Start = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(testNow())
			req := testRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
