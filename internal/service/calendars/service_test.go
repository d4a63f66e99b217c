package calendars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dormclub/ReservationService/internal/domain"
	calendarRepo "github.com/dormclub/ReservationService/internal/infra/storage/calendar"
	"github.com/dormclub/ReservationService/internal/integrations/memberapi"
	"github.com/dormclub/ReservationService/internal/service/calendars/models"
	"github.com/dormclub/ReservationService/pkg/ptr"
)

// Mock collaborators

type MockCalendarRepo struct{ mock.Mock }
type MockCatalogRepo struct{ mock.Mock }
type MockMemberClient struct{ mock.Mock }

func (m *MockCalendarRepo) Create(ctx context.Context, calendar *domain.Calendar) (*domain.Calendar, error) {
	args := m.Called(ctx, calendar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calendar), args.Error(1)
}

func (m *MockCalendarRepo) GetByID(ctx context.Context, id string, includeRemoved bool) (*domain.Calendar, error) {
	args := m.Called(ctx, id, includeRemoved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calendar), args.Error(1)
}

func (m *MockCalendarRepo) GetByReservationType(ctx context.Context, reservationType string, includeRemoved bool) (*domain.Calendar, error) {
	args := m.Called(ctx, reservationType, includeRemoved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calendar), args.Error(1)
}

func (m *MockCalendarRepo) GetByReservationServiceID(ctx context.Context, reservationServiceID int64, includeRemoved bool) ([]*domain.Calendar, error) {
	args := m.Called(ctx, reservationServiceID, includeRemoved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Calendar), args.Error(1)
}

func (m *MockCalendarRepo) Update(ctx context.Context, calendar *domain.Calendar) error {
	return m.Called(ctx, calendar).Error(0)
}

func (m *MockCalendarRepo) UpdateCollisions(ctx context.Context, id string, collisions []string) error {
	return m.Called(ctx, id, collisions).Error(0)
}

func (m *MockCalendarRepo) SoftRemove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCalendarRepo) Restore(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCalendarRepo) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogRepo) GetServiceByID(ctx context.Context, id int64) (*domain.ReservationService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationService), args.Error(1)
}

func (m *MockCatalogRepo) GetMiniServiceNamesByServiceID(ctx context.Context, reservationServiceID int64) ([]string, error) {
	args := m.Called(ctx, reservationServiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMemberClient) GetMember(ctx context.Context, userID int64) (*memberapi.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberapi.Member), args.Error(1)
}

// passthroughTxManager исполняет функцию без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type testEnv struct {
	calendarRepo *MockCalendarRepo
	catalogRepo  *MockCatalogRepo
	members      *MockMemberClient
	svc          *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		calendarRepo: &MockCalendarRepo{},
		catalogRepo:  &MockCatalogRepo{},
		members:      &MockMemberClient{},
	}
	env.svc = NewService(env.calendarRepo, env.catalogRepo, env.members, passthroughTxManager{}, nopLogger{})
	return env
}

func managerMember() *memberapi.Member {
	return &memberapi.Member{ID: 7, Username: "boss", ActiveMember: true, Roles: []string{"grill"}}
}

func plainMember() *memberapi.Member {
	return &memberapi.Member{ID: 99, Username: "someone", ActiveMember: true}
}

func grillService() *domain.ReservationService {
	return &domain.ReservationService{ID: 1, Name: "Grill spot", Alias: "grill", ContactMail: "grill@club.example"}
}

func defaultRulesPayload() models.RulesPayload {
	return models.RulesPayload{MaxReservationHours: 3, InAdvanceHours: 1, InPriorDays: 14}
}

func createRequest() *models.CreateCalendarRequest {
	return &models.CreateCalendarRequest{
		UserID:                7,
		ID:                    "cal-grill",
		ReservationType:       "Grill",
		MaxPeople:             8,
		CollisionWithCalendar: []string{"cal-terrace"},
		ClubMemberRules:       defaultRulesPayload(),
		ActiveMemberRules:     defaultRulesPayload(),
		ManagerRules:          defaultRulesPayload(),
		ReservationServiceID:  1,
	}
}

func terraceCalendar() *domain.Calendar {
	rules, _ := domain.NewRules(false, false, 3, 1, 0, 14)
	return &domain.Calendar{
		ID:                   "cal-terrace",
		ReservationType:      "Terrace",
		MaxPeople:            10,
		ClubMemberRules:      rules,
		ActiveMemberRules:    rules,
		ManagerRules:         rules,
		ReservationServiceID: 1,
	}
}

func TestCreate_ManagerCreatesWithSymmetricCollision(t *testing.T) {
	env := newTestEnv()

	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-terrace", false).Return(terraceCalendar(), nil)
	created := terraceCalendar()
	created.ID = "cal-grill"
	created.ReservationType = "Grill"
	created.MaxPeople = 8
	created.CollisionWithCalendar = []string{"cal-terrace"}
	env.calendarRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Calendar) bool {
		return c.ID == "cal-grill" && c.Color == domain.DefaultCalendarColor
	})).Return(created, nil)
	// Обратный список террасы пополняется новым календарем
	env.calendarRepo.On("UpdateCollisions", mock.Anything, "cal-terrace", []string{"cal-grill"}).Return(nil)

	resp, err := env.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, "cal-grill", resp.ID)
	assert.Equal(t, []string{"cal-terrace"}, resp.CollisionWithCalendar)

	env.calendarRepo.AssertExpectations(t)
}

func TestCreate_NonManagerDenied(t *testing.T) {
	env := newTestEnv()

	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(99)).Return(plainMember(), nil)

	req := createRequest()
	req.UserID = 99

	_, err := env.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	env.calendarRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_MissingCollisionCalendar(t *testing.T) {
	env := newTestEnv()

	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-terrace", false).
		Return(nil, calendarRepo.ErrCalendarNotFound)

	_, err := env.svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, ErrCollisionCalendarNotFound)

	env.calendarRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_UnknownMiniService(t *testing.T) {
	env := newTestEnv()

	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)
	env.catalogRepo.On("GetMiniServiceNamesByServiceID", mock.Anything, int64(1)).
		Return([]string{"bar_table"}, nil)

	req := createRequest()
	req.MiniServices = []string{"sauna"}

	_, err := env.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrMiniServiceNotFound)
}

func TestCreate_InvalidRules(t *testing.T) {
	env := newTestEnv()

	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)

	req := createRequest()
	req.ClubMemberRules.MaxReservationHours = -1

	_, err := env.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_CollisionDiffIsSymmetric(t *testing.T) {
	env := newTestEnv()

	existing := terraceCalendar()
	existing.ID = "cal-grill"
	existing.ReservationType = "Grill"
	existing.CollisionWithCalendar = []string{"cal-terrace"}

	study := terraceCalendar()
	study.ID = "cal-study"
	study.ReservationType = "Study"
	study.CollisionWithCalendar = nil

	terrace := terraceCalendar()
	terrace.CollisionWithCalendar = []string{"cal-grill"}

	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(existing, nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-study", false).Return(study, nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-terrace", false).Return(terrace, nil)
	env.calendarRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Calendar) bool {
		return c.ID == "cal-grill" && len(c.CollisionWithCalendar) == 1 && c.CollisionWithCalendar[0] == "cal-study"
	})).Return(nil)
	// Новая коллизия дописывается, снятая выписывается
	env.calendarRepo.On("UpdateCollisions", mock.Anything, "cal-study", []string{"cal-grill"}).Return(nil)
	env.calendarRepo.On("UpdateCollisions", mock.Anything, "cal-terrace", []string{}).Return(nil)

	resp, err := env.svc.Update(context.Background(), "cal-grill", &models.UpdateCalendarRequest{
		UserID:                7,
		CollisionWithCalendar: []string{"cal-study"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cal-study"}, resp.CollisionWithCalendar)

	env.calendarRepo.AssertExpectations(t)
}

func TestUpdate_PartialFieldsOnly(t *testing.T) {
	env := newTestEnv()

	existing := terraceCalendar()
	existing.ID = "cal-grill"
	existing.ReservationType = "Grill"
	existing.CollisionWithCalendar = nil

	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(existing, nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)
	env.calendarRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Calendar) bool {
		return c.MaxPeople == 12 && c.ReservationType == "Grill"
	})).Return(nil)

	resp, err := env.svc.Update(context.Background(), "cal-grill", &models.UpdateCalendarRequest{
		UserID:    7,
		MaxPeople: ptr.Ptr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.MaxPeople)
}

func TestUpdate_NotFound(t *testing.T) {
	env := newTestEnv()

	env.calendarRepo.On("GetByID", mock.Anything, "cal-ghost", false).
		Return(nil, calendarRepo.ErrCalendarNotFound)

	_, err := env.svc.Update(context.Background(), "cal-ghost", &models.UpdateCalendarRequest{UserID: 7})
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestDelete_SoftRemovesSymmetricReferences(t *testing.T) {
	env := newTestEnv()

	existing := terraceCalendar()
	existing.ID = "cal-grill"
	existing.CollisionWithCalendar = []string{"cal-terrace"}

	terrace := terraceCalendar()
	terrace.CollisionWithCalendar = []string{"cal-grill"}

	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", false).Return(existing, nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-terrace", false).Return(terrace, nil)
	env.calendarRepo.On("UpdateCollisions", mock.Anything, "cal-terrace", []string{}).Return(nil)
	env.calendarRepo.On("SoftRemove", mock.Anything, "cal-grill").Return(nil)

	err := env.svc.Delete(context.Background(), "cal-grill", &models.DeleteCalendarRequest{UserID: 7})
	require.NoError(t, err)

	env.calendarRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestDelete_HardRemove(t *testing.T) {
	env := newTestEnv()

	existing := terraceCalendar()
	existing.ID = "cal-grill"
	existing.CollisionWithCalendar = nil

	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", true).Return(existing, nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)
	env.calendarRepo.On("Remove", mock.Anything, "cal-grill").Return(nil)

	err := env.svc.Delete(context.Background(), "cal-grill", &models.DeleteCalendarRequest{UserID: 7, Hard: true})
	require.NoError(t, err)

	env.calendarRepo.AssertNotCalled(t, "SoftRemove", mock.Anything, mock.Anything)
}

func TestRestore_ReaddsSymmetricReferences(t *testing.T) {
	env := newTestEnv()

	removed := terraceCalendar()
	removed.ID = "cal-grill"
	removed.CollisionWithCalendar = []string{"cal-terrace"}

	terrace := terraceCalendar()
	terrace.CollisionWithCalendar = nil

	env.calendarRepo.On("GetByID", mock.Anything, "cal-grill", true).Return(removed, nil)
	env.catalogRepo.On("GetServiceByID", mock.Anything, int64(1)).Return(grillService(), nil)
	env.members.On("GetMember", mock.Anything, int64(7)).Return(managerMember(), nil)
	env.calendarRepo.On("Restore", mock.Anything, "cal-grill").Return(nil)
	env.calendarRepo.On("GetByID", mock.Anything, "cal-terrace", false).Return(terrace, nil)
	env.calendarRepo.On("UpdateCollisions", mock.Anything, "cal-terrace", []string{"cal-grill"}).Return(nil)

	resp, err := env.svc.Restore(context.Background(), "cal-grill", &models.RestoreCalendarRequest{UserID: 7})
	require.NoError(t, err)
	assert.Nil(t, resp.DeletedAt)

	env.calendarRepo.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	env := newTestEnv()

	env.calendarRepo.On("GetByID", mock.Anything, "cal-ghost", false).
		Return(nil, calendarRepo.ErrCalendarNotFound)

	_, err := env.svc.GetByID(context.Background(), "cal-ghost")
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestListByService(t *testing.T) {
	env := newTestEnv()

	env.calendarRepo.On("GetByReservationServiceID", mock.Anything, int64(1), false).
		Return([]*domain.Calendar{terraceCalendar()}, nil)

	resp, err := env.svc.ListByService(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}
