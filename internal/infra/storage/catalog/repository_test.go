package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
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

func serviceRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(serviceColumns).
		AddRow(int64(1), "Grill spot", "grill", true, nil, "grill@club.example",
			"grill-readers", nil, "{101,102}", nil, now, now)
}

func TestCreateService(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()

	mock.ExpectQuery("INSERT INTO reservation_services").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	service := &domain.ReservationService{
		Name:        "Grill spot",
		Alias:       "grill",
		Public:      true,
		ContactMail: "grill@club.example",
	}

	created, err := repo.CreateService(context.Background(), service)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestCreateService_DuplicateAlias(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO reservation_services").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateService(context.Background(), &domain.ReservationService{
		Name:        "Grill spot",
		Alias:       "grill",
		ContactMail: "grill@club.example",
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetServiceByAlias(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM reservation_services WHERE alias = .+ AND deleted_at IS NULL").
		WithArgs("grill").
		WillReturnRows(serviceRow(now))

	service, err := repo.GetServiceByAlias(context.Background(), "grill")
	require.NoError(t, err)

	assert.Equal(t, "Grill spot", service.Name)
	require.NotNil(t, service.AccessGroup)
	assert.Equal(t, "grill-readers", *service.AccessGroup)
	assert.Equal(t, []int64{101, 102}, service.LockersID)
}

func TestGetServiceByID_NotFound(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .+ FROM reservation_services").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(serviceColumns))

	_, err := repo.GetServiceByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestListServices_PublicOnly(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM reservation_services WHERE deleted_at IS NULL AND public = .+ ORDER BY name ASC").
		WithArgs(true).
		WillReturnRows(serviceRow(now))

	services, err := repo.ListServices(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "grill", services[0].Alias)
}

func TestSoftRemoveService_NotFound(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectExec("UPDATE reservation_services SET deleted_at = NOW").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftRemoveService(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateMiniService(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	now := time.Now()

	mock.ExpectQuery("INSERT INTO mini_services").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	miniService, err := repo.CreateMiniService(context.Background(), &domain.MiniService{
		Name:                 "bar_table",
		ReservationServiceID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), miniService.ID)
}

func TestGetMiniServiceNamesByServiceID(t *testing.T) {
	repo, mock, closeDB := setupMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT name FROM mini_services WHERE reservation_service_id = .+ ORDER BY name ASC").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("bar_table").AddRow("projector"))

	names, err := repo.GetMiniServiceNamesByServiceID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar_table", "projector"}, names)
}
