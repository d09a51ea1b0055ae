package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/lawlink-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAppointmentStore struct{ mock.Mock }

func (m *mockAppointmentStore) Insert(ctx context.Context, a *domain.Appointment) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}
func (m *mockAppointmentStore) Get(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if a, _ := args.Get(0).(*domain.Appointment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAppointmentStore) Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error {
	return m.Called(ctx, appointmentID, updates).Error(0)
}
func (m *mockAppointmentStore) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *mockAppointmentStore) Delete(ctx context.Context, appointmentID string) error {
	return m.Called(ctx, appointmentID).Error(0)
}

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(repo *mockAppointmentStore, lawyers, clients *mockAccountStore) Service {
	return NewService(ServiceDeps{AppointmentRepo: repo, LawyerRepo: lawyers, ClientRepo: clients})
}

func createReq() domain.CreateAppointmentRequest {
	return domain.CreateAppointmentRequest{ClientID: "c1", LawyerID: "l1", Title: "Initial consult"}
}

func TestCreate_UnknownClient(t *testing.T) {
	clients := &mockAccountStore{}
	clients.On("Get", mock.Anything, "c1").Return(nil, domain.ErrNotFound)

	svc := newService(nil, &mockAccountStore{}, clients)
	_, err := svc.Create(context.Background(), createReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreate_StartsPending(t *testing.T) {
	repo := &mockAppointmentStore{}
	lawyers := &mockAccountStore{}
	clients := &mockAccountStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1"}, nil)
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return("01ABC", nil)

	svc := newService(repo, lawyers, clients)
	a, err := svc.Create(context.Background(), createReq())

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, a.Status)
	assert.Nil(t, a.Date)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_RejectsBadStatus(t *testing.T) {
	svc := newService(&mockAppointmentStore{}, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "ap1", domain.UpdateAppointmentStatusRequest{Status: "maybe"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdateStatus_AcceptRequiresDate(t *testing.T) {
	repo := &mockAppointmentStore{}
	repo.On("Get", mock.Anything, "ap1").Return(&domain.Appointment{AppointmentID: "ap1"}, nil)

	svc := newService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "ap1", domain.UpdateAppointmentStatusRequest{
		Status: domain.AppointmentAccepted,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdateStatus_AcceptHappyPath(t *testing.T) {
	repo := &mockAppointmentStore{}
	repo.On("Get", mock.Anything, "ap1").Return(&domain.Appointment{AppointmentID: "ap1"}, nil)
	repo.On("Update", mock.Anything, "ap1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["appointment_status"] == domain.AppointmentAccepted && updates["appointment_date"] != nil
	})).Return(nil)

	svc := newService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "ap1", domain.UpdateAppointmentStatusRequest{
		Status: domain.AppointmentAccepted,
		Date:   "2026-09-15T10:00:00Z",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_RejectNeedsNoDate(t *testing.T) {
	repo := &mockAppointmentStore{}
	repo.On("Get", mock.Anything, "ap1").Return(&domain.Appointment{AppointmentID: "ap1"}, nil)
	repo.On("Update", mock.Anything, "ap1", map[string]interface{}{
		"appointment_status": domain.AppointmentRejected,
	}).Return(nil)

	svc := newService(repo, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "ap1", domain.UpdateAppointmentStatusRequest{
		Status: domain.AppointmentRejected,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockAppointmentStore{}
	repo.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := newService(repo, nil, nil)
	err := svc.Delete(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
