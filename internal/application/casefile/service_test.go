package casefile

import (
	"context"
	"errors"
	"testing"

	"github.com/lawlink-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCaseStore struct{ mock.Mock }

func (m *mockCaseStore) Insert(ctx context.Context, c *domain.Case) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}
func (m *mockCaseStore) Get(ctx context.Context, caseID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if c, _ := args.Get(0).(*domain.Case); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCaseStore) Update(ctx context.Context, caseID string, updates map[string]interface{}) error {
	return m.Called(ctx, caseID, updates).Error(0)
}
func (m *mockCaseStore) Delete(ctx context.Context, caseID string) error {
	return m.Called(ctx, caseID).Error(0)
}
func (m *mockCaseStore) ListByParty(ctx context.Context, attr, userID string) ([]domain.Case, error) {
	args := m.Called(ctx, attr, userID)
	return args.Get(0).([]domain.Case), args.Error(1)
}
func (m *mockCaseStore) ListAll(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Case), args.Error(1)
}

type mockInteractionStore struct{ mock.Mock }

func (m *mockInteractionStore) Insert(ctx context.Context, in *domain.Interaction) error {
	return m.Called(ctx, in).Error(0)
}

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func newService(repo *mockCaseStore, ir *mockInteractionStore, lawyers, clients *mockAccountStore) Service {
	return NewService(ServiceDeps{CaseRepo: repo, InteractionRepo: ir, LawyerRepo: lawyers, ClientRepo: clients})
}

func createReq() domain.CreateCaseRequest {
	return domain.CreateCaseRequest{
		ClientID: "c1", LawyerID: "l1", Name: "Estate dispute", Status: "open",
	}
}

func TestAdd_UnknownLawyer(t *testing.T) {
	lawyers := &mockAccountStore{}
	clients := &mockAccountStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)
	lawyers.On("Get", mock.Anything, "l1").Return(nil, domain.ErrNotFound)

	svc := newService(nil, nil, lawyers, clients)
	_, err := svc.Add(context.Background(), createReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAdd_RecordsInteraction(t *testing.T) {
	repo := &mockCaseStore{}
	ir := &mockInteractionStore{}
	lawyers := &mockAccountStore{}
	clients := &mockAccountStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1"}, nil)
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Case")).Return("01ABC", nil)
	ir.On("Insert", mock.Anything, mock.MatchedBy(func(in *domain.Interaction) bool {
		return in.Type == "case" && in.LawyerID == "l1" && in.ClientID == "c1"
	})).Return(nil)

	svc := newService(repo, ir, lawyers, clients)
	c, err := svc.Add(context.Background(), createReq())

	require.NoError(t, err)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	repo.AssertExpectations(t)
	ir.AssertExpectations(t)
}

func TestAdd_InteractionFailureDoesNotFailCase(t *testing.T) {
	repo := &mockCaseStore{}
	ir := &mockInteractionStore{}
	lawyers := &mockAccountStore{}
	clients := &mockAccountStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1"}, nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return("01ABC", nil)
	ir.On("Insert", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := newService(repo, ir, lawyers, clients)
	_, err := svc.Add(context.Background(), createReq())

	require.NoError(t, err)
}

func TestUpdate_EmptyRequest_ReturnsExisting(t *testing.T) {
	repo := &mockCaseStore{}
	existing := &domain.Case{CaseID: "k1"}
	repo.On("Get", mock.Anything, "k1").Return(existing, nil)

	svc := newService(repo, nil, nil, nil)
	c, err := svc.Update(context.Background(), "k1", domain.UpdateCaseRequest{})

	require.NoError(t, err)
	assert.Equal(t, existing, c)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := &mockCaseStore{}
	repo.On("Get", mock.Anything, "k1").Return(&domain.Case{CaseID: "k1"}, nil)
	repo.On("Update", mock.Anything, "k1", map[string]interface{}{
		"case_status": "closed",
	}).Return(nil)

	svc := newService(repo, nil, nil, nil)
	_, err := svc.Update(context.Background(), "k1", domain.UpdateCaseRequest{Status: ptr("closed")})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListByUser_BadRole(t *testing.T) {
	svc := newService(&mockCaseStore{}, nil, nil, nil)
	_, err := svc.ListByUser(context.Background(), "u1", "paralegal")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestListByUser_HydratesParties(t *testing.T) {
	repo := &mockCaseStore{}
	lawyers := &mockAccountStore{}
	clients := &mockAccountStore{}
	repo.On("ListByParty", mock.Anything, "lawyer_id", "l1").Return([]domain.Case{
		{CaseID: "k1", LawyerID: "l1", ClientID: "c1"},
	}, nil)
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1", FirstName: "Amr"}, nil)
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1", FirstName: "Sara"}, nil)

	svc := newService(repo, nil, lawyers, clients)
	cases, err := svc.ListByUser(context.Background(), "l1", "lawyer")

	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.NotNil(t, cases[0].LawyerDetails)
	require.NotNil(t, cases[0].ClientDetails)
	assert.Equal(t, "Amr", cases[0].LawyerDetails.FirstName)
	assert.Equal(t, "Sara", cases[0].ClientDetails.FirstName)
}

func TestGet_MissingPartyStillServesCase(t *testing.T) {
	repo := &mockCaseStore{}
	lawyers := &mockAccountStore{}
	clients := &mockAccountStore{}
	repo.On("Get", mock.Anything, "k1").Return(&domain.Case{CaseID: "k1", LawyerID: "l1", ClientID: "c1"}, nil)
	lawyers.On("Get", mock.Anything, "l1").Return(nil, domain.ErrNotFound)
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)

	svc := newService(repo, nil, lawyers, clients)
	c, err := svc.Get(context.Background(), "k1")

	require.NoError(t, err)
	assert.Nil(t, c.LawyerDetails)
	assert.NotNil(t, c.ClientDetails)
}
