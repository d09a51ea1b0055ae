package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/lawlink-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCommentStore struct{ mock.Mock }

func (m *mockCommentStore) Insert(ctx context.Context, c *domain.Comment) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}
func (m *mockCommentStore) Get(ctx context.Context, commentID string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	if c, _ := args.Get(0).(*domain.Comment); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCommentStore) ListByClient(ctx context.Context, clientID string) ([]domain.Comment, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Comment), args.Error(1)
}
func (m *mockCommentStore) ListByLawyer(ctx context.Context, lawyerID string) ([]domain.Comment, error) {
	args := m.Called(ctx, lawyerID)
	return args.Get(0).([]domain.Comment), args.Error(1)
}
func (m *mockCommentStore) Delete(ctx context.Context, commentID string) error {
	return m.Called(ctx, commentID).Error(0)
}
func (m *mockCommentStore) InsertReply(ctx context.Context, rep *domain.CommentReply) (string, error) {
	args := m.Called(ctx, rep)
	return args.String(0), args.Error(1)
}
func (m *mockCommentStore) ListReplies(ctx context.Context, commentID string) ([]domain.CommentReply, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).([]domain.CommentReply), args.Error(1)
}

type mockLawyerStore struct{ mock.Mock }

func (m *mockLawyerStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockLawyerStore) Update(ctx context.Context, accountID string, updates map[string]interface{}) error {
	return m.Called(ctx, accountID, updates).Error(0)
}

type mockClientStore struct{ mock.Mock }

func (m *mockClientStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(repo *mockCommentStore, lawyers *mockLawyerStore, clients *mockClientStore) Service {
	return NewService(ServiceDeps{CommentRepo: repo, LawyerRepo: lawyers, ClientRepo: clients})
}

func createReq(rating int) domain.CreateCommentRequest {
	return domain.CreateCommentRequest{
		ClientID: "c1", LawyerID: "l1", Text: "Very thorough.", Rating: rating,
	}
}

func TestCreate_RatingOutOfRange(t *testing.T) {
	svc := newService(nil, &mockLawyerStore{}, &mockClientStore{})
	_, err := svc.Create(context.Background(), createReq(6))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_UnratedLeavesAggregateAlone(t *testing.T) {
	repo := &mockCommentStore{}
	lawyers := &mockLawyerStore{}
	clients := &mockClientStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1"}, nil)
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return("01ABC", nil)

	svc := newService(repo, lawyers, clients)
	_, err := svc.Create(context.Background(), createReq(0))

	require.NoError(t, err)
	lawyers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_FirstRatingBecomesAggregate(t *testing.T) {
	repo := &mockCommentStore{}
	lawyers := &mockLawyerStore{}
	clients := &mockClientStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1", Rating: 0, RatingCount: 0}, nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return("01ABC", nil)
	lawyers.On("Update", mock.Anything, "l1", map[string]interface{}{
		"rating":       4.0,
		"rating_count": 1,
	}).Return(nil)

	svc := newService(repo, lawyers, clients)
	_, err := svc.Create(context.Background(), createReq(4))

	require.NoError(t, err)
	lawyers.AssertExpectations(t)
}

func TestCreate_IncrementalMean(t *testing.T) {
	repo := &mockCommentStore{}
	lawyers := &mockLawyerStore{}
	clients := &mockClientStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)
	// Aggregate 4.0 over 3 ratings; a new 5 moves it to 4.25 over 4.
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1", Rating: 4.0, RatingCount: 3}, nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return("01ABC", nil)
	lawyers.On("Update", mock.Anything, "l1", map[string]interface{}{
		"rating":       4.25,
		"rating_count": 4,
	}).Return(nil)

	svc := newService(repo, lawyers, clients)
	_, err := svc.Create(context.Background(), createReq(5))

	require.NoError(t, err)
	lawyers.AssertExpectations(t)
}

func TestCommentsByLawyer_HydratesClientAndReplies(t *testing.T) {
	repo := &mockCommentStore{}
	clients := &mockClientStore{}
	repo.On("ListByLawyer", mock.Anything, "l1").Return([]domain.Comment{
		{CommentID: "m1", ClientID: "c1", LawyerID: "l1"},
	}, nil)
	repo.On("ListReplies", mock.Anything, "m1").Return([]domain.CommentReply{
		{CommentID: "m1", ReplyID: "r1"},
	}, nil)
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)

	svc := newService(repo, &mockLawyerStore{}, clients)
	comments, err := svc.CommentsByLawyer(context.Background(), "l1")

	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.NotNil(t, comments[0].Client)
	assert.Len(t, comments[0].Replies, 1)
}

func TestCreateReply_CommentMustExist(t *testing.T) {
	repo := &mockCommentStore{}
	repo.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := newService(repo, &mockLawyerStore{}, nil)
	_, err := svc.CreateReply(context.Background(), "ghost", domain.CreateReplyRequest{
		LawyerID: "l1", Text: "Thank you.",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockCommentStore{}
	repo.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := newService(repo, nil, nil)
	err := svc.Delete(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
