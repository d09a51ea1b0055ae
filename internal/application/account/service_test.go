package account

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountStore) Update(ctx context.Context, accountID string, updates map[string]interface{}) error {
	return m.Called(ctx, accountID, updates).Error(0)
}
func (m *mockAccountStore) Scan(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}

type mockFileStore struct{ mock.Mock }

func (m *mockFileStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockFileStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockFileStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func ptr[T any](v T) *T { return &v }

func newService(admins, lawyers, clients *mockAccountStore) Service {
	return NewService(ServiceDeps{AdminRepo: admins, LawyerRepo: lawyers, ClientRepo: clients})
}

func newServiceWithFiles(lawyers, clients *mockAccountStore, files *mockFileStore) Service {
	return NewService(ServiceDeps{LawyerRepo: lawyers, ClientRepo: clients, Files: files})
}

func TestGet_UnknownRole(t *testing.T) {
	svc := newService(nil, nil, nil)
	_, err := svc.Get(context.Background(), "Superuser", "x1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestGet_RoutesToRoleCollection(t *testing.T) {
	lawyers := &mockAccountStore{}
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1"}, nil)

	svc := newService(nil, lawyers, nil)
	a, err := svc.Get(context.Background(), domain.RoleLawyer, "l1")

	require.NoError(t, err)
	assert.Equal(t, "l1", a.AccountID)
	lawyers.AssertExpectations(t)
}

func TestUpdateProfile_EmptyRequest_ReturnsExisting(t *testing.T) {
	clients := &mockAccountStore{}
	existing := &domain.Account{AccountID: "c1"}
	clients.On("Get", mock.Anything, "c1").Return(existing, nil)

	svc := newService(nil, nil, clients)
	a, err := svc.UpdateProfile(context.Background(), domain.RoleClient, "c1", domain.UpdateProfileRequest{})

	require.NoError(t, err)
	assert.Equal(t, existing, a)
}

func TestUpdateProfile_LawyerFieldsOnClient(t *testing.T) {
	svc := newService(nil, nil, &mockAccountStore{})
	_, err := svc.UpdateProfile(context.Background(), domain.RoleClient, "c1", domain.UpdateProfileRequest{
		Fees: ptr(150.0),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdateProfile_HappyPath(t *testing.T) {
	lawyers := &mockAccountStore{}
	lawyers.On("Update", mock.Anything, "l1", map[string]interface{}{
		"fees":      200.0,
		"ph_number": "+201234567890",
	}).Return(nil)
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{AccountID: "l1", Fees: 200}, nil)

	svc := newService(nil, lawyers, nil)
	a, err := svc.UpdateProfile(context.Background(), domain.RoleLawyer, "l1", domain.UpdateProfileRequest{
		Fees:  ptr(200.0),
		Phone: ptr("+201234567890"),
	})

	require.NoError(t, err)
	assert.Equal(t, 200.0, a.Fees)
	lawyers.AssertExpectations(t)
}

func TestProfilePictureURL_PresignsStoredObject(t *testing.T) {
	lawyers := &mockAccountStore{}
	files := &mockFileStore{}
	lawyers.On("Get", mock.Anything, "l1").Return(&domain.Account{
		AccountID:      "l1",
		ProfilePicture: "s3://lawlink-uploads/images/01ABC_me.png",
	}, nil)
	files.On("PresignedURL", mock.Anything, "images/01ABC_me.png", pictureURLTTL).
		Return("https://s3.example/images/01ABC_me.png?sig=xyz", nil)

	svc := newServiceWithFiles(lawyers, nil, files)
	url, err := svc.ProfilePictureURL(context.Background(), domain.RoleLawyer, "l1")

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/images/01ABC_me.png?sig=xyz", url)
	files.AssertExpectations(t)
}

func TestProfilePictureURL_DefaultPictureReturnedAsIs(t *testing.T) {
	clients := &mockAccountStore{}
	files := &mockFileStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{
		AccountID:      "c1",
		ProfilePicture: domain.DefaultProfilePicture,
	}, nil)

	svc := newServiceWithFiles(nil, clients, files)
	url, err := svc.ProfilePictureURL(context.Background(), domain.RoleClient, "c1")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfilePicture, url)
	files.AssertNotCalled(t, "PresignedURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfilePicture_ReplacesAndDeletesOld(t *testing.T) {
	clients := &mockAccountStore{}
	files := &mockFileStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{
		AccountID:      "c1",
		ProfilePicture: "s3://lawlink-uploads/images/old_me.png",
	}, nil)
	files.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "image/png").
		Return("s3://lawlink-uploads/images/new_me.png", nil)
	clients.On("Update", mock.Anything, "c1", map[string]interface{}{
		"profile_picture": "s3://lawlink-uploads/images/new_me.png",
	}).Return(nil)
	files.On("Delete", mock.Anything, "images/old_me.png").Return(nil)

	svc := newServiceWithFiles(nil, clients, files)
	_, err := svc.UpdateProfilePicture(context.Background(), domain.RoleClient, "c1", PictureUpload{
		Filename: "me.png", ContentType: "image/png", Content: strings.NewReader("png-bytes"),
	})

	require.NoError(t, err)
	files.AssertExpectations(t)
	clients.AssertExpectations(t)
}

func TestUpdateProfilePicture_DeleteFailureIsNonFatal(t *testing.T) {
	clients := &mockAccountStore{}
	files := &mockFileStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{
		AccountID:      "c1",
		ProfilePicture: "s3://lawlink-uploads/images/old_me.png",
	}, nil)
	files.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("s3://lawlink-uploads/images/new_me.png", nil)
	clients.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)
	files.On("Delete", mock.Anything, "images/old_me.png").Return(errors.New("s3 down"))

	svc := newServiceWithFiles(nil, clients, files)
	_, err := svc.UpdateProfilePicture(context.Background(), domain.RoleClient, "c1", PictureUpload{
		Filename: "me.png", Content: strings.NewReader("png-bytes"),
	})

	require.NoError(t, err)
}

func TestUpdateProfilePicture_UploadFailure(t *testing.T) {
	clients := &mockAccountStore{}
	files := &mockFileStore{}
	clients.On("Get", mock.Anything, "c1").Return(&domain.Account{AccountID: "c1"}, nil)
	files.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("s3 down"))

	svc := newServiceWithFiles(nil, clients, files)
	_, err := svc.UpdateProfilePicture(context.Background(), domain.RoleClient, "c1", PictureUpload{
		Filename: "me.png", Content: strings.NewReader("png-bytes"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	clients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestObjectKey(t *testing.T) {
	key, ok := objectKey("s3://lawlink-uploads/images/01ABC_me.png")
	require.True(t, ok)
	assert.Equal(t, "images/01ABC_me.png", key)

	_, ok = objectKey("default.jpg")
	assert.False(t, ok)

	_, ok = objectKey("s3://bucket-only")
	assert.False(t, ok)
}
