package account

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFirstName         = "first_name"
	fieldLastName          = "last_name"
	fieldPhone             = "ph_number"
	fieldAddress           = "address"
	fieldFees              = "fees"
	fieldSpecializations   = "specializations"
	fieldYearsOfExperience = "years_of_experience"
	fieldUniversities      = "universities"
	fieldPreferences       = "preferences"
	fieldProfilePicture    = "profile_picture"
)

// pictureURLTTL bounds how long a presigned profile-picture link stays valid.
const pictureURLTTL = 15 * time.Minute

// PictureUpload carries a replacement profile picture.
type PictureUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type Service interface {
	ListLawyers(ctx context.Context) ([]domain.Account, error)
	ListClients(ctx context.Context) ([]domain.Account, error)
	ListAdmins(ctx context.Context) ([]domain.Account, error)
	Get(ctx context.Context, role, accountID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, role, accountID string, req domain.UpdateProfileRequest) (*domain.Account, error)
	ProfilePictureURL(ctx context.Context, role, accountID string) (string, error)
	UpdateProfilePicture(ctx context.Context, role, accountID string, pic PictureUpload) (*domain.Account, error)
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	Scan(ctx context.Context) ([]domain.Account, error)
}

type fileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	adminRepo  accountStore
	lawyerRepo accountStore
	clientRepo accountStore
	files      fileStore
}

type ServiceDeps struct {
	AdminRepo  accountStore
	LawyerRepo accountStore
	ClientRepo accountStore
	Files      fileStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		adminRepo:  deps.AdminRepo,
		lawyerRepo: deps.LawyerRepo,
		clientRepo: deps.ClientRepo,
		files:      deps.Files,
	}
}

func (s *service) ListLawyers(ctx context.Context) ([]domain.Account, error) {
	return s.lawyerRepo.Scan(ctx)
}

func (s *service) ListClients(ctx context.Context) ([]domain.Account, error) {
	return s.clientRepo.Scan(ctx)
}

func (s *service) ListAdmins(ctx context.Context) ([]domain.Account, error) {
	return s.adminRepo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, role, accountID string) (*domain.Account, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, accountID)
}

// UpdateProfile applies a typed partial update. The field set is closed:
// anything outside UpdateProfileRequest never reaches the store, and lawyer-only
// fields are rejected for other roles.
func (s *service) UpdateProfile(ctx context.Context, role, accountID string, req domain.UpdateProfileRequest) (*domain.Account, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates[fieldFirstName] = *req.FirstName
	}
	if req.LastName != nil {
		updates[fieldLastName] = *req.LastName
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Address != nil {
		updates[fieldAddress] = *req.Address
	}
	if req.Fees != nil || req.Specializations != nil || req.YearsOfExperience != nil || req.Universities != nil {
		if role != domain.RoleLawyer {
			return nil, fmt.Errorf("lawyer fields on a %s profile: %w", role, domain.ErrBadRequest)
		}
		if req.Fees != nil {
			updates[fieldFees] = *req.Fees
		}
		if req.Specializations != nil {
			updates[fieldSpecializations] = *req.Specializations
		}
		if req.YearsOfExperience != nil {
			updates[fieldYearsOfExperience] = *req.YearsOfExperience
		}
		if req.Universities != nil {
			updates[fieldUniversities] = *req.Universities
		}
	}
	if req.Preferences != nil {
		if role != domain.RoleClient {
			return nil, fmt.Errorf("preferences on a %s profile: %w", role, domain.ErrBadRequest)
		}
		updates[fieldPreferences] = *req.Preferences
	}
	if len(updates) == 0 {
		return repo.Get(ctx, accountID)
	}
	if err := repo.Update(ctx, accountID, updates); err != nil {
		return nil, err
	}
	return repo.Get(ctx, accountID)
}

// ProfilePictureURL resolves the account's stored picture to a fetchable URL.
// Objects in the bucket get a time-limited presigned GET link; anything else
// (the default picture) is returned as stored.
func (s *service) ProfilePictureURL(ctx context.Context, role, accountID string) (string, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return "", err
	}
	a, err := repo.Get(ctx, accountID)
	if err != nil {
		return "", err
	}

	key, ok := objectKey(a.ProfilePicture)
	if !ok {
		return a.ProfilePicture, nil
	}
	url, err := s.files.PresignedURL(ctx, key, pictureURLTTL)
	if err != nil {
		slog.Error("presign profile picture failed", "account_id", accountID, "error", err)
		return "", fmt.Errorf("presign profile picture: %w", domain.ErrUpstream)
	}
	return url, nil
}

// UpdateProfilePicture uploads the replacement, points the account at it and
// then removes the previous object. A failed removal only orphans the old
// object, so it is logged rather than surfaced.
func (s *service) UpdateProfilePicture(ctx context.Context, role, accountID string, pic PictureUpload) (*domain.Account, error) {
	repo, err := s.repoFor(role)
	if err != nil {
		return nil, err
	}
	a, err := repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("images/%s_%s", id.New(), pic.Filename)
	url, err := s.files.Upload(ctx, key, pic.Content, pic.ContentType)
	if err != nil {
		slog.Error("profile picture upload failed", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("upload profile picture: %w", domain.ErrUpstream)
	}
	if err := repo.Update(ctx, accountID, map[string]interface{}{fieldProfilePicture: url}); err != nil {
		return nil, err
	}

	if oldKey, ok := objectKey(a.ProfilePicture); ok {
		if err := s.files.Delete(ctx, oldKey); err != nil {
			slog.Warn("could not delete replaced profile picture", "account_id", accountID, "key", oldKey, "error", err)
		}
	}
	return repo.Get(ctx, accountID)
}

// objectKey extracts the bucket key from a stored s3://bucket/key URI.
func objectKey(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", false
	}
	_, key, ok := strings.Cut(rest, "/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (s *service) repoFor(role string) (accountStore, error) {
	switch role {
	case domain.RoleAdmin:
		return s.adminRepo, nil
	case domain.RoleLawyer:
		return s.lawyerRepo, nil
	case domain.RoleClient:
		return s.clientRepo, nil
	default:
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrBadRequest)
	}
}
