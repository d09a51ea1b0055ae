package registration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/infrastructure/smtp"
	"github.com/lawlink-api/internal/pkg/id"
	"github.com/lawlink-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// Pending is the ledger payload for a registration awaiting its code: the
// account is fully built (password already hashed) and only persisted once the
// code checks out.
type Pending struct {
	Role    string
	Account domain.Account
}

// ProfileUpload carries an optional profile picture supplied at finalize.
type ProfileUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type Service interface {
	InitiateLawyer(ctx context.Context, req domain.RegisterLawyerRequest) (string, error)
	InitiateClient(ctx context.Context, req domain.RegisterClientRequest) (string, error)
	Finalize(ctx context.Context, ticketID, code string, pic *ProfileUpload) (*domain.Account, error)
	RegisterAdmin(ctx context.Context, req domain.RegisterAdminRequest) (*domain.Account, error)
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Insert(ctx context.Context, a *domain.Account) (string, error)
}

type ticketLedger interface {
	Issue(key string, payload Pending, ttl time.Duration) (string, error)
	Claim(key, code string) (Pending, error)
	Release(key string)
	Consume(key string)
}

type fileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type service struct {
	adminRepo  accountStore
	lawyerRepo accountStore
	clientRepo accountStore
	ledger     ticketLedger
	files      fileStore
	mailer     smtp.Mailer
	otpTTL     time.Duration
}

type ServiceDeps struct {
	AdminRepo  accountStore
	LawyerRepo accountStore
	ClientRepo accountStore
	Ledger     ticketLedger
	Files      fileStore
	Mailer     smtp.Mailer
	OTPTTL     time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		adminRepo:  deps.AdminRepo,
		lawyerRepo: deps.LawyerRepo,
		clientRepo: deps.ClientRepo,
		ledger:     deps.Ledger,
		files:      deps.Files,
		mailer:     deps.Mailer,
		otpTTL:     deps.OTPTTL,
	}
}

func (s *service) InitiateLawyer(ctx context.Context, req domain.RegisterLawyerRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	a := domain.Account{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		AccountType:       domain.RoleLawyer,
		Fees:              req.Fees,
		Specializations:   req.Specializations,
		YearsOfExperience: req.YearsOfExperience,
		Universities:      req.Universities,
	}
	return s.initiate(ctx, domain.RoleLawyer, a, req.Password)
}

func (s *service) InitiateClient(ctx context.Context, req domain.RegisterClientRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	a := domain.Account{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		AccountType: domain.RoleClient,
		Preferences: req.Preferences,
	}
	return s.initiate(ctx, domain.RoleClient, a, req.Password)
}

// initiate hashes the password, checks the email against both self-service
// collections and parks the account in the ledger under a fresh ticket ID.
// The plaintext password never leaves this function.
func (s *service) initiate(ctx context.Context, role string, a domain.Account, password string) (string, error) {
	if _, err := s.lawyerRepo.GetByEmail(ctx, a.Email); err == nil {
		return "", fmt.Errorf("email already registered as lawyer: %w", domain.ErrConflict)
	}
	if _, err := s.clientRepo.GetByEmail(ctx, a.Email); err == nil {
		return "", fmt.Errorf("email already registered as client: %w", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	a.PasswordHash = string(hash)

	ticketID := uuid.NewString()
	code, err := s.ledger.Issue(ticketID, Pending{Role: role, Account: a}, s.otpTTL)
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(s.otpTTL.Minutes()))
	if err := s.mailer.SendEmail(a.Email, "Verify your email", body); err != nil {
		slog.Error("verification email delivery failed", "ticket_id", ticketID, "email", a.Email, "error", err)
		// Drop the ticket so the caller can re-initiate cleanly.
		s.ledger.Consume(ticketID)
		return "", fmt.Errorf("could not deliver verification code: %w", domain.ErrUpstream)
	}
	return ticketID, nil
}

// Finalize claims the ticket so the claim-upload-insert-consume sequence is
// exclusive per ticket: a concurrent finalize with the same code sees the
// ticket as gone. Downstream failures release the claim so the caller can
// retry within the TTL.
func (s *service) Finalize(ctx context.Context, ticketID, code string, pic *ProfileUpload) (*domain.Account, error) {
	pending, err := s.ledger.Claim(ticketID, code)
	if err != nil {
		return nil, err
	}

	a := pending.Account
	a.ProfilePicture = domain.DefaultProfilePicture
	if pic != nil {
		key := fmt.Sprintf("images/%s_%s", id.New(), pic.Filename)
		url, err := s.files.Upload(ctx, key, pic.Content, pic.ContentType)
		if err != nil {
			slog.Error("profile picture upload failed", "ticket_id", ticketID, "error", err)
			s.ledger.Release(ticketID)
			return nil, fmt.Errorf("upload profile picture: %w", domain.ErrUpstream)
		}
		a.ProfilePicture = url
	}

	now := time.Now().UTC()
	a.Verified = true
	a.CreatedAt = now
	a.UpdatedAt = now

	repo := s.repoFor(pending.Role)
	if _, err := repo.Insert(ctx, &a); err != nil {
		s.ledger.Release(ticketID)
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		slog.Error("persist account failed", "ticket_id", ticketID, "role", pending.Role, "error", err)
		return nil, fmt.Errorf("persist account: %w", domain.ErrUpstream)
	}

	s.ledger.Consume(ticketID)
	return &a, nil
}

func (s *service) RegisterAdmin(ctx context.Context, req domain.RegisterAdminRequest) (*domain.Account, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.adminRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered as admin: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := &domain.Account{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		PasswordHash:   string(hash),
		ProfilePicture: domain.DefaultProfilePicture,
		Verified:       true,
		AccountType:    domain.RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.adminRepo.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) repoFor(role string) accountStore {
	switch role {
	case domain.RoleAdmin:
		return s.adminRepo
	case domain.RoleLawyer:
		return s.lawyerRepo
	default:
		return s.clientRepo
	}
}
