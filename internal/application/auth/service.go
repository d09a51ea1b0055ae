package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/infrastructure/smtp"
	"github.com/lawlink-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// LoginResult bundles the signed session token with the matched account.
type LoginResult struct {
	Token   string          `json:"token"`
	Role    string          `json:"role"`
	Account *domain.Account `json:"account"`
}

// ResetTicket is the ledger payload for a pending password reset, keyed by
// email so a re-request replaces the previous code.
type ResetTicket struct {
	Role string
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	RequestReset(ctx context.Context, req ResetRequest) error
	ConfirmReset(ctx context.Context, req ConfirmResetRequest) error
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type resetLedger interface {
	Issue(key string, payload ResetTicket, ttl time.Duration) (string, error)
	Claim(key, code string) (ResetTicket, error)
	Release(key string)
	Consume(key string)
}

type jwtSigner interface {
	Sign(accountID, email, role string) (string, error)
}

type service struct {
	adminRepo  accountStore
	lawyerRepo accountStore
	clientRepo accountStore
	ledger     resetLedger
	mailer     smtp.Mailer
	jwt        jwtSigner
	otpTTL     time.Duration
}

type ServiceDeps struct {
	AdminRepo  accountStore
	LawyerRepo accountStore
	ClientRepo accountStore
	Ledger     resetLedger
	Mailer     smtp.Mailer
	JWT        jwtSigner
	OTPTTL     time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		adminRepo:  deps.AdminRepo,
		lawyerRepo: deps.LawyerRepo,
		clientRepo: deps.ClientRepo,
		ledger:     deps.Ledger,
		mailer:     deps.Mailer,
		jwt:        deps.JWT,
		otpTTL:     deps.OTPTTL,
	}
}

// Login resolves the email across the role collections in a fixed order:
// admins, then lawyers, then clients. An email present in more than one
// collection is a data-integrity fault; the first match wins and the rest are
// logged.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	type match struct {
		role    string
		account *domain.Account
	}
	var matches []match
	for _, c := range []struct {
		role string
		repo accountStore
	}{
		{domain.RoleAdmin, s.adminRepo},
		{domain.RoleLawyer, s.lawyerRepo},
		{domain.RoleClient, s.clientRepo},
	} {
		if a, err := c.repo.GetByEmail(ctx, req.Email); err == nil {
			matches = append(matches, match{role: c.role, account: a})
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no account for email: %w", domain.ErrNotFound)
	}
	if len(matches) > 1 {
		roles := make([]string, 0, len(matches))
		for _, m := range matches {
			roles = append(roles, m.role)
		}
		slog.Warn("email present in multiple role collections", "email", req.Email, "roles", roles)
	}

	m := matches[0]
	if err := bcrypt.CompareHashAndPassword([]byte(m.account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.jwt.Sign(m.account.AccountID, m.account.Email, m.role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: m.role, Account: m.account}, nil
}

// RequestReset issues a reset code for a lawyer or client account. Admins are
// excluded from self-service reset. A repeat request replaces the previous
// code, so only the latest one is ever valid.
func (s *service) RequestReset(ctx context.Context, req ResetRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	var role string
	if _, err := s.lawyerRepo.GetByEmail(ctx, req.Email); err == nil {
		role = domain.RoleLawyer
	} else if _, err := s.clientRepo.GetByEmail(ctx, req.Email); err == nil {
		role = domain.RoleClient
	} else {
		return fmt.Errorf("no account for email: %w", domain.ErrNotFound)
	}

	code, err := s.ledger.Issue(req.Email, ResetTicket{Role: role}, s.otpTTL)
	if err != nil {
		return err
	}
	body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.",
		code, int(s.otpTTL.Minutes()))
	if err := s.mailer.SendEmail(req.Email, "Password reset code", body); err != nil {
		slog.Error("reset email delivery failed", "email", req.Email, "error", err)
		s.ledger.Consume(req.Email)
		return fmt.Errorf("could not deliver reset code: %w", domain.ErrUpstream)
	}
	return nil
}

// ConfirmReset claims the code and rewrites only the password hash; the rest
// of the record is untouched. The claim makes concurrent confirms for the same
// email mutually exclusive; a failed update releases it so the caller can
// retry within the TTL.
func (s *service) ConfirmReset(ctx context.Context, req ConfirmResetRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}

	ticket, err := s.ledger.Claim(req.Email, req.OTP)
	if err != nil {
		return err
	}

	repo := s.lawyerRepo
	if ticket.Role == domain.RoleClient {
		repo = s.clientRepo
	}
	a, err := repo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.ledger.Release(req.Email)
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.ledger.Release(req.Email)
		return err
	}
	if err := repo.Update(ctx, a.AccountID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		s.ledger.Release(req.Email)
		return err
	}
	s.ledger.Consume(req.Email)
	return nil
}
