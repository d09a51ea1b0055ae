package casefile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/validate"
)

type Service interface {
	Add(ctx context.Context, req domain.CreateCaseRequest) (*domain.Case, error)
	Get(ctx context.Context, caseID string) (*domain.Case, error)
	Update(ctx context.Context, caseID string, req domain.UpdateCaseRequest) (*domain.Case, error)
	Delete(ctx context.Context, caseID string) error
	ListByUser(ctx context.Context, userID, role string) ([]domain.Case, error)
	ListAll(ctx context.Context) ([]domain.Case, error)
}

type caseStore interface {
	Insert(ctx context.Context, c *domain.Case) (string, error)
	Get(ctx context.Context, caseID string) (*domain.Case, error)
	Update(ctx context.Context, caseID string, updates map[string]interface{}) error
	Delete(ctx context.Context, caseID string) error
	ListByParty(ctx context.Context, attr, userID string) ([]domain.Case, error)
	ListAll(ctx context.Context) ([]domain.Case, error)
}

type interactionStore interface {
	Insert(ctx context.Context, in *domain.Interaction) error
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type service struct {
	repo         caseStore
	interactions interactionStore
	lawyerRepo   accountStore
	clientRepo   accountStore
}

type ServiceDeps struct {
	CaseRepo        caseStore
	InteractionRepo interactionStore
	LawyerRepo      accountStore
	ClientRepo      accountStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:         deps.CaseRepo,
		interactions: deps.InteractionRepo,
		lawyerRepo:   deps.LawyerRepo,
		clientRepo:   deps.ClientRepo,
	}
}

func (s *service) Add(ctx context.Context, req domain.CreateCaseRequest) (*domain.Case, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, domain.ErrNotFound)
	}
	if _, err := s.lawyerRepo.Get(ctx, req.LawyerID); err != nil {
		return nil, fmt.Errorf("lawyer %s: %w", req.LawyerID, domain.ErrNotFound)
	}

	now := time.Now().UTC()
	c := &domain.Case{
		ClientID:  req.ClientID,
		LawyerID:  req.LawyerID,
		Name:      req.Name,
		Details:   req.Details,
		Type:      req.Type,
		Status:    req.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}

	// Interaction records feed engagement reporting; a failure there must not
	// fail the case creation.
	err := s.interactions.Insert(ctx, &domain.Interaction{
		LawyerID:  req.LawyerID,
		ClientID:  req.ClientID,
		Type:      "case",
		Timestamp: now,
	})
	if err != nil {
		slog.Warn("could not record case interaction", "case_id", c.CaseID, "err", err)
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, caseID string) (*domain.Case, error) {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	s.hydrate(ctx, c)
	return c, nil
}

func (s *service) Update(ctx context.Context, caseID string, req domain.UpdateCaseRequest) (*domain.Case, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["case_name"] = *req.Name
	}
	if req.Details != nil {
		updates["case_details"] = *req.Details
	}
	if req.Type != nil {
		updates["case_type"] = *req.Type
	}
	if req.Status != nil {
		updates["case_status"] = *req.Status
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, caseID)
	}
	if _, err := s.repo.Get(ctx, caseID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, caseID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, caseID)
}

func (s *service) Delete(ctx context.Context, caseID string) error {
	if _, err := s.repo.Get(ctx, caseID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, caseID)
}

func (s *service) ListByUser(ctx context.Context, userID, role string) ([]domain.Case, error) {
	var attr string
	switch strings.ToLower(role) {
	case "lawyer":
		attr = "lawyer_id"
	case "client":
		attr = "client_id"
	default:
		return nil, fmt.Errorf("role must be lawyer or client: %w", domain.ErrBadRequest)
	}
	cases, err := s.repo.ListByParty(ctx, attr, userID)
	if err != nil {
		return nil, err
	}
	s.hydrateAll(ctx, cases)
	return cases, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Case, error) {
	cases, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.hydrateAll(ctx, cases)
	return cases, nil
}

// hydrate attaches the parties' account records to a case. A missing party is
// logged, not fatal: the case itself is still served.
func (s *service) hydrate(ctx context.Context, c *domain.Case) {
	if l, err := s.lawyerRepo.Get(ctx, c.LawyerID); err == nil {
		c.LawyerDetails = l
	} else {
		slog.Warn("case references missing lawyer", "case_id", c.CaseID, "lawyer_id", c.LawyerID)
	}
	if cl, err := s.clientRepo.Get(ctx, c.ClientID); err == nil {
		c.ClientDetails = cl
	} else {
		slog.Warn("case references missing client", "case_id", c.CaseID, "client_id", c.ClientID)
	}
}

func (s *service) hydrateAll(ctx context.Context, cases []domain.Case) {
	for i := range cases {
		s.hydrate(ctx, &cases[i])
	}
}
