package report

import (
	"context"
	"fmt"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/validate"
)

type Service interface {
	Add(ctx context.Context, req domain.CreateReportRequest) (*domain.Report, error)
	Update(ctx context.Context, reportID string, req domain.UpdateReportRequest) (*domain.Report, error)
	Delete(ctx context.Context, reportID string) error
	ListAll(ctx context.Context) ([]domain.Report, error)
}

type reportStore interface {
	Insert(ctx context.Context, rep *domain.Report) (string, error)
	Get(ctx context.Context, reportID string) (*domain.Report, error)
	Update(ctx context.Context, reportID string, updates map[string]interface{}) error
	Delete(ctx context.Context, reportID string) error
	ListAll(ctx context.Context) ([]domain.Report, error)
}

type service struct {
	repo reportStore
}

func NewService(repo reportStore) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, req domain.CreateReportRequest) (*domain.Report, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	rep := &domain.Report{
		ReporterID: req.ReporterID,
		Title:      req.Title,
		Text:       req.Text,
		Type:       req.Type,
		Status:     domain.ReportPending,
		ReportedAt: time.Now().UTC(),
	}
	if _, err := s.repo.Insert(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *service) Update(ctx context.Context, reportID string, req domain.UpdateReportRequest) (*domain.Report, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["report_title"] = *req.Title
	}
	if req.Text != nil {
		updates["report_text"] = *req.Text
	}
	if req.Type != nil {
		updates["report_type"] = *req.Type
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, reportID)
	}
	if _, err := s.repo.Get(ctx, reportID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, reportID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, reportID)
}

func (s *service) Delete(ctx context.Context, reportID string) error {
	if _, err := s.repo.Get(ctx, reportID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reportID)
}

func (s *service) ListAll(ctx context.Context) ([]domain.Report, error) {
	return s.repo.ListAll(ctx)
}
