package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/validate"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateAppointmentRequest) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID string, req domain.UpdateAppointmentStatusRequest) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	Delete(ctx context.Context, appointmentID string) error
}

type appointmentStore interface {
	Insert(ctx context.Context, a *domain.Appointment) (string, error)
	Get(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	Delete(ctx context.Context, appointmentID string) error
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type service struct {
	repo       appointmentStore
	lawyerRepo accountStore
	clientRepo accountStore
}

type ServiceDeps struct {
	AppointmentRepo appointmentStore
	LawyerRepo      accountStore
	ClientRepo      accountStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:       deps.AppointmentRepo,
		lawyerRepo: deps.LawyerRepo,
		clientRepo: deps.ClientRepo,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateAppointmentRequest) (*domain.Appointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, domain.ErrNotFound)
	}
	if _, err := s.lawyerRepo.Get(ctx, req.LawyerID); err != nil {
		return nil, fmt.Errorf("lawyer %s: %w", req.LawyerID, domain.ErrNotFound)
	}

	a := &domain.Appointment{
		ClientID:  req.ClientID,
		LawyerID:  req.LawyerID,
		Title:     req.Title,
		Status:    domain.AppointmentPending,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateStatus moves a pending appointment to accepted or rejected. Accepting
// requires a date.
func (s *service) UpdateStatus(ctx context.Context, appointmentID string, req domain.UpdateAppointmentStatusRequest) (*domain.Appointment, error) {
	if req.Status != domain.AppointmentAccepted && req.Status != domain.AppointmentRejected {
		return nil, fmt.Errorf("status must be accepted or rejected: %w", domain.ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, appointmentID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"appointment_status": req.Status}
	if req.Status == domain.AppointmentAccepted {
		if req.Date == "" {
			return nil, fmt.Errorf("date required when accepting: %w", domain.ErrBadRequest)
		}
		d, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, fmt.Errorf("date must be RFC 3339: %w", domain.ErrBadRequest)
		}
		updates["appointment_date"] = d.UTC().Format(time.RFC3339)
	}
	if err := s.repo.Update(ctx, appointmentID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, appointmentID)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, appointmentID string) error {
	if _, err := s.repo.Get(ctx, appointmentID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, appointmentID)
}
