package question

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/validate"
)

type Service interface {
	CreateQuestion(ctx context.Context, req domain.CreateQuestionRequest) (*domain.Question, error)
	CreateAnswer(ctx context.Context, questionID string, req domain.CreateAnswerRequest) (*domain.Answer, error)
	AnswersByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error)
	AllQuestions(ctx context.Context) ([]domain.Question, error)
	QuestionsByClient(ctx context.Context, clientID string) ([]domain.Question, error)
	DeleteQuestion(ctx context.Context, questionID string) error
}

type questionStore interface {
	Insert(ctx context.Context, q *domain.Question) (string, error)
	Get(ctx context.Context, questionID string) (*domain.Question, error)
	ListAll(ctx context.Context) ([]domain.Question, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Question, error)
	Delete(ctx context.Context, questionID string) error
	InsertAnswer(ctx context.Context, a *domain.Answer) (string, error)
	ListAnswers(ctx context.Context, questionID string) ([]domain.Answer, error)
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type service struct {
	repo       questionStore
	lawyerRepo accountStore
	clientRepo accountStore
}

type ServiceDeps struct {
	QuestionRepo questionStore
	LawyerRepo   accountStore
	ClientRepo   accountStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:       deps.QuestionRepo,
		lawyerRepo: deps.LawyerRepo,
		clientRepo: deps.ClientRepo,
	}
}

func (s *service) CreateQuestion(ctx context.Context, req domain.CreateQuestionRequest) (*domain.Question, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, domain.ErrNotFound)
	}
	q := &domain.Question{
		ClientID: req.ClientID,
		Title:    req.Title,
		Text:     req.Text,
		AskedAt:  time.Now().UTC(),
	}
	if _, err := s.repo.Insert(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) CreateAnswer(ctx context.Context, questionID string, req domain.CreateAnswerRequest) (*domain.Answer, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, questionID); err != nil {
		return nil, err
	}
	if _, err := s.lawyerRepo.Get(ctx, req.LawyerID); err != nil {
		return nil, fmt.Errorf("lawyer %s: %w", req.LawyerID, domain.ErrNotFound)
	}
	a := &domain.Answer{
		QuestionID: questionID,
		LawyerID:   req.LawyerID,
		Text:       req.Text,
		RepliedAt:  time.Now().UTC(),
	}
	if _, err := s.repo.InsertAnswer(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) AnswersByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error) {
	if _, err := s.repo.Get(ctx, questionID); err != nil {
		return nil, err
	}
	answers, err := s.repo.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}
	s.hydrateAnswers(ctx, answers)
	return answers, nil
}

// AllQuestions returns every question with its asking client and its answers
// (each answer carrying its lawyer) attached.
func (s *service) AllQuestions(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		q := &questions[i]
		if c, err := s.clientRepo.Get(ctx, q.ClientID); err == nil {
			q.Client = c
		} else {
			slog.Warn("question references missing client", "question_id", q.QuestionID, "client_id", q.ClientID)
		}
		answers, err := s.repo.ListAnswers(ctx, q.QuestionID)
		if err != nil {
			return nil, err
		}
		s.hydrateAnswers(ctx, answers)
		q.Answers = answers
	}
	return questions, nil
}

func (s *service) QuestionsByClient(ctx context.Context, clientID string) ([]domain.Question, error) {
	if _, err := s.clientRepo.Get(ctx, clientID); err != nil {
		return nil, fmt.Errorf("client %s: %w", clientID, domain.ErrNotFound)
	}
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) DeleteQuestion(ctx context.Context, questionID string) error {
	if _, err := s.repo.Get(ctx, questionID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, questionID)
}

func (s *service) hydrateAnswers(ctx context.Context, answers []domain.Answer) {
	for i := range answers {
		a := &answers[i]
		if l, err := s.lawyerRepo.Get(ctx, a.LawyerID); err == nil {
			a.Lawyer = l
		} else {
			slog.Warn("answer references missing lawyer", "answer_id", a.AnswerID, "lawyer_id", a.LawyerID)
		}
	}
}
