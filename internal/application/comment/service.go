package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/validate"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateCommentRequest) (*domain.Comment, error)
	CommentsByClient(ctx context.Context, clientID string) ([]domain.Comment, error)
	CommentsByLawyer(ctx context.Context, lawyerID string) ([]domain.Comment, error)
	CreateReply(ctx context.Context, commentID string, req domain.CreateReplyRequest) (*domain.CommentReply, error)
	RepliesByComment(ctx context.Context, commentID string) ([]domain.CommentReply, error)
	Delete(ctx context.Context, commentID string) error
}

type commentStore interface {
	Insert(ctx context.Context, c *domain.Comment) (string, error)
	Get(ctx context.Context, commentID string) (*domain.Comment, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Comment, error)
	ListByLawyer(ctx context.Context, lawyerID string) ([]domain.Comment, error)
	Delete(ctx context.Context, commentID string) error
	InsertReply(ctx context.Context, rep *domain.CommentReply) (string, error)
	ListReplies(ctx context.Context, commentID string) ([]domain.CommentReply, error)
}

type lawyerStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type clientStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type service struct {
	repo       commentStore
	lawyerRepo lawyerStore
	clientRepo clientStore
}

type ServiceDeps struct {
	CommentRepo commentStore
	LawyerRepo  lawyerStore
	ClientRepo  clientStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:       deps.CommentRepo,
		lawyerRepo: deps.LawyerRepo,
		clientRepo: deps.ClientRepo,
	}
}

// Create stores the comment and, when it carries a rating, folds that rating
// into the lawyer's aggregate as an incremental mean over rating_count.
func (s *service) Create(ctx context.Context, req domain.CreateCommentRequest) (*domain.Comment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, domain.ErrNotFound)
	}
	lawyer, err := s.lawyerRepo.Get(ctx, req.LawyerID)
	if err != nil {
		return nil, fmt.Errorf("lawyer %s: %w", req.LawyerID, domain.ErrNotFound)
	}

	c := &domain.Comment{
		ClientID:  req.ClientID,
		LawyerID:  req.LawyerID,
		Text:      req.Text,
		Rating:    req.Rating,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}

	if req.Rating > 0 {
		count := lawyer.RatingCount
		newRating := (lawyer.Rating*float64(count) + float64(req.Rating)) / float64(count+1)
		err := s.lawyerRepo.Update(ctx, req.LawyerID, map[string]interface{}{
			"rating":       newRating,
			"rating_count": count + 1,
		})
		if err != nil {
			slog.Warn("could not fold rating into lawyer aggregate",
				"lawyer_id", req.LawyerID, "comment_id", c.CommentID, "err", err)
		}
	}
	return c, nil
}

func (s *service) CommentsByClient(ctx context.Context, clientID string) ([]domain.Comment, error) {
	comments, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	s.hydrate(ctx, comments)
	return comments, nil
}

func (s *service) CommentsByLawyer(ctx context.Context, lawyerID string) ([]domain.Comment, error) {
	comments, err := s.repo.ListByLawyer(ctx, lawyerID)
	if err != nil {
		return nil, err
	}
	s.hydrate(ctx, comments)
	return comments, nil
}

func (s *service) CreateReply(ctx context.Context, commentID string, req domain.CreateReplyRequest) (*domain.CommentReply, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, commentID); err != nil {
		return nil, err
	}
	if _, err := s.lawyerRepo.Get(ctx, req.LawyerID); err != nil {
		return nil, fmt.Errorf("lawyer %s: %w", req.LawyerID, domain.ErrNotFound)
	}
	rep := &domain.CommentReply{
		CommentID: commentID,
		LawyerID:  req.LawyerID,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.repo.InsertReply(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *service) RepliesByComment(ctx context.Context, commentID string) ([]domain.CommentReply, error) {
	if _, err := s.repo.Get(ctx, commentID); err != nil {
		return nil, err
	}
	return s.repo.ListReplies(ctx, commentID)
}

func (s *service) Delete(ctx context.Context, commentID string) error {
	if _, err := s.repo.Get(ctx, commentID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, commentID)
}

// hydrate attaches the commenting client and the replies to each comment.
func (s *service) hydrate(ctx context.Context, comments []domain.Comment) {
	for i := range comments {
		c := &comments[i]
		if cl, err := s.clientRepo.Get(ctx, c.ClientID); err == nil {
			c.Client = cl
		} else {
			slog.Warn("comment references missing client", "comment_id", c.CommentID, "client_id", c.ClientID)
		}
		if replies, err := s.repo.ListReplies(ctx, c.CommentID); err == nil {
			c.Replies = replies
		} else {
			slog.Warn("could not list comment replies", "comment_id", c.CommentID, "err", err)
		}
	}
}
