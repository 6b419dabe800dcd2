package service

import (
	"Pollhive/internal/model"
	"Pollhive/internal/pkg/consts"
	pkgmongo "Pollhive/internal/pkg/mongo"
	"Pollhive/internal/pkg/sentiment"
	"Pollhive/internal/pkg/worker"
	"Pollhive/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const sentimentAttempts = 3

type CommentService interface {
	CreateComment(ctx context.Context, userID, pollID, text, parentID string) (*model.Comment, error)
	GetPollComments(ctx context.Context, pollID string, limit int64) ([]*model.Comment, error)
}

type commentServiceImpl struct {
	client      *mongo.Client
	commentRepo repository.CommentRepo
	pollRepo    repository.PollRepo
	userRepo    repository.UserRepo
	analyzer    sentiment.Analyzer
	pool        *worker.Pool
	publisher   EventPublisher
}

func NewCommentService(
	client *mongo.Client,
	commentRepo repository.CommentRepo,
	pollRepo repository.PollRepo,
	userRepo repository.UserRepo,
	analyzer sentiment.Analyzer,
	pool *worker.Pool,
	publisher EventPublisher,
) CommentService {
	return &commentServiceImpl{
		client:      client,
		commentRepo: commentRepo,
		pollRepo:    pollRepo,
		userRepo:    userRepo,
		analyzer:    analyzer,
		pool:        pool,
		publisher:   publisher,
	}
}

// CreateComment 创建评论并双向挂接到投票贴与用户，同事务提交。
// 情感分析交给后台任务，全部失败时回写 error 终态标签。
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID, pollID, text, parentID string) (*model.Comment, error) {
	if userID == "" || pollID == "" || text == "" {
		return nil, ErrParamInvalid
	}

	if _, err := s.pollRepo.GetPoll(ctx, pollID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if _, err := s.userRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		UserID:         userID,
		PollID:         pollID,
		Text:           text,
		ParentID:       parentID,
		CreatedAt:      time.Now().UTC(),
		SentimentLabel: model.SentimentPending,
	}

	err := pkgmongo.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		commentID, err := s.commentRepo.Insert(sc, comment)
		if err != nil {
			return err
		}
		if err := s.pollRepo.AddCommentToPoll(sc, pollID, commentID); err != nil {
			return err
		}
		return s.userRepo.AddCommentToUser(sc, userID, commentID)
	})
	if err != nil {
		return nil, err
	}

	s.scheduleSentiment(comment.ID.Hex(), text)

	now := time.Now().UTC()
	if err := s.publisher.Publish(ctx, consts.TopicUserInteractions, userID, pollID, model.ActionComment, now); err != nil {
		log.ErrorContext(ctx, "comment event publish failed", "userID", userID, "pollID", pollID, "err", err)
	}

	return comment, nil
}

func (s *commentServiceImpl) GetPollComments(ctx context.Context, pollID string, limit int64) ([]*model.Comment, error) {
	if pollID == "" {
		return nil, ErrParamInvalid
	}
	return s.commentRepo.GetByPoll(ctx, pollID, limit)
}

// scheduleSentiment 提交后台情感分析任务，调用方不等待结果
func (s *commentServiceImpl) scheduleSentiment(commentID, text string) {
	s.pool.Submit(worker.Task{
		Name:     "sentiment:" + commentID,
		Attempts: sentimentAttempts,
		Run: func(ctx context.Context) error {
			score, label, err := s.analyzer.Analyze(ctx, text)
			if err != nil {
				return err
			}
			return s.commentRepo.UpdateSentiment(ctx, commentID, score, label)
		},
		OnExhausted: func(ctx context.Context, err error) {
			if err := s.commentRepo.UpdateSentiment(ctx, commentID, nil, model.SentimentError); err != nil {
				log.ErrorContext(ctx, "sentiment terminal label write failed", "commentID", commentID, "err", err)
			}
		},
	})
}
