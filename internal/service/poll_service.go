package service

import (
	"Pollhive/internal/model"
	"Pollhive/internal/pkg/consts"
	pkgmongo "Pollhive/internal/pkg/mongo"
	"Pollhive/internal/recommend"
	"Pollhive/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreatePollParams 创建投票贴的入参
type CreatePollParams struct {
	Title         string
	Description   string
	Topics        []string
	OptionTexts   []string
	RequiredVotes int64
	ExpiresAt     *time.Time
	Visibility    string

	RequiresPaymentForVoting bool
	PaymentAmountForVoting   float64
	CreationFee              float64
}

type PollService interface {
	CreatePoll(ctx context.Context, userID string, params CreatePollParams) (*model.Poll, error)
	GetPoll(ctx context.Context, pollID string) (*model.Poll, error)
	ExtendVotes(ctx context.Context, userID, pollID string, additional int64, fee float64) (*model.Poll, error)
	ListTrending(ctx context.Context, limit int64) ([]*model.Poll, error)
}

type pollServiceImpl struct {
	pollRepo    repository.PollRepo
	userRepo    repository.UserRepo
	paymentRepo repository.PaymentRepo

	// runTxn 默认挂到 Mongo 会话事务上
	runTxn func(ctx context.Context, fn func(sc mongo.SessionContext) error) error
}

func NewPollService(
	client *mongo.Client,
	pollRepo repository.PollRepo,
	userRepo repository.UserRepo,
	paymentRepo repository.PaymentRepo,
) PollService {
	return &pollServiceImpl{
		pollRepo:    pollRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		runTxn: func(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
			return pkgmongo.WithTransaction(ctx, client, fn)
		},
	}
}

// CreatePoll 创建投票贴。特征向量在创建时一次性算好；
// 插入、创建者挂接与创建费用流水同事务提交，失败不留半成品。
func (s *pollServiceImpl) CreatePoll(ctx context.Context, userID string, params CreatePollParams) (*model.Poll, error) {
	if userID == "" || params.Title == "" || len(params.OptionTexts) < 2 {
		return nil, ErrParamInvalid
	}

	if _, err := s.userRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	options := make([]model.PollOption, 0, len(params.OptionTexts))
	for _, text := range params.OptionTexts {
		options = append(options, model.PollOption{
			OptionID: primitive.NewObjectID(),
			Text:     text,
		})
	}

	visibility := params.Visibility
	if visibility == "" {
		visibility = consts.VisibilityPublic
	}

	poll := &model.Poll{
		Title:         params.Title,
		Description:   params.Description,
		Topics:        params.Topics,
		Options:       options,
		CreatedBy:     userID,
		CreatedAt:     time.Now().UTC(),
		ExpiresAt:     params.ExpiresAt,
		Visibility:    visibility,
		IsActive:      true,
		RequiredVotes: params.RequiredVotes,
		FeatureVector: recommend.BuildVector(params.Title, params.Description, params.Topics),

		RequiresPaymentForVoting:   params.RequiresPaymentForVoting,
		PaymentAmountForVoting:     params.PaymentAmountForVoting,
		RequiresPaymentForCreation: params.CreationFee > 0,
		PaymentAmountForCreation:   params.CreationFee,
	}

	err := s.runTxn(ctx, func(sc mongo.SessionContext) error {
		pollID, err := s.pollRepo.Create(sc, poll)
		if err != nil {
			return err
		}
		if err := s.userRepo.AddPollCreated(sc, userID, pollID); err != nil {
			return err
		}

		if params.CreationFee > 0 {
			payment := &model.Payment{
				UserID:        userID,
				PollID:        pollID,
				Amount:        params.CreationFee,
				PaymentType:   model.PaymentTypeCreation,
				TransactionID: uuid.NewString(),
				Status:        model.PaymentStatusCompleted,
			}
			paymentID, err := s.paymentRepo.Record(sc, payment)
			if err != nil {
				return err
			}
			if err := s.userRepo.AddPaymentToUser(sc, userID, paymentID); err != nil {
				return err
			}
			return s.pollRepo.LinkPayment(sc, pollID, paymentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "poll created", "pollID", poll.ID.Hex(), "userID", userID)
	return poll, nil
}

func (s *pollServiceImpl) GetPoll(ctx context.Context, pollID string) (*model.Poll, error) {
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	return poll, nil
}

// ExtendVotes 扩充配额，新配额超过已投票数时重新激活，
// 扩票费用作为独立流水记录
func (s *pollServiceImpl) ExtendVotes(ctx context.Context, userID, pollID string, additional int64, fee float64) (*model.Poll, error) {
	if additional <= 0 {
		return nil, ErrParamInvalid
	}

	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if poll.CreatedBy != userID {
		return nil, UnauthorizedError
	}

	if err := s.pollRepo.ExtendVotes(ctx, pollID, additional); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}

	if fee > 0 {
		s.recordPayment(ctx, userID, pollID, fee, model.PaymentTypeVoteExtension)
	}

	log.InfoContext(ctx, "poll votes extended", "pollID", pollID, "additional", additional)
	return s.pollRepo.GetPoll(ctx, pollID)
}

func (s *pollServiceImpl) ListTrending(ctx context.Context, limit int64) ([]*model.Poll, error) {
	return s.pollRepo.TrendingPolls(ctx, limit)
}

func (s *pollServiceImpl) recordPayment(ctx context.Context, userID, pollID string, amount float64, paymentType string) {
	payment := &model.Payment{
		UserID:        userID,
		PollID:        pollID,
		Amount:        amount,
		PaymentType:   paymentType,
		TransactionID: uuid.NewString(),
		Status:        model.PaymentStatusCompleted,
	}

	paymentID, err := s.paymentRepo.Record(ctx, payment)
	if err != nil {
		log.ErrorContext(ctx, "payment record failed", "pollID", pollID, "type", paymentType, "err", err)
		return
	}
	if err := s.userRepo.AddPaymentToUser(ctx, userID, paymentID); err != nil {
		log.ErrorContext(ctx, "payment link to user failed", "paymentID", paymentID, "err", err)
	}
	if err := s.pollRepo.LinkPayment(ctx, pollID, paymentID); err != nil {
		log.ErrorContext(ctx, "payment link to poll failed", "paymentID", paymentID, "err", err)
	}
}
