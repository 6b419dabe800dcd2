package service

import (
	"Pollhive/internal/model"
	"Pollhive/internal/pkg/consts"
	pkgmongo "Pollhive/internal/pkg/mongo"
	"Pollhive/internal/pkg/redis"
	"Pollhive/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	voteTxnAttempts = 3
	voteTxnBackoff  = 50 * time.Millisecond
)

type VoteService interface {
	CastVote(ctx context.Context, userID, pollID, optionID, paymentID string) (*model.Poll, error)
}

type voteServiceImpl struct {
	pollRepo    repository.PollRepo
	userRepo    repository.UserRepo
	paymentRepo repository.PaymentRepo
	publisher   EventPublisher

	// runTxn 默认挂到 Mongo 会话事务上，publish 默认走 Redis Pub/Sub
	runTxn  func(ctx context.Context, fn func(sc mongo.SessionContext) error) error
	publish func(ctx context.Context, channel string, payload []byte) error
}

func NewVoteService(
	client *mongo.Client,
	pollRepo repository.PollRepo,
	userRepo repository.UserRepo,
	paymentRepo repository.PaymentRepo,
	publisher EventPublisher,
) VoteService {
	return &voteServiceImpl{
		pollRepo:    pollRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		runTxn: func(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
			return pkgmongo.WithTransaction(ctx, client, fn)
		},
		publish: redis.Publish,
	}
}

// CastVote 投票主流程。
// 前置校验只做一次，写冲突重试时不再复查；
// 事务提交后的副作用按固定顺序执行，失败不回滚已提交的票。
func (s *voteServiceImpl) CastVote(ctx context.Context, userID, pollID, optionID, paymentID string) (*model.Poll, error) {
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if !poll.IsActive {
		return nil, ErrPollClosed
	}
	if !hasOption(poll, optionID) {
		return nil, ErrOptionNotFound
	}

	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.HasVoted(pollID) {
		return nil, ErrAlreadyVoted
	}

	votedAt := time.Now().UTC()
	if err := s.commitVote(ctx, userID, pollID, optionID, votedAt); err != nil {
		return nil, err
	}

	// 副作用一：实时广播
	s.broadcastVote(ctx, pollID, optionID, userID, votedAt)

	// 副作用二：投票计数，独立重试，与事务分离
	s.bumpVoteCounter(ctx, pollID)

	// 副作用三：付费投票落支付流水
	if poll.RequiresPaymentForVoting {
		s.recordVotePayment(ctx, userID, pollID, paymentID, poll.PaymentAmountForVoting)
	}

	// 用户侧评分与历史走事件管道异步更新
	if err := s.publisher.Publish(ctx, consts.TopicUserInteractions, userID, pollID, model.ActionVote, votedAt); err != nil {
		log.ErrorContext(ctx, "vote event publish failed", "userID", userID, "pollID", pollID, "err", err)
	}

	return s.pollRepo.GetPoll(ctx, pollID)
}

// commitVote 计票、记录用户投票、必要时关闭投票贴，三步同事务。
// 仅瞬时写冲突触发重试，其余错误立即上抛。
func (s *voteServiceImpl) commitVote(ctx context.Context, userID, pollID, optionID string, votedAt time.Time) error {
	txn := func(sc mongo.SessionContext) error {
		if err := s.pollRepo.ApplyVote(sc, pollID, optionID); err != nil {
			return err
		}
		vote := model.VoteRecord{PollID: pollID, OptionID: optionID, VotedAt: votedAt}
		if err := s.userRepo.AddVoteToUser(sc, userID, vote); err != nil {
			return err
		}
		return s.pollRepo.ClosePollIfComplete(sc, pollID)
	}

	var err error
	for attempt := 1; attempt <= voteTxnAttempts; attempt++ {
		err = s.runTxn(ctx, txn)
		if err == nil {
			return nil
		}
		if !pkgmongo.IsTransient(err) {
			break
		}

		log.WarnContext(ctx, "vote transaction conflict, retrying",
			"pollID", pollID, "attempt", attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(voteTxnBackoff):
		}
	}

	// 事务期间投票贴被并发关闭或选项失效
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrPollClosed
	}
	return err
}

type voteBroadcast struct {
	PollID   string    `json:"pollId"`
	OptionID string    `json:"optionId"`
	UserID   string    `json:"userId"`
	VotedAt  time.Time `json:"votedAt"`
}

func (s *voteServiceImpl) broadcastVote(ctx context.Context, pollID, optionID, userID string, votedAt time.Time) {
	payload, err := json.Marshal(voteBroadcast{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
		VotedAt:  votedAt,
	})
	if err != nil {
		log.ErrorContext(ctx, "vote broadcast marshal failed", "pollID", pollID, "err", err)
		return
	}
	if err := s.publish(ctx, consts.PollLiveChannel+pollID, payload); err != nil {
		log.ErrorContext(ctx, "vote broadcast failed", "pollID", pollID, "err", err)
	}
}

func (s *voteServiceImpl) bumpVoteCounter(ctx context.Context, pollID string) {
	var err error
	for attempt := 1; attempt <= voteTxnAttempts; attempt++ {
		if err = s.pollRepo.UpdatePollEngagement(ctx, pollID, model.ActionVote); err == nil {
			return
		}
		log.WarnContext(ctx, "vote counter update failed",
			"pollID", pollID, "attempt", attempt, "err", err)
	}
	log.ErrorContext(ctx, "vote counter update abandoned", "pollID", pollID, "err", err)
}

// recordVotePayment 交易号优先用支付层回传的，缺省时本地生成
func (s *voteServiceImpl) recordVotePayment(ctx context.Context, userID, pollID, transactionID string, amount float64) {
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	payment := &model.Payment{
		UserID:        userID,
		PollID:        pollID,
		Amount:        amount,
		PaymentType:   model.PaymentTypeVoting,
		TransactionID: transactionID,
		Status:        model.PaymentStatusCompleted,
	}

	paymentID, err := s.paymentRepo.Record(ctx, payment)
	if err != nil {
		log.ErrorContext(ctx, "vote payment record failed", "userID", userID, "pollID", pollID, "err", err)
		return
	}
	if err := s.userRepo.AddPaymentToUser(ctx, userID, paymentID); err != nil {
		log.ErrorContext(ctx, "payment link to user failed", "paymentID", paymentID, "err", err)
	}
	if err := s.pollRepo.LinkPayment(ctx, pollID, paymentID); err != nil {
		log.ErrorContext(ctx, "payment link to poll failed", "paymentID", paymentID, "err", err)
	}
}

func hasOption(poll *model.Poll, optionID string) bool {
	for _, opt := range poll.Options {
		if opt.OptionID.Hex() == optionID {
			return true
		}
	}
	return false
}
