package service

import (
	"Pollhive/internal/model"
	"Pollhive/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakePollRepo struct {
	repository.PollRepo
	poll *model.Poll
	err  error

	applyVoteCalls  int
	closeCalls      int
	createCalls     int
	engagementCalls int
	engagementErr   error
}

func (f *fakePollRepo) Create(_ context.Context, poll *model.Poll) (string, error) {
	f.createCalls++
	if poll.ID.IsZero() {
		poll.ID = primitive.NewObjectID()
	}
	return poll.ID.Hex(), nil
}

func (f *fakePollRepo) GetPoll(_ context.Context, _ string) (*model.Poll, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.poll, nil
}

func (f *fakePollRepo) ApplyVote(_ context.Context, _, _ string) error {
	f.applyVoteCalls++
	return nil
}

func (f *fakePollRepo) ClosePollIfComplete(_ context.Context, _ string) error {
	f.closeCalls++
	return nil
}

func (f *fakePollRepo) UpdatePollEngagement(_ context.Context, _, _ string) error {
	f.engagementCalls++
	return f.engagementErr
}

func (f *fakePollRepo) LinkPayment(_ context.Context, _, _ string) error { return nil }

type fakeUserRepo struct {
	repository.UserRepo
	user *model.User
	err  error

	addVoteCalls     int
	prefChangeCalls  int
	pollCreatedCalls int
}

func (f *fakeUserRepo) AddPollCreated(_ context.Context, _, _ string) error {
	f.pollCreatedCalls++
	return nil
}

func (f *fakeUserRepo) ApplyPreferenceChange(_ context.Context, _, _ string, _ model.PrefChange) error {
	f.prefChangeCalls++
	return nil
}

func (f *fakeUserRepo) GetByUserID(_ context.Context, _ string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) AddVoteToUser(_ context.Context, _ string, _ model.VoteRecord) error {
	f.addVoteCalls++
	return nil
}

func (f *fakeUserRepo) AddPaymentToUser(_ context.Context, _, _ string) error { return nil }

type fakePaymentRepo struct {
	repository.PaymentRepo
	recorded []*model.Payment
}

func (f *fakePaymentRepo) Record(_ context.Context, p *model.Payment) (string, error) {
	f.recorded = append(f.recorded, p)
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakePaymentRepo) GetByUser(_ context.Context, userID string, _ int64) ([]*model.Payment, error) {
	var payments []*model.Payment
	for _, p := range f.recorded {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

type fakePublisher struct {
	topics []string
}

func (f *fakePublisher) Publish(_ context.Context, topic, _, _, _ string, _ time.Time) error {
	f.topics = append(f.topics, topic)
	return nil
}

func activePoll() *model.Poll {
	return &model.Poll{
		ID:       primitive.NewObjectID(),
		Title:    "best editor",
		IsActive: true,
		Options: []model.PollOption{
			{OptionID: primitive.NewObjectID(), Text: "vim"},
			{OptionID: primitive.NewObjectID(), Text: "emacs"},
		},
	}
}

func newTestVoteService(pollRepo *fakePollRepo, userRepo *fakeUserRepo, paymentRepo *fakePaymentRepo, pub *fakePublisher, txnErrs []error) (*voteServiceImpl, *int) {
	txnRuns := 0
	return &voteServiceImpl{
		pollRepo:    pollRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		publisher:   pub,
		runTxn: func(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
			txnRuns++
			if txnRuns <= len(txnErrs) && txnErrs[txnRuns-1] != nil {
				return txnErrs[txnRuns-1]
			}
			return fn(mongo.NewSessionContext(ctx, nil))
		},
		publish: func(_ context.Context, _ string, _ []byte) error { return nil },
	}, &txnRuns
}

func TestCastVotePreconditions(t *testing.T) {
	poll := activePoll()
	optionID := poll.Options[0].OptionID.Hex()

	tests := []struct {
		name     string
		pollRepo *fakePollRepo
		userRepo *fakeUserRepo
		optionID string
		wantErr  error
	}{
		{
			name:     "投票不存在",
			pollRepo: &fakePollRepo{err: mongo.ErrNoDocuments},
			userRepo: &fakeUserRepo{},
			optionID: optionID,
			wantErr:  ErrPollNotFound,
		},
		{
			name:     "投票已结束",
			pollRepo: &fakePollRepo{poll: &model.Poll{ID: poll.ID, IsActive: false, Options: poll.Options}},
			userRepo: &fakeUserRepo{},
			optionID: optionID,
			wantErr:  ErrPollClosed,
		},
		{
			name:     "选项不存在",
			pollRepo: &fakePollRepo{poll: poll},
			userRepo: &fakeUserRepo{},
			optionID: primitive.NewObjectID().Hex(),
			wantErr:  ErrOptionNotFound,
		},
		{
			name:     "用户不存在",
			pollRepo: &fakePollRepo{poll: poll},
			userRepo: &fakeUserRepo{err: mongo.ErrNoDocuments},
			optionID: optionID,
			wantErr:  ErrUserNotFound,
		},
		{
			name:     "重复投票",
			pollRepo: &fakePollRepo{poll: poll},
			userRepo: &fakeUserRepo{user: &model.User{
				UserID:    "u1",
				VotesCast: []model.VoteRecord{{PollID: poll.ID.Hex()}},
			}},
			optionID: optionID,
			wantErr:  ErrAlreadyVoted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, txnRuns := newTestVoteService(tt.pollRepo, tt.userRepo, &fakePaymentRepo{}, &fakePublisher{}, nil)
			_, err := svc.CastVote(context.Background(), "u1", poll.ID.Hex(), tt.optionID, "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, *txnRuns, "前置校验失败不应开启事务")
		})
	}
}

func TestCastVoteSuccess(t *testing.T) {
	poll := activePoll()
	pollRepo := &fakePollRepo{poll: poll}
	userRepo := &fakeUserRepo{user: &model.User{UserID: "u1"}}
	pub := &fakePublisher{}

	svc, txnRuns := newTestVoteService(pollRepo, userRepo, &fakePaymentRepo{}, pub, nil)

	got, err := svc.CastVote(context.Background(), "u1", poll.ID.Hex(), poll.Options[0].OptionID.Hex(), "")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 1, *txnRuns)
	assert.Equal(t, 1, pollRepo.applyVoteCalls)
	assert.Equal(t, 1, userRepo.addVoteCalls)
	assert.Equal(t, 1, pollRepo.closeCalls)
	assert.Equal(t, 1, pollRepo.engagementCalls)
	assert.Equal(t, []string{"user_interactions"}, pub.topics)
}

// 瞬时写冲突重试，第三次成功
func TestCastVoteRetriesOnTransientConflict(t *testing.T) {
	poll := activePoll()
	pollRepo := &fakePollRepo{poll: poll}
	userRepo := &fakeUserRepo{user: &model.User{UserID: "u1"}}

	conflict := mongo.CommandError{Code: 112, Message: "WriteConflict"}
	svc, txnRuns := newTestVoteService(pollRepo, userRepo, &fakePaymentRepo{}, &fakePublisher{}, []error{conflict, conflict})

	_, err := svc.CastVote(context.Background(), "u1", poll.ID.Hex(), poll.Options[0].OptionID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, *txnRuns)
}

// 冲突持续超过重试上限
func TestCastVoteGivesUpAfterMaxAttempts(t *testing.T) {
	poll := activePoll()
	pollRepo := &fakePollRepo{poll: poll}
	userRepo := &fakeUserRepo{user: &model.User{UserID: "u1"}}

	conflict := mongo.CommandError{Code: 112, Message: "WriteConflict"}
	svc, txnRuns := newTestVoteService(pollRepo, userRepo, &fakePaymentRepo{}, &fakePublisher{},
		[]error{conflict, conflict, conflict})

	_, err := svc.CastVote(context.Background(), "u1", poll.ID.Hex(), poll.Options[0].OptionID.Hex(), "")
	require.Error(t, err)
	assert.Equal(t, 3, *txnRuns)
	assert.Equal(t, 0, pollRepo.applyVoteCalls)
}

// 非瞬时错误不重试
func TestCastVoteNoRetryOnPermanentError(t *testing.T) {
	poll := activePoll()
	pollRepo := &fakePollRepo{poll: poll}
	userRepo := &fakeUserRepo{user: &model.User{UserID: "u1"}}

	svc, txnRuns := newTestVoteService(pollRepo, userRepo, &fakePaymentRepo{}, &fakePublisher{},
		[]error{mongo.CommandError{Code: 11000, Message: "DuplicateKey"}})

	_, err := svc.CastVote(context.Background(), "u1", poll.ID.Hex(), poll.Options[0].OptionID.Hex(), "")
	require.Error(t, err)
	assert.Equal(t, 1, *txnRuns)
}

// 付费投票成功后落支付流水
func TestCastVoteRecordsPayment(t *testing.T) {
	poll := activePoll()
	poll.RequiresPaymentForVoting = true
	poll.PaymentAmountForVoting = 2.5

	pollRepo := &fakePollRepo{poll: poll}
	userRepo := &fakeUserRepo{user: &model.User{UserID: "u1"}}
	paymentRepo := &fakePaymentRepo{}

	svc, _ := newTestVoteService(pollRepo, userRepo, paymentRepo, &fakePublisher{}, nil)

	_, err := svc.CastVote(context.Background(), "u1", poll.ID.Hex(), poll.Options[0].OptionID.Hex(), "txn-42")
	require.NoError(t, err)

	require.Len(t, paymentRepo.recorded, 1)
	payment := paymentRepo.recorded[0]
	assert.Equal(t, model.PaymentTypeVoting, payment.PaymentType)
	assert.Equal(t, 2.5, payment.Amount)
	assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "txn-42", payment.TransactionID)
}

// 未传交易号时本地生成
func TestCastVotePaymentGeneratesTransactionID(t *testing.T) {
	poll := activePoll()
	poll.RequiresPaymentForVoting = true
	poll.PaymentAmountForVoting = 1.0

	pollRepo := &fakePollRepo{poll: poll}
	userRepo := &fakeUserRepo{user: &model.User{UserID: "u1"}}
	paymentRepo := &fakePaymentRepo{}

	svc, _ := newTestVoteService(pollRepo, userRepo, paymentRepo, &fakePublisher{}, nil)

	_, err := svc.CastVote(context.Background(), "u1", poll.ID.Hex(), poll.Options[0].OptionID.Hex(), "")
	require.NoError(t, err)

	require.Len(t, paymentRepo.recorded, 1)
	assert.NotEmpty(t, paymentRepo.recorded[0].TransactionID)
}

// 计数副作用失败不影响投票结果，但会重试到上限
func TestCastVoteCounterRetriesIndependently(t *testing.T) {
	poll := activePoll()
	pollRepo := &fakePollRepo{poll: poll, engagementErr: mongo.CommandError{Code: 112}}
	userRepo := &fakeUserRepo{user: &model.User{UserID: "u1"}}

	svc, _ := newTestVoteService(pollRepo, userRepo, &fakePaymentRepo{}, &fakePublisher{}, nil)

	_, err := svc.CastVote(context.Background(), "u1", poll.ID.Hex(), poll.Options[0].OptionID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, pollRepo.engagementCalls)
}
