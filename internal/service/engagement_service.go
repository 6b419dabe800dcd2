package service

import (
	"Pollhive/internal/model"
	pkgmongo "Pollhive/internal/pkg/mongo"
	"Pollhive/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// EngagementService 把管道事件落库。
// 用户侧与投票侧各自在一个事务内完成，事务失败由消费端重试。
type EngagementService interface {
	ApplyUserInteraction(ctx context.Context, userID, pollID, action string, occurredAt time.Time) error
	ApplyPollPreference(ctx context.Context, userID, pollID, action string, occurredAt time.Time) error
}

type engagementServiceImpl struct {
	client          *mongo.Client
	userRepo        repository.UserRepo
	pollRepo        repository.PollRepo
	interactionRepo repository.InteractionRepo
}

func NewEngagementService(
	client *mongo.Client,
	userRepo repository.UserRepo,
	pollRepo repository.PollRepo,
	interactionRepo repository.InteractionRepo,
) EngagementService {
	return &engagementServiceImpl{
		client:          client,
		userRepo:        userRepo,
		pollRepo:        pollRepo,
		interactionRepo: interactionRepo,
	}
}

// ApplyUserInteraction 用户侧应用：写入不可变交互日志、
// 追加用户交互历史并累加活跃度评分，三者同事务。
func (s *engagementServiceImpl) ApplyUserInteraction(ctx context.Context, userID, pollID, action string, occurredAt time.Time) error {
	if !model.ValidAction(action) {
		return ErrActionInvalid
	}

	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	state := s.preferenceState(user, pollID)
	delta := model.ScoreDelta(action, state)

	err = pkgmongo.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		event := &model.InteractionEvent{
			UserID:     userID,
			PollID:     pollID,
			ActionType: action,
			Timestamp:  occurredAt,
		}
		if err := s.interactionRepo.Insert(sc, event); err != nil {
			return err
		}

		record := model.InteractionRecord{
			PollID:     pollID,
			ActionType: action,
			OccurredAt: occurredAt,
		}
		return s.userRepo.UpdateUserEngagement(sc, userID, delta, record)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	log.InfoContext(ctx, "user interaction applied",
		"userID", userID, "pollID", pollID, "action", action, "scoreDelta", delta)
	return nil
}

// ApplyPollPreference 投票侧应用。
// like/dislike/neutral 走偏好状态机，自迁移按成功处理；
// 计数更新与用户偏好集合变更同事务提交。
func (s *engagementServiceImpl) ApplyPollPreference(ctx context.Context, userID, pollID, action string, occurredAt time.Time) error {
	if !model.ValidAction(action) {
		return ErrActionInvalid
	}

	if !model.IsPreferenceAction(action) {
		if err := s.pollRepo.UpdatePollEngagement(ctx, pollID, action); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrPollNotFound
			}
			return err
		}
		return nil
	}

	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	state := s.preferenceState(user, pollID)
	change, next, changed := model.TransitionPreference(state, action)
	if !changed {
		// 自迁移不动偏好集合，但聚合计数照常累加
		if err := s.pollRepo.UpdatePollEngagement(ctx, pollID, action); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrPollNotFound
			}
			return err
		}
		log.InfoContext(ctx, "preference unchanged",
			"userID", userID, "pollID", pollID, "state", state.String())
		return nil
	}

	err = pkgmongo.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		if err := s.pollRepo.UpdatePollEngagement(sc, pollID, action); err != nil {
			return err
		}
		return s.userRepo.ApplyPreferenceChange(sc, userID, pollID, change)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPollNotFound
		}
		return err
	}

	log.InfoContext(ctx, "poll preference applied",
		"userID", userID, "pollID", pollID, "from", state.String(), "to", next.String())
	return nil
}

// preferenceState 从集合成员关系还原用户对该投票贴的当前偏好
func (s *engagementServiceImpl) preferenceState(user *model.User, pollID string) model.PreferenceState {
	var liked, disliked bool
	for _, id := range user.LikedPolls {
		if id == pollID {
			liked = true
			break
		}
	}
	for _, id := range user.DislikedPolls {
		if id == pollID {
			disliked = true
			break
		}
	}
	return model.PreferenceOf(liked, disliked)
}
