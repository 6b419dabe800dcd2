package repository

import (
	"Pollhive/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByUserID(ctx context.Context, userID string) (*model.User, error)

	UpdateUserEngagement(ctx context.Context, userID string, delta float64, record model.InteractionRecord) error
	ApplyPreferenceChange(ctx context.Context, userID, pollID string, change model.PrefChange) error

	AddVoteToUser(ctx context.Context, userID string, vote model.VoteRecord) error
	AddPollCreated(ctx context.Context, userID, pollID string) error
	AddCommentToUser(ctx context.Context, userID, commentID string) error
	AddPaymentToUser(ctx context.Context, userID, paymentID string) error

	UpdateRecommendations(ctx context.Context, userID string, pollIDs []string, at time.Time) error
	FindUsersByInteractedPolls(ctx context.Context, pollIDs []string, excludeUserID string, limit int64) ([]*model.User, error)
}

type userRepoImpl struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{coll: db.Collection("users")}
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, user)
	return err
}

func (r *userRepoImpl) GetByUserID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserEngagement 累加活跃度评分并追加交互历史，单条原子更新
func (r *userRepoImpl) UpdateUserEngagement(ctx context.Context, userID string, delta float64, record model.InteractionRecord) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$inc":  bson.M{"engagement_score": delta},
			"$push": bson.M{"interaction_history": record},
		})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ApplyPreferenceChange 把状态机输出翻译成单条原子更新，
// $pull 对侧集合与 $addToSet 目标集合在同一语句内完成，
// 保证并发下两个集合不会同时包含同一 pollId。
func (r *userRepoImpl) ApplyPreferenceChange(ctx context.Context, userID, pollID string, change model.PrefChange) error {
	pull := bson.M{}
	if change.RemoveLiked {
		pull["liked_polls"] = pollID
	}
	if change.RemoveDisliked {
		pull["disliked_polls"] = pollID
	}

	addToSet := bson.M{}
	if change.AddLiked {
		addToSet["liked_polls"] = pollID
	}
	if change.AddDisliked {
		addToSet["disliked_polls"] = pollID
	}

	update := bson.M{}
	if len(pull) > 0 {
		update["$pull"] = pull
	}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}
	if len(update) == 0 {
		return nil
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *userRepoImpl) AddVoteToUser(ctx context.Context, userID string, vote model.VoteRecord) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"votes_cast": vote}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *userRepoImpl) AddPollCreated(ctx context.Context, userID, pollID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"polls_created": pollID}})
	return err
}

func (r *userRepoImpl) AddCommentToUser(ctx context.Context, userID, commentID string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"comments": commentID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *userRepoImpl) AddPaymentToUser(ctx context.Context, userID, paymentID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"payments": paymentID}})
	return err
}

// UpdateRecommendations 回写最近一次推荐结果快照
func (r *userRepoImpl) UpdateRecommendations(ctx context.Context, userID string, pollIDs []string, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"recommendation_vector": pollIDs,
			"recommended_at":        at,
		}})
	return err
}

// FindUsersByInteractedPolls 查询与指定投票贴有过交互的其他用户，
// 协同过滤据此圈定相似用户候选集
func (r *userRepoImpl) FindUsersByInteractedPolls(ctx context.Context, pollIDs []string, excludeUserID string, limit int64) ([]*model.User, error) {
	if len(pollIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"user_id": bson.M{"$ne": excludeUserID},
		"$or": []bson.M{
			{"liked_polls": bson.M{"$in": pollIDs}},
			{"votes_cast.poll_id": bson.M{"$in": pollIDs}},
		},
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
