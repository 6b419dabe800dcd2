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

type PollRepo interface {
	Create(ctx context.Context, poll *model.Poll) (string, error)
	GetPoll(ctx context.Context, pollID string) (*model.Poll, error)
	GetPollsByIDs(ctx context.Context, pollIDs []string) ([]*model.Poll, error)

	ActivePolls(ctx context.Context, excludeIDs []string, limit int64) ([]*model.Poll, error)
	TrendingPolls(ctx context.Context, limit int64) ([]*model.Poll, error)
	RecentPolls(ctx context.Context, since time.Time, limit int64) ([]*model.Poll, error)
	SamplePolls(ctx context.Context, excludeIDs []string, n int64) ([]*model.Poll, error)

	ApplyVote(ctx context.Context, pollID, optionID string) error
	ClosePollIfComplete(ctx context.Context, pollID string) error
	ExtendVotes(ctx context.Context, pollID string, additional int64) error

	UpdatePollEngagement(ctx context.Context, pollID, action string) error
	AddCommentToPoll(ctx context.Context, pollID, commentID string) error
	LinkPayment(ctx context.Context, pollID, paymentID string) error
}

type pollRepoImpl struct {
	coll *mongo.Collection
}

func NewPollRepo(db *mongo.Database) PollRepo {
	return &pollRepoImpl{coll: db.Collection("polls")}
}

// Create 插入投票贴并返回生成的 ID
func (r *pollRepoImpl) Create(ctx context.Context, poll *model.Poll) (string, error) {
	if poll.ID.IsZero() {
		poll.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, poll); err != nil {
		return "", err
	}
	return poll.ID.Hex(), nil
}

// GetPoll 按 ID 查询，非法 ID 与未命中统一返回 ErrNoDocuments
func (r *pollRepoImpl) GetPoll(ctx context.Context, pollID string) (*model.Poll, error) {
	oid, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var poll model.Poll
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&poll); err != nil {
		return nil, err
	}
	return &poll, nil
}

// GetPollsByIDs 批量查询，保持入参顺序，跳过非法或缺失的 ID
func (r *pollRepoImpl) GetPollsByIDs(ctx context.Context, pollIDs []string) ([]*model.Poll, error) {
	oids := make([]primitive.ObjectID, 0, len(pollIDs))
	for _, id := range pollIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}

	var polls []*model.Poll
	if err := cursor.All(ctx, &polls); err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Poll, len(polls))
	for _, p := range polls {
		byID[p.ID.Hex()] = p
	}
	ordered := make([]*model.Poll, 0, len(polls))
	for _, id := range pollIDs {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// ActivePolls 查询进行中的投票贴，可排除用户已交互过的
func (r *pollRepoImpl) ActivePolls(ctx context.Context, excludeIDs []string, limit int64) ([]*model.Poll, error) {
	filter := bson.M{"is_active": true}
	if oids := toObjectIDs(excludeIDs); len(oids) > 0 {
		filter["_id"] = bson.M{"$nin": oids}
	}

	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var polls []*model.Poll
	if err := cursor.All(ctx, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// TrendingPolls 按参与热度排序的进行中投票贴
func (r *pollRepoImpl) TrendingPolls(ctx context.Context, limit int64) ([]*model.Poll, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true},
		options.Find().SetLimit(limit).SetSort(bson.D{
			{Key: "engagement_metrics.votes", Value: -1},
			{Key: "engagement_metrics.views", Value: -1},
		}))
	if err != nil {
		return nil, err
	}

	var polls []*model.Poll
	if err := cursor.All(ctx, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// RecentPolls 指定时间之后创建的投票贴，新的在前
func (r *pollRepoImpl) RecentPolls(ctx context.Context, since time.Time, limit int64) ([]*model.Poll, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"is_active": true, "created_at": bson.M{"$gte": since}},
		options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var polls []*model.Poll
	if err := cursor.All(ctx, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// SamplePolls 随机抽取进行中的投票贴，用于兜底推荐
func (r *pollRepoImpl) SamplePolls(ctx context.Context, excludeIDs []string, n int64) ([]*model.Poll, error) {
	match := bson.M{"is_active": true}
	if oids := toObjectIDs(excludeIDs); len(oids) > 0 {
		match["_id"] = bson.M{"$nin": oids}
	}

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sample", Value: bson.M{"size": n}}},
	})
	if err != nil {
		return nil, err
	}

	var polls []*model.Poll
	if err := cursor.All(ctx, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// ApplyVote 对指定选项计票。过滤条件要求投票贴仍在进行中，
// 选项不存在或已关闭都会表现为 MatchedCount == 0。
func (r *pollRepoImpl) ApplyVote(ctx context.Context, pollID, optionID string) error {
	pollOID, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	optionOID, err := primitive.ObjectIDFromHex(optionID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": pollOID, "is_active": true, "options.option_id": optionOID},
		bson.M{"$inc": bson.M{
			"options.$.vote_count": 1,
			"total_votes":          1,
			"current_votes":        1,
		}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ClosePollIfComplete 票数达到配额时在同一事务内关闭投票贴
func (r *pollRepoImpl) ClosePollIfComplete(ctx context.Context, pollID string) error {
	oid, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{
			"_id":            oid,
			"is_active":      true,
			"required_votes": bson.M{"$gt": 0},
			"$expr":          bson.M{"$gte": bson.A{"$current_votes", "$required_votes"}},
		},
		bson.M{"$set": bson.M{"is_active": false}})
	return err
}

// extendVotesUpdate 管道更新：先抬高配额，再基于新配额判断是否重新激活。
// 已投票数保持不变，配额仍未超过当前票数时投票贴维持原状态。
func extendVotesUpdate(additional int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"required_votes": bson.M{"$add": bson.A{"$required_votes", additional}},
		}}},
		{{Key: "$set", Value: bson.M{
			"is_active": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$required_votes", "$current_votes"}},
				true,
				"$is_active",
			}},
		}}},
	}
}

// ExtendVotes 扩充投票配额，仅当新配额超过已投票数时重新激活
func (r *pollRepoImpl) ExtendVotes(ctx context.Context, pollID string, additional int64) error {
	oid, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, extendVotesUpdate(additional))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdatePollEngagement 按动作更新聚合计数。
// like/dislike 写入自身并清零对侧，neutral 两侧清零，语义与 model.ApplyEngagement 一致。
func (r *pollRepoImpl) UpdatePollEngagement(ctx context.Context, pollID, action string) error {
	oid, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	var update bson.M
	switch action {
	case model.ActionView:
		update = bson.M{"$inc": bson.M{"engagement_metrics.views": 1}}
	case model.ActionClick:
		update = bson.M{"$inc": bson.M{"engagement_metrics.clicks": 1}}
	case model.ActionVote:
		update = bson.M{"$inc": bson.M{"engagement_metrics.votes": 1}}
	case model.ActionComment:
		update = bson.M{"$inc": bson.M{"engagement_metrics.comments": 1}}
	case model.ActionLike:
		update = bson.M{
			"$inc": bson.M{"engagement_metrics.likes": 1},
			"$set": bson.M{"engagement_metrics.dislikes": 0},
		}
	case model.ActionDislike:
		update = bson.M{
			"$inc": bson.M{"engagement_metrics.dislikes": 1},
			"$set": bson.M{"engagement_metrics.likes": 0},
		}
	case model.ActionNeutral:
		update = bson.M{"$set": bson.M{
			"engagement_metrics.likes":    0,
			"engagement_metrics.dislikes": 0,
		}}
	default:
		return nil
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddCommentToPoll 挂接评论并累计评论计数
func (r *pollRepoImpl) AddCommentToPoll(ctx context.Context, pollID, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"comments": commentID},
			"$inc":  bson.M{"engagement_metrics.comments": 1},
		})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// LinkPayment 记录投票贴关联的支付流水
func (r *pollRepoImpl) LinkPayment(ctx context.Context, pollID, paymentID string) error {
	oid, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"linked_payments": paymentID}})
	return err
}

func toObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
