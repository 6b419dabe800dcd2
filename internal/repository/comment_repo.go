package repository

import (
	"Pollhive/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepo interface {
	Insert(ctx context.Context, comment *model.Comment) (string, error)
	GetByPoll(ctx context.Context, pollID string, limit int64) ([]*model.Comment, error)
	UpdateSentiment(ctx context.Context, commentID string, score *float64, label string) error
}

type commentRepoImpl struct {
	coll *mongo.Collection
}

func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &commentRepoImpl{coll: db.Collection("comments")}
}

func (r *commentRepoImpl) Insert(ctx context.Context, comment *model.Comment) (string, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, comment); err != nil {
		return "", err
	}
	return comment.ID.Hex(), nil
}

func (r *commentRepoImpl) GetByPoll(ctx context.Context, pollID string, limit int64) ([]*model.Comment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"poll_id": pollID},
		options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var comments []*model.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateSentiment 后台分析完成后回写评分与标签。
// 分析彻底失败时 score 为 nil，仅写入终态标签。
func (r *commentRepoImpl) UpdateSentiment(ctx context.Context, commentID string, score *float64, label string) error {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	set := bson.M{"sentiment_label": label}
	if score != nil {
		set["sentiment_score"] = *score
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
