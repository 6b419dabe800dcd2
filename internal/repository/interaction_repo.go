package repository

import (
	"Pollhive/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InteractionRepo 不可变交互日志，只插入不修改
type InteractionRepo interface {
	Insert(ctx context.Context, event *model.InteractionEvent) error
	GetByUser(ctx context.Context, userID string, limit int64) ([]*model.InteractionEvent, error)
	GetByPoll(ctx context.Context, pollID string, limit int64) ([]*model.InteractionEvent, error)
	CountByPollAndType(ctx context.Context, pollID, actionType string) (int64, error)
}

type interactionRepoImpl struct {
	coll *mongo.Collection
}

func NewInteractionRepo(db *mongo.Database) InteractionRepo {
	return &interactionRepoImpl{coll: db.Collection("interactions")}
}

func (r *interactionRepoImpl) Insert(ctx context.Context, event *model.InteractionEvent) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, event)
	return err
}

func (r *interactionRepoImpl) GetByUser(ctx context.Context, userID string, limit int64) ([]*model.InteractionEvent, error) {
	return r.find(ctx, bson.M{"user_id": userID}, limit)
}

func (r *interactionRepoImpl) GetByPoll(ctx context.Context, pollID string, limit int64) ([]*model.InteractionEvent, error) {
	return r.find(ctx, bson.M{"poll_id": pollID}, limit)
}

func (r *interactionRepoImpl) CountByPollAndType(ctx context.Context, pollID, actionType string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"poll_id": pollID, "action_type": actionType})
}

func (r *interactionRepoImpl) find(ctx context.Context, filter bson.M, limit int64) ([]*model.InteractionEvent, error) {
	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetLimit(limit).SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var events []*model.InteractionEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
