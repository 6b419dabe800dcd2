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

type PaymentRepo interface {
	Record(ctx context.Context, payment *model.Payment) (string, error)
	GetByUser(ctx context.Context, userID string, limit int64) ([]*model.Payment, error)
}

type paymentRepoImpl struct {
	coll *mongo.Collection
}

func NewPaymentRepo(db *mongo.Database) PaymentRepo {
	return &paymentRepoImpl{coll: db.Collection("payments")}
}

// Record 落一笔支付流水并返回生成的 ID
func (r *paymentRepoImpl) Record(ctx context.Context, payment *model.Payment) (string, error) {
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return "", err
	}
	return payment.ID.Hex(), nil
}

func (r *paymentRepoImpl) GetByUser(ctx context.Context, userID string, limit int64) ([]*model.Payment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var payments []*model.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
