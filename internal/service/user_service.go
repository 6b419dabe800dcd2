package service

import (
	"Pollhive/internal/model"
	"Pollhive/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService interface {
	Register(ctx context.Context, username, email string) (*model.User, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	GetPayments(ctx context.Context, userID string, limit int64) ([]*model.Payment, error)
}

type userServiceImpl struct {
	userRepo    repository.UserRepo
	paymentRepo repository.PaymentRepo
}

func NewUserService(userRepo repository.UserRepo, paymentRepo repository.PaymentRepo) UserService {
	return &userServiceImpl{userRepo: userRepo, paymentRepo: paymentRepo}
}

// Register 创建用户，对外 ID 与存储主键分离
func (s *userServiceImpl) Register(ctx context.Context, username, email string) (*model.User, error) {
	if username == "" {
		return nil, ErrParamInvalid
	}

	user := &model.User{
		UserID:   uuid.NewString(),
		Username: username,
		Email:    email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExist
		}
		return nil, err
	}
	return user, nil
}

// GetPayments 当前用户的支付流水，新的在前
func (s *userServiceImpl) GetPayments(ctx context.Context, userID string, limit int64) ([]*model.Payment, error) {
	if userID == "" {
		return nil, ErrParamInvalid
	}
	return s.paymentRepo.GetByUser(ctx, userID, limit)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
