package service

import (
	"Pollhive/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPayments(t *testing.T) {
	paymentRepo := &fakePaymentRepo{recorded: []*model.Payment{
		{UserID: "u1", PaymentType: model.PaymentTypeCreation, Amount: 3.0},
		{UserID: "u2", PaymentType: model.PaymentTypeVoting, Amount: 1.0},
		{UserID: "u1", PaymentType: model.PaymentTypeVoteExtension, Amount: 2.0},
	}}

	svc := NewUserService(&fakeUserRepo{}, paymentRepo)

	payments, err := svc.GetPayments(context.Background(), "u1", 50)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, model.PaymentTypeCreation, payments[0].PaymentType)
	assert.Equal(t, model.PaymentTypeVoteExtension, payments[1].PaymentType)
}

func TestGetPaymentsEmptyUser(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, &fakePaymentRepo{})

	_, err := svc.GetPayments(context.Background(), "", 50)
	assert.ErrorIs(t, err, ErrParamInvalid)
}
