package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// WriteConflict 服务端检测到并发写冲突时的错误码
const writeConflictCode = 112

// WithTransaction 在一个会话事务中执行 fn，fn 返回错误则中止事务。
// 重试策略由调用方决定，这里只负责单次执行。
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = session.AbortTransaction(sc)
			return err
		}
		return session.CommitTransaction(sc)
	})
}

// IsTransient 判断错误是否为可重试的瞬时写冲突
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.HasErrorLabel("TransientTransactionError") || cmdErr.Code == writeConflictCode {
			return true
		}
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		if writeErr.HasErrorLabel("TransientTransactionError") {
			return true
		}
		for _, e := range writeErr.WriteErrors {
			if e.Code == writeConflictCode {
				return true
			}
		}
	}

	return false
}
