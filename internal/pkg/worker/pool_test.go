package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsTask(t *testing.T) {
	pool := NewPool(context.Background(), 4)

	var ran atomic.Int32
	pool.Submit(Task{
		Name:     "ok",
		Attempts: 1,
		Run: func(ctx context.Context) error {
			ran.Add(1)
			return nil
		},
	})
	pool.Wait()

	assert.Equal(t, int32(1), ran.Load())
}

// 失败任务重试到上限后走 OnExhausted
func TestPoolExhaustsAttempts(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.backoff = 0

	var attempts atomic.Int32
	var exhausted atomic.Int32
	pool.Submit(Task{
		Name:     "always-fails",
		Attempts: 3,
		Run: func(ctx context.Context) error {
			attempts.Add(1)
			return errors.New("boom")
		},
		OnExhausted: func(ctx context.Context, err error) {
			exhausted.Add(1)
			assert.EqualError(t, err, "boom")
		},
	})
	pool.Wait()

	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, int32(1), exhausted.Load())
}

func TestPoolRecoversBeforeExhaustion(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.backoff = 0

	var attempts atomic.Int32
	var exhausted atomic.Int32
	pool.Submit(Task{
		Name:     "recovers",
		Attempts: 3,
		Run: func(ctx context.Context) error {
			if attempts.Add(1) < 2 {
				return errors.New("transient")
			}
			return nil
		},
		OnExhausted: func(ctx context.Context, err error) {
			exhausted.Add(1)
		},
	})
	pool.Wait()

	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, int32(0), exhausted.Load())
}

// 并发任务数不超过池上限
func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(context.Background(), 2)

	var running atomic.Int32
	var peak atomic.Int32
	gate := make(chan struct{})

	for i := 0; i < 10; i++ {
		pool.Submit(Task{
			Name:     "bounded",
			Attempts: 1,
			Run: func(ctx context.Context) error {
				cur := running.Add(1)
				for {
					old := peak.Load()
					if cur <= old || peak.CompareAndSwap(old, cur) {
						break
					}
				}
				<-gate
				running.Add(-1)
				return nil
			},
		})
	}
	close(gate)
	pool.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

// 池上下文取消后新任务被拒绝
func TestPoolRejectsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 1)
	cancel()

	var ran atomic.Int32
	pool.Submit(Task{
		Name:     "late",
		Attempts: 1,
		Run: func(ctx context.Context) error {
			ran.Add(1)
			return nil
		},
	})
	pool.Wait()

	assert.Equal(t, int32(0), ran.Load())
}
