package worker

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

const defaultBackoff = 200 * time.Millisecond

// Task 一次后台任务。Run 失败会重试到 Attempts 次，
// 全部失败后调用 OnExhausted 做终态处理。
type Task struct {
	Name        string
	Attempts    int
	Run         func(ctx context.Context) error
	OnExhausted func(ctx context.Context, err error)
}

// Pool 有界并发的后台任务池。任务失败不影响提交方，
// 池内自行重试并记录结果。
type Pool struct {
	ctx     context.Context
	sem     *semaphore.Weighted
	wg      sync.WaitGroup
	backoff time.Duration
}

func NewPool(ctx context.Context, maxConcurrent int64) *Pool {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Pool{
		ctx:     ctx,
		sem:     semaphore.NewWeighted(maxConcurrent),
		backoff: defaultBackoff,
	}
}

// Submit 异步提交任务，调用方不等待执行结果
func (p *Pool) Submit(task Task) {
	if task.Attempts <= 0 {
		task.Attempts = 1
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			log.Warn("task rejected, pool shutting down", "task", task.Name)
			return
		}
		defer p.sem.Release(1)

		p.run(task)
	}()
}

func (p *Pool) run(task Task) {
	var err error
	for attempt := 1; attempt <= task.Attempts; attempt++ {
		if err = task.Run(p.ctx); err == nil {
			return
		}

		log.WarnContext(p.ctx, "task attempt failed",
			"task", task.Name, "attempt", attempt, "err", err)

		if attempt < task.Attempts {
			select {
			case <-p.ctx.Done():
				return
			case <-time.After(p.backoff):
			}
		}
	}

	log.ErrorContext(p.ctx, "task attempts exhausted", "task", task.Name, "err", err)
	if task.OnExhausted != nil {
		task.OnExhausted(p.ctx, err)
	}
}

// Wait 等待所有已提交任务结束，用于优雅停机
func (p *Pool) Wait() {
	p.wg.Wait()
}
