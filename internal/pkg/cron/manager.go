package cron

import (
	"Pollhive/internal/api/config"
	"Pollhive/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine      *cron.Cron
	trendingJob *job.TrendingJob
	spec        string
}

func NewCronManager(cfg *config.Config, trendingJob *job.TrendingJob) *Manager {
	spec := cfg.Jobs.TrendingSpec
	if spec == "" {
		spec = "@every 10m"
	}
	return &Manager{
		engine:      cron.New(cron.WithSeconds()),
		trendingJob: trendingJob,
		spec:        spec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.spec, s.trendingJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
