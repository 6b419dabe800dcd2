package cron

import log "log/slog"

// InitCron 注册并启动所有定时任务，目前只有热榜预计算
func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
