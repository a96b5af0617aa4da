package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/TrendSpark/internal/fetcher"
	"github.com/robfig/cron/v3"
)

// Refresher 是调度器需要的最小管理器接口
type Refresher interface {
	Stale() bool
	Load(ctx context.Context, force bool) (map[string][]fetcher.Topic, error)
}

// 单个抓取周期的上限：四个批次 + 重试退避远小于这个值
const cycleTimeout = 5 * time.Minute

// Scheduler 周期性检查快照是否过期，过期则触发一次非强制刷新
type Scheduler struct {
	cron    *cron.Cron
	manager Refresher
}

func New(spec string, m Refresher) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		manager: m,
	}

	if _, err := c.AddFunc(spec, s.checkOnce); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟执行首轮检查，避免与用户首次打开页面的请求争抢上游配额
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.checkOnce()
	})
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 对外暴露的单次检查入口，方便手动触发
func (s *Scheduler) RunOnce() {
	s.checkOnce()
}

func (s *Scheduler) checkOnce() {
	if !s.manager.Stale() {
		return
	}

	log.Println("scheduler: snapshot stale, start refresh...")
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	if _, err := s.manager.Load(ctx, false); err != nil {
		log.Printf("scheduler: refresh failed: %v", err)
		return
	}
	log.Println("scheduler: refresh done")
}
