package track

import (
	"context"
	"sync"

	"fogwalk/internal/archive"
	"fogwalk/internal/explore"
	"fogwalk/internal/logger"
	"fogwalk/internal/metrics"
	"fogwalk/internal/stats"
	"fogwalk/internal/store"
)

// 文档注释：探索会话
// 背景：发现判定必须面向"已提交"的集合快照串行执行，否则并发判定会接受两个互相过近的区域；
// 会话以单一互斥段承接所有提交路径（HTTP 入口与定位源协程共用），内存态为权威，落盘在内存提交之后。
// 约束：进程在内存提交与落盘之间崩溃会丢失该区域，按至少一次语义接受；落盘失败只降级不回滚
type Session struct {
	mu      sync.RWMutex
	tracker *explore.Tracker
	st      store.Store
	arch    *archive.Archive
	areas   []explore.AreaRecord
	snap    stats.Snapshot
	onArea  func(explore.AreaRecord, stats.Snapshot)

	cancel context.CancelFunc
	done   chan struct{}
}

// Options：会话构造参数；Store 必填，Archive 与 OnArea 可选
type Options struct {
	Tracker *explore.Tracker
	Store   store.Store
	Archive *archive.Archive
	OnArea  func(explore.AreaRecord, stats.Snapshot)
}

// NewSession：构造会话并从持久化恢复集合
// 背景：快照缓存允许缺失或过期，恢复时一律由区域序列重算，保证可再导出
func NewSession(ctx context.Context, opt Options) (*Session, error) {
	s := &Session{
		tracker: opt.Tracker,
		st:      opt.Store,
		arch:    opt.Archive,
		onArea:  opt.OnArea,
	}
	areas, err := opt.Store.LoadAreas(ctx)
	if err != nil {
		metrics.StoreLoadErrorsTotal.Inc()
		logger.L().Warn("session_restore_error", "err", err)
		areas = nil
	}
	s.areas = areas
	s.snap = stats.Aggregate(areas)
	logger.L().Info("session_restored", "areas", len(areas))
	return s, nil
}

// Start：接入定位源，后台协程逐点消费
// 约束：同一会话只允许一个活动源；重复 Start 前必须 Stop
func (s *Session) Start(ctx context.Context, src Source) error {
	ctx, cancel := context.WithCancel(ctx)
	ch, err := src.Watch(ctx)
	if err != nil {
		cancel()
		return err
	}
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		for {
			select {
			case <-ctx.Done():
				return
			case fix, ok := <-ch:
				if !ok {
					logger.L().Info("session_source_closed")
					return
				}
				if _, err := s.Process(ctx, fix); err != nil {
					logger.L().Warn("session_fix_error", "err", err)
				}
			}
		}
	}()
	logger.L().Info("session_tracking_started")
	return nil
}

// Stop：停止定位源消费；幂等
func (s *Session) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	logger.L().Info("session_tracking_stopped")
}

// Process：提交一次定位（判定→追加→重算→落盘→归档）
// 背景：持锁完成判定与内存提交，保证后续判定看到最新集合；落盘与归档同样在提交序内，
// 使外部观察到的持久化顺序与接受顺序一致。
// 返回：接受时返回新区域；拒绝返回 nil, nil
func (s *Session) Process(ctx context.Context, fix explore.Fix) (*explore.AreaRecord, error) {
	metrics.FixesReceivedTotal.Inc()
	s.mu.Lock()
	defer s.mu.Unlock()

	area, why, err := s.tracker.EvaluateDetailed(fix, s.areas)
	if err != nil {
		return nil, err
	}
	if area == nil {
		metrics.FixesRejectedTotal.WithLabelValues(string(why)).Inc()
		return nil, nil
	}

	s.areas = append(s.areas, *area)
	s.snap = stats.Aggregate(s.areas)
	metrics.FixesAcceptedTotal.Inc()
	logger.L().Info("area_discovered",
		"id", area.ID,
		"region", area.RegionInfo.Name,
		"xp", area.ExperiencePoints,
		"total_areas", len(s.areas),
	)

	if err := s.st.SaveAreas(ctx, s.areas); err != nil {
		metrics.StoreSaveErrorsTotal.Inc()
		logger.L().Warn("session_save_areas_error", "err", err)
	}
	if err := s.st.SaveStats(ctx, s.snap); err != nil {
		metrics.StoreSaveErrorsTotal.Inc()
		logger.L().Warn("session_save_stats_error", "err", err)
	}
	if s.arch != nil {
		if err := s.arch.Append(ctx, *area); err != nil {
			metrics.ArchiveErrorsTotal.Inc()
			logger.L().Warn("session_archive_error", "err", err)
		}
	}
	if s.onArea != nil {
		s.onArea(*area, s.snap)
	}
	return area, nil
}

// Areas：当前集合的副本（插入序）
func (s *Session) Areas() []explore.AreaRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]explore.AreaRecord, len(s.areas))
	copy(out, s.areas)
	return out
}

// Snapshot：最近一次重算的统计快照
func (s *Session) Snapshot() stats.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Reset：清空集合与持久化（导出前请自行备份）
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = nil
	s.snap = stats.Aggregate(nil)
	return s.st.Reset(ctx)
}
