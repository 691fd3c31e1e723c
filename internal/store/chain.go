package store

import (
	"context"

	"fogwalk/internal/explore"
	"fogwalk/internal/logger"
	"fogwalk/internal/stats"
)

// 文档注释：链式存储
// 背景：读取按顺序取首个有数据的层（如 Redis 优先、文件兜底）；写入与重置广播到所有层，
// 单层失败只记日志不中断，保证至少一层落盘即可恢复。
// 约束：层间数据不做一致性校验，以最前面命中的层为准
type Chain struct {
	layers []Store
}

func NewChain(layers ...Store) *Chain {
	var ls []Store
	for _, l := range layers {
		if l != nil {
			ls = append(ls, l)
		}
	}
	return &Chain{layers: ls}
}

func (c *Chain) LoadAreas(ctx context.Context) ([]explore.AreaRecord, error) {
	for _, l := range c.layers {
		areas, err := l.LoadAreas(ctx)
		if err != nil {
			logger.L().Warn("store_chain_load_areas_error", "err", err)
			continue
		}
		if len(areas) > 0 {
			return areas, nil
		}
	}
	return nil, nil
}

func (c *Chain) SaveAreas(ctx context.Context, areas []explore.AreaRecord) error {
	return c.broadcast(func(l Store) error { return l.SaveAreas(ctx, areas) }, "store_chain_save_areas_error")
}

func (c *Chain) LoadStats(ctx context.Context) (*stats.Snapshot, error) {
	for _, l := range c.layers {
		snap, err := l.LoadStats(ctx)
		if err != nil {
			logger.L().Warn("store_chain_load_stats_error", "err", err)
			continue
		}
		if snap != nil {
			return snap, nil
		}
	}
	return nil, nil
}

func (c *Chain) SaveStats(ctx context.Context, snap stats.Snapshot) error {
	return c.broadcast(func(l Store) error { return l.SaveStats(ctx, snap) }, "store_chain_save_stats_error")
}

func (c *Chain) Reset(ctx context.Context) error {
	return c.broadcast(func(l Store) error { return l.Reset(ctx) }, "store_chain_reset_error")
}

// broadcast：对所有层执行写操作；至少一层成功即视为成功
func (c *Chain) broadcast(op func(Store) error, event string) error {
	var firstErr error
	ok := false
	for _, l := range c.layers {
		if err := op(l); err != nil {
			logger.L().Warn(event, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			ok = true
		}
	}
	if ok {
		return nil
	}
	return firstErr
}
