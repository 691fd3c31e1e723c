// 包 store：发现区域序列与统计快照两份 JSON blob 的键值持久化
package store

import (
	"context"
	"encoding/json"

	"fogwalk/internal/explore"
	"fogwalk/internal/logger"
	"fogwalk/internal/stats"
)

// 固定持久化键名（与历史客户端数据兼容）
const (
	KeyAreas = "exploredAreas"
	KeyStats = "explorationStats"
)

// Store：键值持久化接口
// 背景：引擎内存态始终是权威，持久化失败只降级为当次会话不落盘；
// 缺键与坏载荷一律按空集处理，不向上传播解析错误。
// 约束：实现必须容忍重复写入；读写均受 ctx 取消约束
type Store interface {
	LoadAreas(ctx context.Context) ([]explore.AreaRecord, error)
	SaveAreas(ctx context.Context, areas []explore.AreaRecord) error
	LoadStats(ctx context.Context) (*stats.Snapshot, error)
	SaveStats(ctx context.Context, snap stats.Snapshot) error
	Reset(ctx context.Context) error
}

// decodeAreas：解析区域序列载荷；坏数据记日志并按空集返回
func decodeAreas(b []byte) []explore.AreaRecord {
	if len(b) == 0 {
		return nil
	}
	var areas []explore.AreaRecord
	if err := json.Unmarshal(b, &areas); err != nil {
		logger.L().Warn("store_areas_malformed", "err", err, "bytes", len(b))
		return nil
	}
	return areas
}

// decodeStats：解析快照载荷；坏数据记日志并按缺失返回
func decodeStats(b []byte) *stats.Snapshot {
	if len(b) == 0 {
		return nil
	}
	var snap stats.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		logger.L().Warn("store_stats_malformed", "err", err, "bytes", len(b))
		return nil
	}
	return &snap
}
