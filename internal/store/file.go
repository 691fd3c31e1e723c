package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"fogwalk/internal/explore"
	"fogwalk/internal/stats"
)

// 文档注释：文件键值持久化
// 背景：无 Redis 环境下的本地落盘实现，每个键一个 JSON 文件；也用作链式存储的兜底层。
// 约束：写入为整文件覆盖，原子性依赖临时文件改名；目录不存在时首次写入自动创建
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

func (s *FileStore) path(k string) string { return filepath.Join(s.dir, k+".json") }

// readKey：读取键文件；不存在按缺键处理
func (s *FileStore) readKey(k string) ([]byte, error) {
	b, err := os.ReadFile(s.path(k))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// writeKey：临时文件写入后改名，避免半写文件被下次启动读到
func (s *FileStore) writeKey(k string, b []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	tmp := s.path(k) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(k))
}

func (s *FileStore) LoadAreas(ctx context.Context) ([]explore.AreaRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := s.readKey(KeyAreas)
	if err != nil {
		return nil, err
	}
	return decodeAreas(b), nil
}

func (s *FileStore) SaveAreas(ctx context.Context, areas []explore.AreaRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(areas)
	if err != nil {
		return err
	}
	return s.writeKey(KeyAreas, b)
}

func (s *FileStore) LoadStats(ctx context.Context) (*stats.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := s.readKey(KeyStats)
	if err != nil {
		return nil, err
	}
	return decodeStats(b), nil
}

func (s *FileStore) SaveStats(ctx context.Context, snap stats.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.writeKey(KeyStats, b)
}

func (s *FileStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, k := range []string{KeyAreas, KeyStats} {
		if err := os.Remove(s.path(k)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
