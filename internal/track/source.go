// 包 track：定位流消费会话。串行执行"判定→追加→重算→落盘"，并提供可插拔的定位源契约
package track

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"fogwalk/internal/explore"
)

// 文档注释：定位源契约
// 背景：真机 GPS、回放文件、测试桩都以同一接口接入会话；源自行决定节奏，可重复或跳点。
// 约束：实现须在 ctx 取消后尽快关闭返回的通道；源的失败通过关闭通道表达，由调用方决定是否重试
type Source interface {
	Watch(ctx context.Context) (<-chan explore.Fix, error)
}

// FileSource：从 JSON 文件回放定位序列
// 背景：离线回灌与压测场景；interval 为零时不限速连续发送
type FileSource struct {
	Path     string
	Interval time.Duration
}

func (s *FileSource) Watch(ctx context.Context) (<-chan explore.Fix, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var fixes []explore.Fix
	if err := json.Unmarshal(b, &fixes); err != nil {
		return nil, err
	}
	ch := make(chan explore.Fix)
	go func() {
		defer close(ch)
		for _, f := range fixes {
			if s.Interval > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(s.Interval):
				}
			}
			select {
			case <-ctx.Done():
				return
			case ch <- f:
			}
		}
	}()
	return ch, nil
}

// ChanSource：直接以通道供给定位（测试与进程内注入用）
type ChanSource struct {
	C <-chan explore.Fix
}

func (s *ChanSource) Watch(ctx context.Context) (<-chan explore.Fix, error) {
	return s.C, nil
}
