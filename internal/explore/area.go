// 包 explore：探索判定核心。输入定位点与既有发现集合，产出新的发现区域记录
package explore

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// 非有限坐标等真正非法的输入；普通拒绝路径不走错误
var ErrInvalidInput = errors.New("explore: invalid input")

// Fix：外部定位流的一次定位
// 约束：时间戳为毫秒；speed/heading 可缺省为 0，引擎不使用
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
	Speed     float64 `json:"speed,omitempty"`
	Heading   float64 `json:"heading,omitempty"`
}

// Center：发现区域的圆心
type Center struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RegionInfo：创建时固化的行政区信息
type RegionInfo struct {
	Name        string `json:"name"`
	Coordinates string `json:"coordinates"`
}

// AreaRecord：一次发现的圆形区域（持久化单元）
// 约束：id 在集合内唯一；radius 恒为正；集合按插入序存储，顺序参与里程与合并语义，不可重排
type AreaRecord struct {
	ID               string     `json:"id"`
	Center           Center     `json:"center"`
	Radius           float64    `json:"radius"`
	Timestamp        int64      `json:"timestamp"`
	Accuracy         float64    `json:"accuracy"`
	ExperiencePoints int        `json:"experiencePoints"`
	RegionInfo       RegionInfo `json:"regionInfo"`
}

// newAreaID：时间戳加随机后缀的区域 ID
// 背景：离线多端生成也要避免碰撞，后缀取 UUID 前段已足够
func newAreaID(now time.Time) string {
	return fmt.Sprintf("area_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}
