package explore

import (
	"fmt"
	"math/rand"
	"time"

	"fogwalk/internal/geo"
)

// 判定阈值默认值（米）
const (
	DefaultAccuracyThreshold  = 50.0
	DefaultMinDistance        = 100.0
	DefaultExplorationRadius  = 500.0
	suggestionNearbyRadiusM   = DefaultExplorationRadius
	suggestionMediumDistanceM = 50000.0
	suggestionHardDistanceM   = 100000.0
)

// Config：判定阈值集合，零值字段回退到默认
type Config struct {
	AccuracyThreshold float64
	MinDistance       float64
	ExplorationRadius float64
}

func (c Config) withDefaults() Config {
	if c.AccuracyThreshold <= 0 {
		c.AccuracyThreshold = DefaultAccuracyThreshold
	}
	if c.MinDistance <= 0 {
		c.MinDistance = DefaultMinDistance
	}
	if c.ExplorationRadius <= 0 {
		c.ExplorationRadius = DefaultExplorationRadius
	}
	return c
}

// 文档注释：探索判定器
// 背景：纯判定函数的载体；随机源、时钟与 ID 生成均可注入，保证测试可复现。
// 约束：Evaluate 不修改既有集合、不做任何 I/O；同一集合快照上的判定可重复执行
type Tracker struct {
	cfg      Config
	boundary *geo.Boundary
	rng      *rand.Rand
	now      func() time.Time
	newID    func(time.Time) string
}

// Option：构造期注入点
type Option func(*Tracker)

// WithRand：注入随机源（测试固定种子用）
func WithRand(r *rand.Rand) Option { return func(t *Tracker) { t.rng = r } }

// WithClock：注入时钟
func WithClock(now func() time.Time) Option { return func(t *Tracker) { t.now = now } }

// WithIDFunc：注入 ID 生成
func WithIDFunc(f func(time.Time) string) Option { return func(t *Tracker) { t.newID = f } }

// NewTracker：构造判定器
func NewTracker(cfg Config, boundary *geo.Boundary, opts ...Option) *Tracker {
	t := &Tracker{
		cfg:      cfg.withDefaults(),
		boundary: boundary,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		newID:    newAreaID,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Rejection：拒绝原因（空串表示接受）；用于指标维度，不影响判定契约
type Rejection string

const (
	RejectNone      Rejection = ""
	RejectAccuracy  Rejection = "accuracy"
	RejectOutside   Rejection = "outside"
	RejectProximity Rejection = "proximity"
)

// Evaluate：判定一次定位是否构成新的发现
// 背景：按序执行三条拒绝规则（精度、境外、与既有区域过近），任一命中即返回 nil 且无副作用；
// 全部通过则创建新记录（半径取配置值，经验值含随机加成，行政区在创建时固化）。
// 约束：距离为严格小于判定，恰好等于最小距离视为接受；非有限坐标返回 ErrInvalidInput
func (t *Tracker) Evaluate(fix Fix, existing []AreaRecord) (*AreaRecord, error) {
	area, _, err := t.EvaluateDetailed(fix, existing)
	return area, err
}

// EvaluateDetailed：同 Evaluate，额外返回拒绝原因
func (t *Tracker) EvaluateDetailed(fix Fix, existing []AreaRecord) (*AreaRecord, Rejection, error) {
	if !geo.FiniteCoords(fix.Latitude, fix.Longitude) {
		return nil, RejectNone, ErrInvalidInput
	}
	if fix.Accuracy > t.cfg.AccuracyThreshold {
		return nil, RejectAccuracy, nil
	}
	if !t.boundary.Contains(fix.Latitude, fix.Longitude) {
		return nil, RejectOutside, nil
	}
	for i := range existing {
		d := geo.Haversine(fix.Latitude, fix.Longitude,
			existing[i].Center.Latitude, existing[i].Center.Longitude)
		if d < t.cfg.MinDistance {
			return nil, RejectProximity, nil
		}
	}
	now := t.now()
	area := &AreaRecord{
		ID:               t.newID(now),
		Center:           Center{Latitude: fix.Latitude, Longitude: fix.Longitude},
		Radius:           t.cfg.ExplorationRadius,
		Timestamp:        now.UnixMilli(),
		Accuracy:         fix.Accuracy,
		ExperiencePoints: t.scoreFix(fix),
		RegionInfo: RegionInfo{
			Name:        t.boundary.ClassifyRegion(fix.Latitude, fix.Longitude),
			Coordinates: fmt.Sprintf("%.4f, %.4f", fix.Latitude, fix.Longitude),
		},
	}
	return area, RejectNone, nil
}

// scoreFix：经验值计算
// 背景：基础 100 分，精度越高奖励越多，再叠加 [1,50] 的随机加成；总范围 [101,200]。
// 约束：随机项使计分有意非确定，随机源可注入以便测试断言精确值
func (t *Tracker) scoreFix(fix Fix) int {
	base := 100
	if fix.Accuracy <= 10 {
		base += 50
	} else if fix.Accuracy <= 20 {
		base += 25
	}
	return base + t.rng.Intn(50) + 1
}
