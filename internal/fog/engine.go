package fog

import (
	"fmt"

	"fogwalk/internal/explore"
	"fogwalk/internal/geo"
)

// 视口外扩比例（每侧各 10%），避免边缘圆弹入
const cullMargin = 0.1

// 渲染复杂度分档阈值（合并后的圆数量）
const (
	complexityMediumAt = 50
	complexityHighAt   = 100
)

// Circle：投影后的单个探明圆（像素坐标）
type Circle struct {
	ID     string  `json:"id"`
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Radius float64 `json:"r"`
}

// GradientStop：径向渐变的一档
type GradientStop struct {
	Offset      string  `json:"offset"`
	StopColor   string  `json:"stopColor"`
	StopOpacity float64 `json:"stopOpacity"`
}

// Gradient：每个幸存圆一份的径向渐变描述，仅用于软边渲染
type Gradient struct {
	ID    string         `json:"id"`
	CX    string         `json:"cx"`
	CY    string         `json:"cy"`
	R     string         `json:"r"`
	Stops []GradientStop `json:"stops"`
}

// Metrics：渲染性能指标
type Metrics struct {
	OriginalCount       int    `json:"originalCount"`
	VisibleCount        int    `json:"visibleCount"`
	OptimizedCount      int    `json:"optimizedCount"`
	ReductionPercentage string `json:"reductionPercentage"`
	RenderingComplexity string `json:"renderingComplexity"`
}

// ScreenRect：屏幕上的矩形（国土包围盒投影用）
type ScreenRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderData：一次视口渲染所需的全部几何
type RenderData struct {
	FullFog         bool       `json:"fullFog"`
	Circles         []Circle   `json:"circles"`
	Gradients       []Gradient `json:"gradients"`
	Metrics         Metrics    `json:"metrics"`
	TerritoryBounds ScreenRect `json:"territoryBounds"`
}

// 固定渐变档位表：中心不透明，边缘渐隐
var gradientStops = []GradientStop{
	{Offset: "0%", StopColor: "white", StopOpacity: 1},
	{Offset: "70%", StopColor: "white", StopOpacity: 0.7},
	{Offset: "90%", StopColor: "white", StopOpacity: 0.3},
	{Offset: "100%", StopColor: "white", StopOpacity: 0},
}

// 合并流水线内部使用的轻量副本
type renderArea struct {
	id     string
	lat    float64
	lng    float64
	radius float64
}

// 文档注释：迷雾渲染引擎
// 背景：纯函数式组件，输入区域集合与视口，输出渲染几何与指标；无副作用，可并发重复调用，
// 连续视口事件只需采用最后一次结果。
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Render：裁剪→合并→投影→渐变→指标
// 约束：合并只发生在本次调用的副本上；指标中的缩减率以裁剪前的全量为基数
func (e *Engine) Render(areas []explore.AreaRecord, vp Viewport) RenderData {
	out := RenderData{
		Circles:         []Circle{},
		Gradients:       []Gradient{},
		TerritoryBounds: e.TerritoryBoundsOnScreen(vp),
	}
	if len(areas) == 0 {
		out.FullFog = true
		out.Metrics = Metrics{ReductionPercentage: "0%", RenderingComplexity: "Low"}
		return out
	}

	visible := make([]renderArea, 0, len(areas))
	for i := range areas {
		a := &areas[i]
		if vp.contains(a.Center.Latitude, a.Center.Longitude, cullMargin) {
			r := a.Radius
			if r <= 0 {
				r = explore.DefaultExplorationRadius
			}
			visible = append(visible, renderArea{
				id:     a.ID,
				lat:    a.Center.Latitude,
				lng:    a.Center.Longitude,
				radius: r,
			})
		}
	}
	merged := mergeOverlapping(visible)

	ppm := vp.pixelsPerMeter()
	for i := range merged {
		x, y := vp.project(merged[i].lat, merged[i].lng)
		out.Circles = append(out.Circles, Circle{
			ID:     merged[i].id,
			CX:     x,
			CY:     y,
			Radius: merged[i].radius * ppm,
		})
		out.Gradients = append(out.Gradients, Gradient{
			ID:    fmt.Sprintf("fog-gradient-%d", i),
			CX:    "50%",
			CY:    "50%",
			R:     "50%",
			Stops: gradientStops,
		})
	}

	out.Metrics = computeMetrics(len(areas), len(visible), len(merged))
	return out
}

// TerritoryBoundsOnScreen：国土整体包围盒投影为屏幕矩形
func (e *Engine) TerritoryBoundsOnScreen(vp Viewport) ScreenRect {
	x1, y1 := vp.project(geo.KoreaBBox.North, geo.KoreaBBox.West)
	x2, y2 := vp.project(geo.KoreaBBox.South, geo.KoreaBBox.East)
	return ScreenRect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func computeMetrics(original, visible, optimized int) Metrics {
	reduction := "0%"
	if original > 0 {
		reduction = fmt.Sprintf("%.1f%%", float64(original-optimized)/float64(original)*100)
	}
	complexity := "Low"
	if optimized >= complexityHighAt {
		complexity = "High"
	} else if optimized >= complexityMediumAt {
		complexity = "Medium"
	}
	return Metrics{
		OriginalCount:       original,
		VisibleCount:        visible,
		OptimizedCount:      optimized,
		ReductionPercentage: reduction,
		RenderingComplexity: complexity,
	}
}
