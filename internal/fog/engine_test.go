package fog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fogwalk/internal/explore"
	"fogwalk/internal/geo"
)

// 以首尔为中心的测试视口：0.1 度视野、400x800 屏幕
func seoulViewport() Viewport {
	return Viewport{
		CenterLat:      37.5665,
		CenterLng:      126.9780,
		LatitudeDelta:  0.1,
		LongitudeDelta: 0.1,
		ScreenWidth:    400,
		ScreenHeight:   800,
	}
}

func areaAt(id string, lat, lng, radius float64) explore.AreaRecord {
	return explore.AreaRecord{
		ID:     id,
		Center: explore.Center{Latitude: lat, Longitude: lng},
		Radius: radius,
	}
}

func latOffset(meters float64) float64 {
	return meters * 180.0 / (math.Pi * geo.EarthRadiusM)
}

func TestRenderEmptyFullFog(t *testing.T) {
	rd := NewEngine().Render(nil, seoulViewport())
	assert.True(t, rd.FullFog)
	assert.Empty(t, rd.Circles)
	assert.Empty(t, rd.Gradients)
	assert.Equal(t, "0%", rd.Metrics.ReductionPercentage)
	assert.Equal(t, "Low", rd.Metrics.RenderingComplexity)
}

func TestRenderProjection(t *testing.T) {
	vp := seoulViewport()
	rd := NewEngine().Render([]explore.AreaRecord{
		areaAt("a1", vp.CenterLat, vp.CenterLng, 500),
	}, vp)

	require.Len(t, rd.Circles, 1)
	assert.False(t, rd.FullFog)
	// 视口中心投到屏幕中心
	assert.InDelta(t, 200, rd.Circles[0].CX, 1e-9)
	assert.InDelta(t, 400, rd.Circles[0].CY, 1e-9)
	// 半径换算：(800/0.1)/111000 像素每米
	assert.InDelta(t, 500*(800/0.1)/111000, rd.Circles[0].Radius, 1e-9)
	assert.Equal(t, "a1", rd.Circles[0].ID)

	// 每个幸存圆配一份固定档位的渐变
	require.Len(t, rd.Gradients, 1)
	assert.Equal(t, "fog-gradient-0", rd.Gradients[0].ID)
	require.Len(t, rd.Gradients[0].Stops, 4)
	assert.Equal(t, 1.0, rd.Gradients[0].Stops[0].StopOpacity)
	assert.Equal(t, 0.0, rd.Gradients[0].Stops[3].StopOpacity)
}

func TestRenderCullingMargin(t *testing.T) {
	vp := seoulViewport()
	e := NewEngine()

	// 北边界 +0.05，外扩 10% 后 +0.06：0.059 可见、0.061 裁剪
	inside := areaAt("in", vp.CenterLat+0.059, vp.CenterLng, 500)
	outside := areaAt("out", vp.CenterLat+0.061, vp.CenterLng, 500)

	rd := e.Render([]explore.AreaRecord{inside, outside}, vp)
	require.Len(t, rd.Circles, 1)
	assert.Equal(t, "in", rd.Circles[0].ID)
	assert.Equal(t, 2, rd.Metrics.OriginalCount)
	assert.Equal(t, 1, rd.Metrics.VisibleCount)

	// 全部裁掉也不是 FullFog，缩减率按全量基数算
	rd = e.Render([]explore.AreaRecord{outside}, vp)
	assert.False(t, rd.FullFog)
	assert.Empty(t, rd.Circles)
	assert.Equal(t, "100.0%", rd.Metrics.ReductionPercentage)
}

func TestRenderZeroRadiusFallback(t *testing.T) {
	vp := seoulViewport()
	rd := NewEngine().Render([]explore.AreaRecord{
		areaAt("a1", vp.CenterLat, vp.CenterLng, 0),
	}, vp)
	require.Len(t, rd.Circles, 1)
	want := explore.DefaultExplorationRadius * vp.pixelsPerMeter()
	assert.InDelta(t, want, rd.Circles[0].Radius, 1e-9)
}

func TestMergeOverlapping(t *testing.T) {
	// 两圆心距 500，阈值 0.8*(500+500)=800：合并，幸存者保留首个 id
	a := renderArea{id: "a", lat: 37.5665, lng: 126.9780, radius: 500}
	b := renderArea{id: "b", lat: 37.5665 + latOffset(500), lng: 126.9780, radius: 500}
	merged := mergeOverlapping([]renderArea{a, b})
	require.Len(t, merged, 1)
	assert.Equal(t, "a", merged[0].id)
	// max(500, 500, 500/2+100) = 500：无需放大
	assert.InDelta(t, 500, merged[0].radius, 0.01)
}

func TestMergeEnlargesRadius(t *testing.T) {
	// 半径 300、圆心距 450（< 0.8*600）：放大到 450/2+100=325 以盖住两圆
	a := renderArea{id: "a", lat: 37.5665, lng: 126.9780, radius: 300}
	b := renderArea{id: "b", lat: 37.5665 + latOffset(450), lng: 126.9780, radius: 300}
	merged := mergeOverlapping([]renderArea{a, b})
	require.Len(t, merged, 1)
	assert.InDelta(t, 325, merged[0].radius, 0.01)
}

func TestMergeKeepsDistantCircles(t *testing.T) {
	a := renderArea{id: "a", lat: 37.5665, lng: 126.9780, radius: 500}
	b := renderArea{id: "b", lat: 37.5665 + latOffset(900), lng: 126.9780, radius: 500}
	merged := mergeOverlapping([]renderArea{a, b})
	assert.Len(t, merged, 2)
}

func TestMergeSinglePass(t *testing.T) {
	// 链式重叠只做单趟：b 并入 a 后不再与 c 比较 b 的原位置
	a := renderArea{id: "a", lat: 37.5665, lng: 126.9780, radius: 300}
	b := renderArea{id: "b", lat: 37.5665 + latOffset(450), lng: 126.9780, radius: 300}
	c := renderArea{id: "c", lat: 37.5665 + latOffset(900), lng: 126.9780, radius: 300}
	merged := mergeOverlapping([]renderArea{a, b, c})
	// a 吞并 b（圆心距 450），c 与 a 圆心距 900 > 0.8*(325+300) 幸存
	require.Len(t, merged, 2)
	assert.Equal(t, "a", merged[0].id)
	assert.Equal(t, "c", merged[1].id)
}

func TestRenderMetricsReduction(t *testing.T) {
	vp := seoulViewport()
	// 三个互相重叠的圆合并为一个：缩减率 66.7%
	areas := []explore.AreaRecord{
		areaAt("a", vp.CenterLat, vp.CenterLng, 500),
		areaAt("b", vp.CenterLat+latOffset(300), vp.CenterLng, 500),
		areaAt("c", vp.CenterLat+latOffset(600), vp.CenterLng, 500),
	}
	rd := NewEngine().Render(areas, vp)
	assert.Equal(t, 3, rd.Metrics.OriginalCount)
	assert.Equal(t, 3, rd.Metrics.VisibleCount)
	assert.Equal(t, 1, rd.Metrics.OptimizedCount)
	assert.Equal(t, "66.7%", rd.Metrics.ReductionPercentage)
}

func TestComputeMetricsComplexity(t *testing.T) {
	assert.Equal(t, "Low", computeMetrics(100, 49, 49).RenderingComplexity)
	assert.Equal(t, "Medium", computeMetrics(100, 50, 50).RenderingComplexity)
	assert.Equal(t, "Medium", computeMetrics(100, 99, 99).RenderingComplexity)
	assert.Equal(t, "High", computeMetrics(200, 100, 100).RenderingComplexity)
}

func TestTerritoryBoundsOnScreen(t *testing.T) {
	// 覆盖全境的视口：国土矩形应为正尺寸且落在屏幕内
	vp := Viewport{
		CenterLat:      35.9,
		CenterLng:      128.5,
		LatitudeDelta:  10,
		LongitudeDelta: 10,
		ScreenWidth:    400,
		ScreenHeight:   800,
	}
	r := NewEngine().TerritoryBoundsOnScreen(vp)
	assert.Greater(t, r.Width, 0.0)
	assert.Greater(t, r.Height, 0.0)
	assert.GreaterOrEqual(t, r.X, 0.0)
	assert.LessOrEqual(t, r.X+r.Width, vp.ScreenWidth)
}

func TestViewportContains(t *testing.T) {
	vp := seoulViewport()
	assert.True(t, vp.contains(vp.CenterLat, vp.CenterLng, 0))
	assert.False(t, vp.contains(vp.CenterLat+0.051, vp.CenterLng, 0))
	assert.True(t, vp.contains(vp.CenterLat+0.051, vp.CenterLng, cullMargin))
	assert.False(t, vp.contains(vp.CenterLat, vp.CenterLng+0.061, cullMargin))
}
