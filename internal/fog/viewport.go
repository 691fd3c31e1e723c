// 包 fog：将发现区域集合转换为迷雾渲染几何（投影、视口裁剪、重叠合并、渐变描述）
package fog

// Viewport：渲染层每次视口变化时提供的描述符
// 约束：引擎只读消费，不持有也不持久化
type Viewport struct {
	CenterLat      float64 `json:"centerLat"`
	CenterLng      float64 `json:"centerLng"`
	LatitudeDelta  float64 `json:"latitudeDelta"`
	LongitudeDelta float64 `json:"longitudeDelta"`
	ScreenWidth    float64 `json:"screenWidth"`
	ScreenHeight   float64 `json:"screenHeight"`
}

// 纬度一度的近似米数；仅用于显示换算，非大地测量精确值
const metersPerDegree = 111000.0

type bounds struct {
	north, south, east, west float64
}

func (v Viewport) bounds() bounds {
	return bounds{
		north: v.CenterLat + v.LatitudeDelta/2,
		south: v.CenterLat - v.LatitudeDelta/2,
		east:  v.CenterLng + v.LongitudeDelta/2,
		west:  v.CenterLng - v.LongitudeDelta/2,
	}
}

// project：等距圆柱投影到屏幕像素
// 背景：与客户端渲染口径一致的简化投影（非墨卡托），保证视觉结果逐像素吻合
func (v Viewport) project(lat, lng float64) (x, y float64) {
	b := v.bounds()
	x = (lng - b.west) / (b.east - b.west) * v.ScreenWidth
	y = (b.north - lat) / (b.north - b.south) * v.ScreenHeight
	return x, y
}

// pixelsPerMeter：米到像素的换算系数
func (v Viewport) pixelsPerMeter() float64 {
	return (v.ScreenHeight / v.LatitudeDelta) / metersPerDegree
}

// contains：展开 margin 比例后的视口内判定（对称外扩以避免边缘弹入）
func (v Viewport) contains(lat, lng float64, margin float64) bool {
	b := v.bounds()
	return lat >= b.south-v.LatitudeDelta*margin &&
		lat <= b.north+v.LatitudeDelta*margin &&
		lng >= b.west-v.LongitudeDelta*margin &&
		lng <= b.east+v.LongitudeDelta*margin
}
