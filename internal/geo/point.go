// 包 geo：国土边界判定与行政区归类的几何基础；坐标统一为 WGS84 十进制度
package geo

import "math"

// 点坐标（纬度/经度，十进制度）
type Point struct {
	Lat float64
	Lng float64
}

// 地球平均半径（米），与客户端口径保持一致
const EarthRadiusM = 6371000.0

func deg2rad(d float64) float64 { return d * (math.Pi / 180.0) }

// Haversine：两点间大圆距离（米）
// 背景：探索判定与统计里程均使用该公式；半径固定 6371000 以保证跨端数值一致
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// FiniteCoords：经纬度是否为有限数值
// 约束：NaN/Inf 视为非法输入，调用方据此走快速失败路径
func FiniteCoords(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return false
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return false
	}
	return true
}
