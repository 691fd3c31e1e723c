package geo

// 文档注释：点入多边形判定（射线法，Even-Odd）
// 背景：向东投射射线统计与环边的交点数，奇数在内偶数在外；用于国土外环命中判定。
// 约束：环为有序顶点序列且首尾闭合与否均可；边界临界值受浮点误差影响，分母加极小量避免除零。
func pointInRing(lat, lng float64, ring []Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi := ring[i].Lng
		yi := ring[i].Lat
		xj := ring[j].Lng
		yj := ring[j].Lat
		intersect := ((yi > lat) != (yj > lat)) && (lng < (xj-xi)*(lat-yi)/(yj-yi+1e-12)+xi)
		if intersect {
			inside = !inside
		}
	}
	return inside
}

// 快速包围盒过滤：b = [minLng, minLat, maxLng, maxLat]
func inBBox(lat, lng float64, b [4]float64) bool {
	return lng >= b[0] && lng <= b[2] && lat >= b[1] && lat <= b[3]
}

// ringBBox：计算环的包围盒，用于候选过滤
func ringBBox(ring []Point) [4]float64 {
	if len(ring) == 0 {
		return [4]float64{}
	}
	b := [4]float64{ring[0].Lng, ring[0].Lat, ring[0].Lng, ring[0].Lat}
	for _, p := range ring[1:] {
		if p.Lng < b[0] {
			b[0] = p.Lng
		}
		if p.Lat < b[1] {
			b[1] = p.Lat
		}
		if p.Lng > b[2] {
			b[2] = p.Lng
		}
		if p.Lat > b[3] {
			b[3] = p.Lat
		}
	}
	return b
}
