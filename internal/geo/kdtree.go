package geo

import "math"

// 文档注释：KD-Tree 最近邻（二维经纬，行政区中心表）
// 背景：行政区包围盒未命中或海上坐标时，以最近中心提供地图跳转提示；表规模很小，树构建一次常驻。
// 约束：按经度/纬度交替分割；仅支持最近一个点查询，距离单位千米。
type kdNode struct {
	c  RegionCenter
	ax int // 0:lng,1:lat
	l  *kdNode
	r  *kdNode
}

func buildKD(cs []RegionCenter, depth int) *kdNode {
	if len(cs) == 0 {
		return nil
	}
	ax := depth % 2
	// 中位数分割，避免整体排序
	mid := len(cs) / 2
	selectNth(cs, mid, ax)
	node := &kdNode{c: cs[mid], ax: ax}
	node.l = buildKD(cs[:mid], depth+1)
	node.r = buildKD(cs[mid+1:], depth+1)
	return node
}

// 原地 nth 元素选择（轴为经度/纬度）
func selectNth(a []RegionCenter, n int, ax int) {
	lo, hi := 0, len(a)-1
	for lo < hi {
		p := partition(a, lo, hi, (lo+hi)/2, ax)
		if p == n {
			return
		}
		if n < p {
			hi = p - 1
		} else {
			lo = p + 1
		}
	}
}

func partition(a []RegionCenter, lo, hi, pivot, ax int) int {
	pv := a[pivot]
	a[pivot], a[hi] = a[hi], a[pivot]
	i := lo
	for j := lo; j < hi; j++ {
		if lessCenter(a[j], pv, ax) {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}

func lessCenter(x, y RegionCenter, ax int) bool {
	if ax == 0 {
		return x.Lng < y.Lng
	}
	return x.Lat < y.Lat
}

// 最近邻查询，返回中心表项与距离（千米）
func nearest(node *kdNode, lat, lng float64) (RegionCenter, float64) {
	best := RegionCenter{}
	bestD := math.MaxFloat64
	var dfs func(n *kdNode)
	dfs = func(n *kdNode) {
		if n == nil {
			return
		}
		d := Haversine(lat, lng, n.c.Lat, n.c.Lng) / 1000.0
		if d < bestD {
			bestD = d
			best = n.c
		}
		var key, q float64
		if n.ax == 0 {
			key = lng
			q = n.c.Lng
		} else {
			key = lat
			q = n.c.Lat
		}
		first, second := n.l, n.r
		if key > q {
			first, second = n.r, n.l
		}
		dfs(first)
		// 分割平面距查询点近于当前最优时才进另一侧
		if math.Abs(key-q) < bestD/111.0 {
			dfs(second)
		}
	}
	dfs(node)
	return best, bestD
}
