package fog

import "fogwalk/internal/geo"

// 两圆心距小于合并半径之和乘以该系数时触发合并
const mergeOverlapFactor = 0.8

// mergeOverlapping：贪心单趟重叠合并
// 背景：按集合顺序向前扫描，被并入者标记跳过，幸存者半径取 max(两者半径, 圆心距/2+100) 以覆盖两圆；
// 单趟不保证对三个以上互相重叠的链做传递闭包，这是有意保留的近似优化。
// 约束：只在副本上修改半径，绝不回写持久化集合；结果保持幸存者原有顺序
func mergeOverlapping(areas []renderArea) []renderArea {
	if len(areas) <= 1 {
		return areas
	}
	merged := make([]renderArea, 0, len(areas))
	processed := make([]bool, len(areas))
	for i := 0; i < len(areas); i++ {
		if processed[i] {
			continue
		}
		cur := areas[i]
		processed[i] = true
		for j := i + 1; j < len(areas); j++ {
			if processed[j] {
				continue
			}
			other := areas[j]
			d := geo.Haversine(cur.lat, cur.lng, other.lat, other.lng)
			if d < (cur.radius+other.radius)*mergeOverlapFactor {
				// 100 米余量保证放大后的圆盖住被并入者
				nr := d/2 + 100
				if cur.radius > nr {
					nr = cur.radius
				}
				if other.radius > nr {
					nr = other.radius
				}
				cur.radius = nr
				processed[j] = true
			}
		}
		merged = append(merged, cur)
	}
	return merged
}
