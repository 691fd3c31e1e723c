// 包 stats：从发现区域全量序列重算统计快照与等级进度；快照是可丢弃的反范式缓存
package stats

import (
	"math"

	"fogwalk/internal/explore"
	"fogwalk/internal/geo"
)

// Snapshot：统计快照
// 约束：永远由区域序列整体重算，不做增量修改；持久化副本允许缺失或过期
type Snapshot struct {
	TotalAreasExplored    int      `json:"totalAreasExplored"`
	ExplorationPercentage float64  `json:"explorationPercentage"`
	TotalDistanceTraveled int      `json:"totalDistanceTraveled"`
	TotalExperiencePoints int      `json:"totalExperiencePoints"`
	AverageAccuracy       float64  `json:"averageAccuracy"`
	RegionsCovered        []string `json:"regionsCovered"`
	TotalExploredAreaKm2  float64  `json:"totalExploredAreaKm2"`
}

// 等级门槛表：第 i 项为升到 i+2 级所需累计经验
var levelThresholds = []int{500, 1500, 3000, 5000, 8000, 12000, 17000, 23000, 30000}

// Aggregate：由区域序列整体重算统计
// 背景：面积为圆面积的简单求和，不扣除重叠（接受对合并圆的高估）；
// 里程是按发现顺序连线的大圆距离之和，依赖插入序而非真实移动轨迹。
// 约束：空输入返回全零快照与空行政区集合，不抛错不除零
func Aggregate(areas []explore.AreaRecord) Snapshot {
	s := Snapshot{RegionsCovered: []string{}}
	if len(areas) == 0 {
		return s
	}
	s.TotalAreasExplored = len(areas)

	var areaKm2 float64
	for i := range areas {
		r := areas[i].Radius / 1000.0
		areaKm2 += math.Pi * r * r
	}
	s.TotalExploredAreaKm2 = math.Round(areaKm2*100) / 100
	s.ExplorationPercentage = math.Min(areaKm2/geo.KoreaTotalAreaKm2*100, 100)

	var dist float64
	for i := 1; i < len(areas); i++ {
		dist += geo.Haversine(
			areas[i-1].Center.Latitude, areas[i-1].Center.Longitude,
			areas[i].Center.Latitude, areas[i].Center.Longitude,
		)
	}
	s.TotalDistanceTraveled = int(math.Round(dist))

	var acc float64
	seen := make(map[string]struct{})
	for i := range areas {
		s.TotalExperiencePoints += areas[i].ExperiencePoints
		acc += areas[i].Accuracy
		if name := areas[i].RegionInfo.Name; name != "" {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				s.RegionsCovered = append(s.RegionsCovered, name)
			}
		}
	}
	s.AverageAccuracy = math.Round(acc/float64(len(areas))*10) / 10
	return s
}

// Level：累计经验对应的等级（1~10）
func Level(experience int) int {
	lvl := 1
	for _, th := range levelThresholds {
		if experience >= th {
			lvl++
		}
	}
	if lvl > 10 {
		lvl = 10
	}
	return lvl
}

// ExperienceToNextLevel：距下一等级还差多少经验；满级返回 0
func ExperienceToNextLevel(experience int) int {
	lvl := Level(experience)
	if lvl >= 10 {
		return 0
	}
	return levelThresholds[lvl-1] - experience
}
