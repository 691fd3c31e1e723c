package explore

import (
	"math"
	"sort"
	"time"

	"fogwalk/internal/geo"
)

// Suggestion：一条推荐探索地标
type Suggestion struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Region     string  `json:"region"`
	DistanceM  int     `json:"distance"`
	Difficulty string  `json:"difficulty"`
}

// SuggestedExplorations：按距离推荐尚未探索的著名地标
// 背景：已被任一发现区域覆盖（500 米内）的地标不再推荐；难度按直线距离分档（>100km 困难，>50km 中等）。
// 约束：最多返回 5 条，按距离升序
func SuggestedExplorations(userLat, userLng float64, existing []AreaRecord) []Suggestion {
	out := make([]Suggestion, 0, len(geo.KoreaLandmarks))
	for _, lm := range geo.KoreaLandmarks {
		explored := false
		for i := range existing {
			d := geo.Haversine(existing[i].Center.Latitude, existing[i].Center.Longitude, lm.Lat, lm.Lng)
			if d < suggestionNearbyRadiusM {
				explored = true
				break
			}
		}
		if explored {
			continue
		}
		d := geo.Haversine(userLat, userLng, lm.Lat, lm.Lng)
		diff := "easy"
		if d > suggestionHardDistanceM {
			diff = "hard"
		} else if d > suggestionMediumDistanceM {
			diff = "medium"
		}
		out = append(out, Suggestion{
			Name:       lm.Name,
			Lat:        lm.Lat,
			Lng:        lm.Lng,
			Region:     lm.Region,
			DistanceM:  int(math.Round(d)),
			Difficulty: diff,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceM < out[j].DistanceM })
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// RegionCompletion：某行政区的探索完成度
type RegionCompletion struct {
	Region               string     `json:"region"`
	AreasExplored        int        `json:"areasExplored"`
	CompletionPercentage int        `json:"completionPercentage"`
	LastExplored         *time.Time `json:"lastExplored,omitempty"`
}

// CompletionForRegion：行政区完成度计算
// 背景：每个发现区域记 5%，封顶 100%；最后探索时间取该区内最新记录的时间戳
func CompletionForRegion(areas []AreaRecord, region string) RegionCompletion {
	var count int
	var latest int64
	for i := range areas {
		if areas[i].RegionInfo.Name != region {
			continue
		}
		count++
		if areas[i].Timestamp > latest {
			latest = areas[i].Timestamp
		}
	}
	rc := RegionCompletion{
		Region:               region,
		AreasExplored:        count,
		CompletionPercentage: min(count*5, 100),
	}
	if count > 0 {
		t := time.UnixMilli(latest)
		rc.LastExplored = &t
	}
	return rc
}
