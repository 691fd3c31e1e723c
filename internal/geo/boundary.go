package geo

import (
	"os"
	"strconv"

	"github.com/TomiHiltunen/geohash-golang"
)

// 未命中任何行政区时的归类结果
const RegionUnknown = "unknown"

// Feature：一个国土要素（本土/岛屿/礁岩）的外环
// 约束：仅支持外环判定，不含洞；环坐标按绘制顺序存储
type Feature struct {
	Name string
	Ring []Point
	bbox [4]float64
}

// RegionBox：行政区包围盒（有序优先级表的一项）
type RegionBox struct {
	Name   string
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

// 文档注释：国土边界与行政区归类服务
// 背景：先以包围盒过滤候选要素，再做射线法精确判定；行政区归类按优先级表顺序返回首个命中。
// 约束：归类为粗粒度启发式而非逐区划地理编码；包围盒表允许重叠，表顺序即裁决规则。
type Boundary struct {
	features []Feature
	boxes    []RegionBox
	cache    *regionLRU
	kd       *kdNode
}

// New：由要素集合与行政区表构造边界服务
// 背景：保留显式注入能力，便于测试替换小型要素集；缓存容量与 TTL 读取环境变量
func New(features []Feature, boxes []RegionBox, centers []RegionCenter) *Boundary {
	ttlSec := 3600
	if s := os.Getenv("REGION_CACHE_TTL_S"); s != "" {
		if n, e := strconv.Atoi(s); e == nil && n > 0 {
			ttlSec = n
		}
	}
	fs := make([]Feature, len(features))
	copy(fs, features)
	for i := range fs {
		fs[i].bbox = ringBBox(fs[i].Ring)
	}
	var kd *kdNode
	if len(centers) > 0 {
		kd = buildKD(append([]RegionCenter{}, centers...), 0)
	}
	return &Boundary{
		features: fs,
		boxes:    append([]RegionBox{}, boxes...),
		cache:    newRegionLRU(4096, ttlSec),
		kd:       kd,
	}
}

// NewKorea：使用内置的大韩民国参考数据构造边界服务
func NewKorea() *Boundary {
	return New(KoreaFeatures(), koreaRegionBoxes, KoreaRegionCenters)
}

// Contains：国土境内判定
// 背景：逐要素测试外环，任一命中即为境内并短路返回；要素彼此独立，顺序不影响布尔结果。
// 约束：非有限坐标返回 false；不区分命中的是哪个要素
func (b *Boundary) Contains(lat, lng float64) bool {
	if !FiniteCoords(lat, lng) {
		return false
	}
	for i := range b.features {
		f := &b.features[i]
		if !inBBox(lat, lng, f.bbox) {
			continue
		}
		if pointInRing(lat, lng, f.Ring) {
			return true
		}
	}
	return false
}

// ClassifyRegion：行政区归类（首个命中的包围盒）
// 背景：同一会话内相邻定位点高度聚集，以 geohash(prec=6) 为键做进程内 LRU 缓存降低扫表开销。
// 约束：返回值为行政区名或 unknown；非有限坐标直接返回 unknown
func (b *Boundary) ClassifyRegion(lat, lng float64) string {
	if !FiniteCoords(lat, lng) {
		return RegionUnknown
	}
	key := geohash.EncodeWithPrecision(lat, lng, 6)
	if v, ok := b.cache.get(key); ok {
		return v
	}
	name := RegionUnknown
	for _, box := range b.boxes {
		if lat >= box.LatMin && lat <= box.LatMax && lng >= box.LngMin && lng <= box.LngMax {
			name = box.Name
			break
		}
	}
	b.cache.set(key, name)
	return name
}

// NearestRegion：最近行政区中心（KD-Tree）
// 背景：归类未命中或海上坐标时提供地图跳转提示；限制最大半径避免远海误归属。
// 返回：中心表项、距离（km）与命中标记
func (b *Boundary) NearestRegion(lat, lng float64, maxRadiusKm float64) (RegionCenter, float64, bool) {
	if b.kd == nil || !FiniteCoords(lat, lng) {
		return RegionCenter{}, 0, false
	}
	c, d := nearest(b.kd, lat, lng)
	if d > maxRadiusKm {
		return RegionCenter{}, 0, false
	}
	return c, d, true
}

// Meta：行政区展示元数据；未收录返回零值与 false
func (b *Boundary) Meta(region string) (RegionMeta, bool) {
	m, ok := KoreaRegionMeta[region]
	return m, ok
}
