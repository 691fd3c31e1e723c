package geo

// 文档注释：大韩民国静态参考数据
// 背景：国土外环（本土/济州/独岛）、行政区包围盒优先级表、行政区中心与展示元数据；
// 数据为客户端同源的粗粒度版本，精度满足发现判定与展示提示，不用于法定边界用途。
// 约束：包围盒表为有序优先级，顺序不可调整；环坐标按绘制顺序存储，首尾闭合。

// 国家总面积（km²），用于探索百分比
const KoreaTotalAreaKm2 = 100210.0

// 国土整体包围盒：north/south/east/west
var KoreaBBox = struct {
	North, South, East, West float64
}{
	North: 38.612446,
	South: 33.059665,
	East:  131.872755,
	West:  125.064141,
}

// 本土外环（西海岸→南海岸→东海岸→休战线）
var koreaMainland = []Point{
	{37.905, 125.064141},
	{37.654, 125.764},
	{37.566, 126.375},
	{37.223, 126.423},
	{36.995, 126.734},
	{36.321, 126.456},
	{35.987, 126.123},
	{35.456, 126.087},
	{34.887, 125.987},
	{34.234, 126.234},
	{33.887, 126.543},
	{34.123, 127.234},
	{34.456, 128.123},
	{34.887, 128.876},
	{35.123, 129.234},
	{35.234, 129.456},
	{35.567, 129.567},
	{36.234, 129.234},
	{36.987, 129.123},
	{37.456, 128.987},
	{37.887, 128.876},
	{38.234, 128.654},
	{38.456, 128.456},
	{38.612446, 128.234},
	{38.612446, 127.987},
	{38.567, 127.456},
	{38.456, 126.987},
	{38.234, 126.456},
	{38.123, 125.987},
	{37.987, 125.564},
	{37.905, 125.064141},
}

// 济州岛外环
var koreaJeju = []Point{
	{33.457, 126.161},
	{33.231, 126.287},
	{33.059665, 126.567},
	{33.123, 126.876},
	{33.287, 126.987},
	{33.487, 126.823},
	{33.567, 126.567},
	{33.523, 126.287},
	{33.457, 126.161},
}

// 独岛外环（最东端）
var koreaDokdo = []Point{
	{37.244, 131.872755},
	{37.245, 131.873},
	{37.244, 131.874},
	{37.243, 131.873},
	{37.244, 131.872755},
}

// KoreaFeatures：国土要素集合，任一外环命中即视为境内
func KoreaFeatures() []Feature {
	return []Feature{
		{Name: "대한민국", Ring: koreaMainland},
		{Name: "제주특별자치도", Ring: koreaJeju},
		{Name: "독도", Ring: koreaDokdo},
	}
}

// 行政区包围盒优先级表（有序，先命中先返回）
// 约束：盒间允许重叠，顺序即裁决规则；与客户端口径逐项一致
var koreaRegionBoxes = []RegionBox{
	{"서울특별시", 37.4, 37.7, 126.8, 127.2},
	{"부산광역시", 35.0, 35.4, 129.0, 129.4},
	{"대구광역시", 35.7, 36.0, 128.5, 128.9},
	{"인천광역시", 37.3, 37.6, 126.6, 126.8},
	{"광주광역시", 35.0, 35.3, 126.7, 127.0},
	{"대전광역시", 36.2, 36.5, 127.3, 127.5},
	{"울산광역시", 35.4, 35.7, 129.2, 129.4},
	{"세종특별자치시", 36.4, 36.6, 127.2, 127.4},
	{"경기도", 37.0, 38.2, 126.5, 127.8},
	{"강원도", 37.0, 38.6, 127.8, 129.4},
	{"충청북도", 36.2, 37.2, 127.4, 128.5},
	{"충청남도", 36.0, 37.0, 126.3, 127.7},
	{"전라북도", 35.4, 36.2, 126.4, 127.8},
	{"전라남도", 34.2, 35.8, 126.0, 127.7},
	{"경상북도", 35.7, 37.5, 128.3, 129.6},
	{"경상남도", 34.8, 36.2, 127.8, 129.3},
	{"제주특별자치도", 33.0, 33.6, 126.1, 127.0},
}

// RegionCenter：行政区中心坐标与推荐缩放级别（地图跳转提示）
type RegionCenter struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}

// KoreaRegionCenters：17 个一级行政区的中心表
var KoreaRegionCenters = []RegionCenter{
	{"서울특별시", 37.5665, 126.9780, 11},
	{"부산광역시", 35.1796, 129.0756, 11},
	{"대구광역시", 35.8714, 128.6014, 11},
	{"인천광역시", 37.4563, 126.7052, 11},
	{"광주광역시", 35.1595, 126.8526, 11},
	{"대전광역시", 36.3504, 127.3845, 11},
	{"울산광역시", 35.5384, 129.3114, 11},
	{"세종특별자치시", 36.4800, 127.2890, 12},
	{"경기도", 37.4138, 127.5183, 9},
	{"강원도", 37.8228, 128.1555, 9},
	{"충청북도", 36.6356, 127.4914, 9},
	{"충청남도", 36.5184, 126.8000, 9},
	{"전라북도", 35.7175, 127.1530, 9},
	{"전라남도", 34.8679, 126.9910, 9},
	{"경상북도", 36.4919, 128.8889, 9},
	{"경상남도", 35.4606, 128.2132, 9},
	{"제주특별자치도", 33.4996, 126.5312, 10},
}

// RegionMeta：行政区展示元数据（表情/说明/特色/主题色）
type RegionMeta struct {
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	Specialties []string `json:"specialties"`
	Color       string   `json:"color"`
}

// KoreaRegionMeta：展示层元数据表；未收录行政区返回零值即可
var KoreaRegionMeta = map[string]RegionMeta{
	"서울특별시": {
		Emoji:       "🏙️",
		Description: "대한민국의 수도",
		Specialties: []string{"경복궁", "남산타워", "한강", "명동"},
		Color:       "#FF5722",
	},
	"부산광역시": {
		Emoji:       "🌊",
		Description: "항구도시",
		Specialties: []string{"해운대", "부산타워", "자갈치시장", "태종대"},
		Color:       "#2196F3",
	},
	"제주특별자치도": {
		Emoji:       "🍊",
		Description: "아름다운 섬",
		Specialties: []string{"한라산", "성산일출봉", "협재해수욕장", "한라봉"},
		Color:       "#FF9800",
	},
	"경기도": {
		Emoji:       "🌆",
		Description: "수도권",
		Specialties: []string{"수원화성", "에버랜드", "DMZ", "한강"},
		Color:       "#4CAF50",
	},
	"강원도": {
		Emoji:       "⛰️",
		Description: "산과 바다의 고장",
		Specialties: []string{"설악산", "강릉", "평창", "속초"},
		Color:       "#607D8B",
	},
}

// Landmark：推荐探索用的著名地标
type Landmark struct {
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Region string  `json:"region"`
}

// KoreaLandmarks：推荐候选地标表
var KoreaLandmarks = []Landmark{
	{Name: "경복궁", Lat: 37.5796, Lng: 126.9770, Region: "서울특별시"},
	{Name: "부산타워", Lat: 35.1013, Lng: 129.0320, Region: "부산광역시"},
	{Name: "제주 한라산", Lat: 33.3617, Lng: 126.5292, Region: "제주특별자치도"},
}
