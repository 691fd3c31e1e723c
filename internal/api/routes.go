// 包 api：集中注册 HTTP API 路由以解耦主入口，便于后续扩展与替换
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fogwalk/internal/archive"
	"fogwalk/internal/explore"
	"fogwalk/internal/fog"
	"fogwalk/internal/geo"
	"fogwalk/internal/metrics"
	"fogwalk/internal/stats"
	"fogwalk/internal/track"
)

// Deps：路由依赖集合；Archive 可为 nil（未配置归档库时对应路由返回 404）
type Deps struct {
	Session  *track.Session
	Boundary *geo.Boundary
	Fog      *fog.Engine
	Archive  *archive.Archive
}

// writeJSON：统一响应头与编码
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// queryFloat：查询参数转浮点；缺失或非法返回 false
func queryFloat(r *http.Request, name string) (float64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// 构建并返回 API 路由：独立 ServeMux 便于在主入口挂载到 /api 前缀
func BuildRoutes(d Deps) *http.ServeMux {
	apiMux := http.NewServeMux()

	// 提交一次定位；拒绝不是错误，以 accepted 标记返回
	apiMux.HandleFunc("/fix", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		start := time.Now()
		metrics.RequestsTotal.Inc()
		var f explore.Fix
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad body"})
			return
		}
		area, err := d.Session.Process(r.Context(), f)
		if err != nil {
			if errors.Is(err, explore.ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid coordinates"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal"})
			return
		}
		resp := map[string]any{
			"accepted": area != nil,
			"stats":    d.Session.Snapshot(),
		}
		if area != nil {
			resp["area"] = area
		}
		metrics.RequestDurationMs.Observe(float64(time.Since(start).Milliseconds()))
		writeJSON(w, http.StatusOK, resp)
	})

	apiMux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		writeJSON(w, http.StatusOK, d.Session.Snapshot())
	})

	// 等级进度：由快照内累计经验推导
	apiMux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		snap := d.Session.Snapshot()
		writeJSON(w, http.StatusOK, map[string]any{
			"level":                 stats.Level(snap.TotalExperiencePoints),
			"experienceToNextLevel": stats.ExperienceToNextLevel(snap.TotalExperiencePoints),
			"totalExperiencePoints": snap.TotalExperiencePoints,
			"totalAreasExplored":    snap.TotalAreasExplored,
			"explorationPercentage": snap.ExplorationPercentage,
			"regionsCovered":        snap.RegionsCovered,
		})
	})

	// 迷雾渲染：视口参数必填，结果为纯函数输出，连续调用取最后一次即可
	apiMux.HandleFunc("/fog", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		var vp fog.Viewport
		var ok [6]bool
		vp.CenterLat, ok[0] = queryFloat(r, "centerLat")
		vp.CenterLng, ok[1] = queryFloat(r, "centerLng")
		vp.LatitudeDelta, ok[2] = queryFloat(r, "latitudeDelta")
		vp.LongitudeDelta, ok[3] = queryFloat(r, "longitudeDelta")
		vp.ScreenWidth, ok[4] = queryFloat(r, "screenWidth")
		vp.ScreenHeight, ok[5] = queryFloat(r, "screenHeight")
		for _, o := range ok {
			if !o {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing viewport params"})
				return
			}
		}
		start := time.Now()
		rd := d.Fog.Render(d.Session.Areas(), vp)
		metrics.RenderDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
		if removed := rd.Metrics.VisibleCount - rd.Metrics.OptimizedCount; removed > 0 {
			metrics.RenderMergedTotal.Add(float64(removed))
		}
		writeJSON(w, http.StatusOK, rd)
	})

	// 行政区静态数据：中心表与展示元数据
	apiMux.HandleFunc("/regions", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		writeJSON(w, http.StatusOK, map[string]any{
			"centers": geo.KoreaRegionCenters,
			"meta":    geo.KoreaRegionMeta,
		})
	})

	// 坐标归属：境内判定 + 行政区归类 + 最近行政区中心（海上/未命中时的跳转提示）
	apiMux.HandleFunc("/region_of", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		lat, ok1 := queryFloat(r, "lat")
		lng, ok2 := queryFloat(r, "lng")
		if !ok1 || !ok2 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing lat/lng"})
			return
		}
		resp := map[string]any{
			"inTerritory": d.Boundary.Contains(lat, lng),
			"region":      d.Boundary.ClassifyRegion(lat, lng),
		}
		if meta, ok := d.Boundary.Meta(resp["region"].(string)); ok {
			resp["meta"] = meta
		}
		if c, distKm, ok := d.Boundary.NearestRegion(lat, lng, 200); ok {
			resp["nearest"] = map[string]any{"name": c.Name, "lat": c.Lat, "lng": c.Lng, "zoom": c.Zoom, "distanceKm": distKm}
		}
		writeJSON(w, http.StatusOK, resp)
	})

	// 行政区完成度：?name=서울특별시
	apiMux.HandleFunc("/region_completion", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		name := r.URL.Query().Get("name")
		if name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing name"})
			return
		}
		writeJSON(w, http.StatusOK, explore.CompletionForRegion(d.Session.Areas(), name))
	})

	// 推荐探索：?lat=&lng=
	apiMux.HandleFunc("/suggestions", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		lat, ok1 := queryFloat(r, "lat")
		lng, ok2 := queryFloat(r, "lng")
		if !ok1 || !ok2 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing lat/lng"})
			return
		}
		writeJSON(w, http.StatusOK, explore.SuggestedExplorations(lat, lng, d.Session.Areas()))
	})

	// GET 导出全量集合；DELETE 清空历史
	apiMux.HandleFunc("/areas", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{
				"exploredAreas":    d.Session.Areas(),
				"explorationStats": d.Session.Snapshot(),
				"exportedAt":       time.Now().UnixMilli(),
			})
		case http.MethodDelete:
			if err := d.Session.Reset(r.Context()); err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "reset failed"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"reset": true})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// 归档总量（未配置归档库时 404）
	apiMux.HandleFunc("/archive_totals", func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsTotal.Inc()
		if d.Archive == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		t, err := d.Archive.Totals(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "archive unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"areas": t.Areas, "experience": t.XP})
	})

	apiMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return apiMux
}
