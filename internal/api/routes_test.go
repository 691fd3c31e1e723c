package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fogwalk/internal/explore"
	"fogwalk/internal/fog"
	"fogwalk/internal/geo"
	"fogwalk/internal/store"
	"fogwalk/internal/track"
)

func newTestMux(t *testing.T) (*http.ServeMux, *track.Session) {
	t.Helper()
	boundary := geo.NewKorea()
	tracker := explore.NewTracker(explore.Config{}, boundary,
		explore.WithRand(rand.New(rand.NewSource(1))),
	)
	sess, err := track.NewSession(context.Background(), track.Options{
		Tracker: tracker,
		Store:   store.NewFileStore(t.TempDir()),
	})
	require.NoError(t, err)
	mux := BuildRoutes(Deps{
		Session:  sess,
		Boundary: boundary,
		Fog:      fog.NewEngine(),
	})
	return mux, sess
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func seoulFixBody() explore.Fix {
	return explore.Fix{Latitude: 37.5665, Longitude: 126.9780, Accuracy: 5, Timestamp: 1700000000000}
}

func TestFixEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	w, out := doJSON(t, mux, http.MethodPost, "/fix", seoulFixBody())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("content-type"))
	assert.Equal(t, "no-store", w.Header().Get("cache-control"))
	assert.Equal(t, true, out["accepted"])
	require.Contains(t, out, "area")
	area := out["area"].(map[string]any)
	assert.Equal(t, "서울특별시", area["regionInfo"].(map[string]any)["name"])
	assert.Equal(t, 500.0, area["radius"])

	// 过近：不是错误，accepted=false 且无 area 字段
	w, out = doJSON(t, mux, http.MethodPost, "/fix", seoulFixBody())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["accepted"])
	assert.NotContains(t, out, "area")

	// 低精度同样只是拒绝
	bad := seoulFixBody()
	bad.Accuracy = 80
	bad.Latitude += 0.01
	w, out = doJSON(t, mux, http.MethodPost, "/fix", bad)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["accepted"])
}

func TestFixEndpointErrors(t *testing.T) {
	mux, _ := newTestMux(t)

	// 非 POST
	w, _ := doJSON(t, mux, http.MethodGet, "/fix", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	// 坏请求体
	req := httptest.NewRequest(http.MethodPost, "/fix", bytes.NewReader([]byte("{broken")))
	w2 := httptest.NewRecorder()
	mux.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestStatsAndProfile(t *testing.T) {
	mux, _ := newTestMux(t)
	_, _ = doJSON(t, mux, http.MethodPost, "/fix", seoulFixBody())

	w, out := doJSON(t, mux, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, out["totalAreasExplored"])
	assert.Equal(t, []any{"서울특별시"}, out["regionsCovered"])

	w, out = doJSON(t, mux, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, out["level"])
	xp := out["totalExperiencePoints"].(float64)
	assert.Equal(t, 500-xp, out["experienceToNextLevel"])
}

func TestFogEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	// 视口参数缺一不可
	w, _ := doJSON(t, mux, http.MethodGet, "/fog?centerLat=37.5665&centerLng=126.978", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	const q = "/fog?centerLat=37.5665&centerLng=126.978&latitudeDelta=0.1&longitudeDelta=0.1&screenWidth=400&screenHeight=800"

	// 空集合：全雾
	w, out := doJSON(t, mux, http.MethodGet, q, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["fullFog"])

	_, _ = doJSON(t, mux, http.MethodPost, "/fix", seoulFixBody())
	w, out = doJSON(t, mux, http.MethodGet, q, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["fullFog"])
	assert.Len(t, out["circles"], 1)
	m := out["metrics"].(map[string]any)
	assert.Equal(t, "Low", m["renderingComplexity"])
}

func TestRegionEndpoints(t *testing.T) {
	mux, _ := newTestMux(t)

	w, out := doJSON(t, mux, http.MethodGet, "/regions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["centers"], 17)

	w, out = doJSON(t, mux, http.MethodGet, "/region_of?lat=37.5665&lng=126.978", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["inTerritory"])
	assert.Equal(t, "서울특별시", out["region"])
	require.Contains(t, out, "nearest")

	// 海上点：境外、unknown，但给出最近中心
	w, out = doJSON(t, mux, http.MethodGet, "/region_of?lat=33.0&lng=126.5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["inTerritory"])
	assert.Equal(t, geo.RegionUnknown, out["region"])
	nearest := out["nearest"].(map[string]any)
	assert.Equal(t, "제주특별자치도", nearest["name"])

	w, _ = doJSON(t, mux, http.MethodGet, "/region_of?lat=37.5", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegionCompletionEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)
	_, _ = doJSON(t, mux, http.MethodPost, "/fix", seoulFixBody())

	w, out := doJSON(t, mux, http.MethodGet, "/region_completion?name=서울특별시", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, out["areasExplored"])
	assert.Equal(t, 5.0, out["completionPercentage"])

	w, _ = doJSON(t, mux, http.MethodGet, "/region_completion", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestionsEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	w, _ := doJSON(t, mux, http.MethodGet, "/suggestions?lat=37.5665", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/suggestions?lat=37.5665&lng=126.978", nil)
	w2 := httptest.NewRecorder()
	mux.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "경복궁", got[0]["name"])
}

func TestAreasExportAndReset(t *testing.T) {
	mux, sess := newTestMux(t)
	_, _ = doJSON(t, mux, http.MethodPost, "/fix", seoulFixBody())

	w, out := doJSON(t, mux, http.MethodGet, "/areas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["exploredAreas"], 1)
	require.Contains(t, out, "explorationStats")
	require.Contains(t, out, "exportedAt")

	w, out = doJSON(t, mux, http.MethodDelete, "/areas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["reset"])
	assert.Empty(t, sess.Areas())
}

func TestArchiveTotalsWithoutArchive(t *testing.T) {
	mux, _ := newTestMux(t)
	w, _ := doJSON(t, mux, http.MethodGet, "/archive_totals", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	mux, _ := newTestMux(t)
	w, out := doJSON(t, mux, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["ok"])
}
