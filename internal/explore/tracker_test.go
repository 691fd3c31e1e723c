package explore

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fogwalk/internal/geo"
)

// 纯纬度偏移 meters 米后的纬度增量（度）
func latOffset(meters float64) float64 {
	return meters * 180.0 / (math.Pi * geo.EarthRadiusM)
}

func newTestTracker(t *testing.T, seed int64) *Tracker {
	t.Helper()
	return NewTracker(Config{}, geo.NewKorea(),
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(func() time.Time { return time.UnixMilli(1700000000000) }),
		WithIDFunc(func(now time.Time) string { return "area_test" }),
	)
}

func seoulFix(accuracy float64) Fix {
	return Fix{Latitude: 37.5665, Longitude: 126.9780, Accuracy: accuracy, Timestamp: 1700000000000}
}

func TestEvaluateAcceptsFirstFix(t *testing.T) {
	tr := newTestTracker(t, 1)

	area, err := tr.Evaluate(seoulFix(5), nil)
	require.NoError(t, err)
	require.NotNil(t, area)

	assert.Equal(t, "area_test", area.ID)
	assert.Equal(t, 37.5665, area.Center.Latitude)
	assert.Equal(t, 126.9780, area.Center.Longitude)
	assert.Equal(t, DefaultExplorationRadius, area.Radius)
	assert.Equal(t, int64(1700000000000), area.Timestamp)
	assert.Equal(t, 5.0, area.Accuracy)
	assert.Equal(t, "서울특별시", area.RegionInfo.Name)
	assert.Equal(t, "37.5665, 126.9780", area.RegionInfo.Coordinates)
}

func TestEvaluateRejectsLowAccuracy(t *testing.T) {
	tr := newTestTracker(t, 1)

	area, why, err := tr.EvaluateDetailed(seoulFix(50.1), nil)
	require.NoError(t, err)
	assert.Nil(t, area)
	assert.Equal(t, RejectAccuracy, why)

	// 恰好等于阈值仍接受
	area, err = tr.Evaluate(seoulFix(50), nil)
	require.NoError(t, err)
	assert.NotNil(t, area)
}

func TestEvaluateRejectsOutsideTerritory(t *testing.T) {
	tr := newTestTracker(t, 1)

	// 东京
	area, why, err := tr.EvaluateDetailed(Fix{Latitude: 35.6762, Longitude: 139.6503, Accuracy: 5}, nil)
	require.NoError(t, err)
	assert.Nil(t, area)
	assert.Equal(t, RejectOutside, why)
}

func TestEvaluateProximity(t *testing.T) {
	tr := newTestTracker(t, 1)
	first, err := tr.Evaluate(seoulFix(5), nil)
	require.NoError(t, err)
	existing := []AreaRecord{*first}

	// 90 米：过近，拒绝
	near := seoulFix(5)
	near.Latitude += latOffset(90)
	area, why, err := tr.EvaluateDetailed(near, existing)
	require.NoError(t, err)
	assert.Nil(t, area)
	assert.Equal(t, RejectProximity, why)

	// 略超最小间距：接受
	far := seoulFix(5)
	far.Latitude += latOffset(100.01)
	area, err = tr.Evaluate(far, existing)
	require.NoError(t, err)
	assert.NotNil(t, area)

	// 距多个既有区域中任一过近都拒绝
	third := seoulFix(5)
	third.Latitude += latOffset(150)
	area, err = tr.Evaluate(third, append(existing, *area))
	require.NoError(t, err)
	assert.Nil(t, area)
}

func TestEvaluateInvalidCoords(t *testing.T) {
	tr := newTestTracker(t, 1)

	for _, f := range []Fix{
		{Latitude: math.NaN(), Longitude: 126.9780, Accuracy: 5},
		{Latitude: 37.5665, Longitude: math.Inf(1), Accuracy: 5},
	} {
		area, err := tr.Evaluate(f, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, area)
	}
}

func TestEvaluateDoesNotMutateExisting(t *testing.T) {
	tr := newTestTracker(t, 1)
	first, err := tr.Evaluate(seoulFix(5), nil)
	require.NoError(t, err)
	existing := []AreaRecord{*first}
	want := existing[0]

	next := seoulFix(5)
	next.Latitude += latOffset(200)
	_, err = tr.Evaluate(next, existing)
	require.NoError(t, err)

	assert.Len(t, existing, 1)
	assert.Equal(t, want, existing[0])
}

func TestScoreRanges(t *testing.T) {
	// 高精度（≤10）：100+50+[1,50]
	tr := newTestTracker(t, 7)
	for i := 0; i < 50; i++ {
		fix := seoulFix(5)
		fix.Latitude += latOffset(float64(i) * 200)
		area, err := tr.Evaluate(fix, nil)
		require.NoError(t, err)
		require.NotNil(t, area)
		assert.GreaterOrEqual(t, area.ExperiencePoints, 151)
		assert.LessOrEqual(t, area.ExperiencePoints, 200)
	}

	// 中精度（≤20）：100+25+[1,50]
	area, err := newTestTracker(t, 7).Evaluate(seoulFix(15), nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, area.ExperiencePoints, 126)
	assert.LessOrEqual(t, area.ExperiencePoints, 175)

	// 低精度（≤50）：100+[1,50]
	area, err = newTestTracker(t, 7).Evaluate(seoulFix(45), nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, area.ExperiencePoints, 101)
	assert.LessOrEqual(t, area.ExperiencePoints, 150)
}

func TestScoreDeterministicWithSeed(t *testing.T) {
	// 相同种子产生相同经验值（随机源可注入的回归保护）
	a1, err := newTestTracker(t, 42).Evaluate(seoulFix(5), nil)
	require.NoError(t, err)
	a2, err := newTestTracker(t, 42).Evaluate(seoulFix(5), nil)
	require.NoError(t, err)
	assert.Equal(t, a1.ExperiencePoints, a2.ExperiencePoints)

	want := 150 + rand.New(rand.NewSource(42)).Intn(50) + 1
	assert.Equal(t, want, a1.ExperiencePoints)
}

func TestConfigOverrides(t *testing.T) {
	tr := NewTracker(Config{AccuracyThreshold: 10, MinDistance: 1000, ExplorationRadius: 250},
		geo.NewKorea(),
		WithRand(rand.New(rand.NewSource(1))),
	)

	// 自定义精度阈值
	area, why, err := tr.EvaluateDetailed(seoulFix(11), nil)
	require.NoError(t, err)
	assert.Nil(t, area)
	assert.Equal(t, RejectAccuracy, why)

	// 自定义半径
	area, err = tr.Evaluate(seoulFix(5), nil)
	require.NoError(t, err)
	require.NotNil(t, area)
	assert.Equal(t, 250.0, area.Radius)

	// 自定义最小间距：500 米仍拒绝
	next := seoulFix(5)
	next.Latitude += latOffset(500)
	got, err := tr.Evaluate(next, []AreaRecord{*area})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewAreaIDShape(t *testing.T) {
	id := newAreaID(time.UnixMilli(1700000000000))
	assert.Regexp(t, `^area_1700000000000_[0-9a-f-]{8}$`, id)
	assert.NotEqual(t, id, newAreaID(time.UnixMilli(1700000000000)))
}
