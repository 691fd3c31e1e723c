package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fogwalk_requests_total",
		Help: "Total number of API requests",
	})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fogwalk_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	FixesReceivedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fogwalk_fixes_received_total",
		Help: "Total GPS fixes fed into the tracker",
	})
	FixesAcceptedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fogwalk_fixes_accepted_total",
		Help: "Total fixes accepted as new explored areas",
	})
	FixesRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fogwalk_fixes_rejected_total",
		Help: "Total rejected fixes by reason",
	}, []string{"reason"})
	RenderDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fogwalk_render_duration_ms",
		Help:    "Fog render pipeline duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 20, 50, 100},
	})
	RenderMergedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fogwalk_render_merged_total",
		Help: "Total circles removed by overlap merging",
	})
	StoreLoadErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fogwalk_store_load_errors_total",
		Help: "Total persistence load errors",
	})
	StoreSaveErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fogwalk_store_save_errors_total",
		Help: "Total persistence save errors",
	})
	ArchiveErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fogwalk_archive_errors_total",
		Help: "Total postgres archive errors",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(FixesReceivedTotal)
	prometheus.MustRegister(FixesAcceptedTotal)
	prometheus.MustRegister(FixesRejectedTotal)
	prometheus.MustRegister(RenderDurationMs)
	prometheus.MustRegister(RenderMergedTotal)
	prometheus.MustRegister(StoreLoadErrorsTotal)
	prometheus.MustRegister(StoreSaveErrorsTotal)
	prometheus.MustRegister(ArchiveErrorsTotal)
}

// 文档注释：返回 Prometheus 指标监听器
// 背景：统一暴露注册指标到 /metrics 路径，供 Prometheus 抓取；在主入口挂载。
func Handler() http.Handler { return promhttp.Handler() }
