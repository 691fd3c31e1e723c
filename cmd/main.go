// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"fogwalk/internal/api"
	"fogwalk/internal/archive"
	"fogwalk/internal/explore"
	"fogwalk/internal/fog"
	"fogwalk/internal/geo"
	"fogwalk/internal/logger"
	"fogwalk/internal/metrics"
	"fogwalk/internal/middleware"
	"fogwalk/internal/store"
	"fogwalk/internal/track"
	"fogwalk/internal/utils"
	"fogwalk/internal/version"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	l := logger.Setup()
	l.Debug("log_init_ok")
	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	l.Debug("config_api_base", "base", apiBase)

	// 持久化：Redis 优先、文件兜底的链式存储；两层都可单独关停
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join("data", "fogwalk")
	}
	var layers []store.Store
	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		if err := rc.Ping(context.Background()).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
		layers = append(layers, store.NewRedisStore(rc, os.Getenv("REDIS_KEY_PREFIX")))
	}
	layers = append(layers, store.NewFileStore(dataDir))
	st := store.NewChain(layers...)

	// 归档库（可选）：配置了 PG_HOST 才启用
	var arch *archive.Archive
	if db, err := utils.OpenPostgresFromEnv(); err != nil {
		l.Error("db_open_error", "err", err)
	} else if db != nil {
		if err := db.Ping(); err != nil {
			l.Error("db_ping_error", "err", err)
		} else {
			l.Info("db_ping_ok")
		}
		arch = archive.AttachDB(db)
		if err := arch.EnsureSchema(context.Background()); err != nil {
			l.Error("schema_error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	boundary := geo.NewKorea()
	tracker := explore.NewTracker(explore.Config{}, boundary)
	sess, err := track.NewSession(context.Background(), track.Options{
		Tracker: tracker,
		Store:   st,
		Archive: arch,
	})
	if err != nil {
		l.Error("session_init_error", "err", err)
		os.Exit(1)
	}

	// 可选：启动时从文件回放定位流（演示与回灌）
	if p := os.Getenv("REPLAY_FIXES_PATH"); p != "" {
		interval := 200 * time.Millisecond
		if s := os.Getenv("REPLAY_INTERVAL_MS"); s != "" {
			if d, e := time.ParseDuration(s + "ms"); e == nil {
				interval = d
			}
		}
		src := &track.FileSource{Path: p, Interval: interval}
		if err := sess.Start(context.Background(), src); err != nil {
			l.Error("replay_start_error", "err", err)
		} else {
			l.Info("replay_started", "path", p)
		}
	}

	mux := http.NewServeMux()
	apiMux := api.BuildRoutes(api.Deps{
		Session:  sess,
		Boundary: boundary,
		Fog:      fog.NewEngine(),
		Archive:  arch,
	})
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())

	// NOTE: 向客户端暴露 API 基础路径与构建号，避免硬编码
	mux.HandleFunc("/config.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/javascript; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_, _ = w.Write([]byte("window.__API_BASE__='" + apiBase + "'\n"))
		_, _ = w.Write([]byte("window.__COMMIT_SHA__='" + version.Commit + "'\n"))
	})

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler)
	s := &http.Server{Addr: addr, Handler: handler}

	if os.Getenv("TLS_ENABLE") == "true" {
		certPath := os.Getenv("TLS_CERT_PATH")
		keyPath := os.Getenv("TLS_KEY_PATH")
		if certPath == "" {
			certPath = filepath.Join("data", "certs", "server.crt")
		}
		if keyPath == "" {
			keyPath = filepath.Join("data", "certs", "server.key")
		}
		if err := utils.EnsureSelfSignedCert(certPath, keyPath, "fogwalk.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("serve_https", "addr", addr)
		if err := s.ListenAndServeTLS(certPath, keyPath); err != nil {
			l.Error("serve_error", "err", err)
			os.Exit(1)
		}
		return
	}
	l.Info("serve_http", "addr", addr)
	if err := s.ListenAndServe(); err != nil {
		l.Error("serve_error", "err", err)
		os.Exit(1)
	}
}
