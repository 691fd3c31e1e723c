// 回放工具：将 JSON 定位序列逐点灌入判定会话并落盘，用于离线回灌与数据迁移
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"fogwalk/internal/archive"
	"fogwalk/internal/explore"
	"fogwalk/internal/geo"
	"fogwalk/internal/store"
	"fogwalk/internal/track"
	"fogwalk/internal/utils"
)

// 读取定位文件、串行判定并写入持久化；与在线路径共用同一套会话语义
func main() {
	_ = godotenv.Load(".env")
	path := os.Getenv("FIXES_PATH")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Fatal("usage: replay <fixes.json> (or FIXES_PATH env)")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join("data", "fogwalk")
	}
	var layers []store.Store
	if rc := utils.OpenRedisFromEnv(); rc != nil {
		layers = append(layers, store.NewRedisStore(rc, os.Getenv("REDIS_KEY_PREFIX")))
	}
	layers = append(layers, store.NewFileStore(dataDir))
	st := store.NewChain(layers...)

	var arch *archive.Archive
	if db, err := utils.OpenPostgresFromEnv(); err != nil {
		log.Fatal(err)
	} else if db != nil {
		arch = archive.AttachDB(db)
		if err := arch.EnsureSchema(context.Background()); err != nil {
			log.Fatal(err)
		}
		defer db.Close()
	}

	ctx := context.Background()
	boundary := geo.NewKorea()
	tracker := explore.NewTracker(explore.Config{}, boundary)
	sess, err := track.NewSession(ctx, track.Options{Tracker: tracker, Store: st, Archive: arch})
	if err != nil {
		log.Fatal(err)
	}

	src := &track.FileSource{Path: path}
	ch, err := src.Watch(ctx)
	if err != nil {
		log.Fatal(err)
	}
	var total, accepted int
	for fix := range ch {
		total++
		area, err := sess.Process(ctx, fix)
		if err != nil {
			log.Printf("fix %d skipped: %v", total, err)
			continue
		}
		if area != nil {
			accepted++
		}
	}
	snap := sess.Snapshot()
	log.Printf("replay done: fixes=%d accepted=%d areas=%d xp=%d",
		total, accepted, snap.TotalAreasExplored, snap.TotalExperiencePoints)
}
