// 导出工具：将持久化的发现历史与统计快照合并为单个 JSON 文档输出
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"fogwalk/internal/stats"
	"fogwalk/internal/store"
	"fogwalk/internal/utils"
)

// 背景：与客户端"数据导出"入口等价；统计一律由区域序列重算，忽略可能过期的快照缓存
func main() {
	_ = godotenv.Load(".env")
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

	ctx := context.Background()
	areas, err := st.LoadAreas(ctx)
	if err != nil {
		log.Fatal(err)
	}
	doc := map[string]any{
		"exploredAreas":    areas,
		"explorationStats": stats.Aggregate(areas),
		"exportedAt":       time.Now().UnixMilli(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		log.Fatal(err)
	}
}
