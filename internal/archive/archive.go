// 包 archive: 提供与 PostgreSQL 的数据访问层，将已接受的发现区域归档并提供总量统计
package archive

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"fogwalk/internal/explore"
)

// Archive: 归档入口，持有连接池；可选能力，未配置 DSN 时整个组件不启用
type Archive struct {
	db *sql.DB
}

// Open: 使用 DSN 打开数据库连接并配置连接池参数
func Open(dsn string) (*Archive, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	return &Archive{db: db}, nil
}

func AttachDB(db *sql.DB) *Archive { return &Archive{db: db} }

// Close: 关闭数据库连接
func (a *Archive) Close() error { return a.db.Close() }

func (a *Archive) DB() *sql.DB { return a.db }

// Ping: 连接可用性探测
func (a *Archive) Ping(ctx context.Context) error { return a.db.PingContext(ctx) }

// 背景：首次运行自动创建归档表与索引，保障后续写入与查询
// 约束：使用 IF NOT EXISTS 避免与既有结构冲突；仅创建最小必需结构
func (a *Archive) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _fog_areas (
            id TEXT PRIMARY KEY,
            lat DOUBLE PRECISION NOT NULL,
            lng DOUBLE PRECISION NOT NULL,
            radius DOUBLE PRECISION NOT NULL,
            ts BIGINT NOT NULL,
            accuracy DOUBLE PRECISION NOT NULL,
            xp INT NOT NULL,
            region TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_fog_areas_ts ON _fog_areas(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_fog_areas_region ON _fog_areas(region)`,
	}
	for _, s := range stmts {
		if _, err := a.db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Append: 追加一条已接受的发现区域
// 约束：按主键幂等，重放同一区域不报错也不重复计数
func (a *Archive) Append(ctx context.Context, area explore.AreaRecord) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO _fog_areas(id, lat, lng, radius, ts, accuracy, xp, region)
         VALUES($1,$2,$3,$4,$5,$6,$7,$8)
         ON CONFLICT (id) DO NOTHING`,
		area.ID, area.Center.Latitude, area.Center.Longitude, area.Radius,
		area.Timestamp, area.Accuracy, area.ExperiencePoints, area.RegionInfo.Name)
	return err
}

// Totals: 归档总量（区域数与累计经验）
type Totals struct {
	Areas int64
	XP    int64
}

func (a *Archive) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := a.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(xp), 0) FROM _fog_areas`).Scan(&t.Areas, &t.XP)
	return t, err
}

// RegionCounts: 按行政区的归档区域数（降序）
func (a *Archive) RegionCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT region, COUNT(*) FROM _fog_areas GROUP BY region ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var region string
		var n int64
		if err := rows.Scan(&region, &n); err != nil {
			return nil, err
		}
		out[region] = n
	}
	return out, rows.Err()
}
