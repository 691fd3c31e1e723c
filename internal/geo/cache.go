package geo

import (
	"container/list"
	"sync"
	"time"
)

// 文档注释：行政区归类的进程内 LRU 缓存
// 背景：定位流在短周期内围绕同一地点抖动，缓存可避免对优先级表的重复扫描；TTL 可调。
// 约束：键由调用方构造（geohash prec≈6）；容量满后按最久未用逐出
type regionLRU struct {
	mu   sync.Mutex
	cap  int
	ttl  time.Duration
	lst  *list.List
	dict map[string]*list.Element
}

type regionEntry struct {
	k   string
	v   string
	exp time.Time
}

func newRegionLRU(capacity int, ttlSec int) *regionLRU {
	return &regionLRU{
		cap:  capacity,
		ttl:  time.Duration(ttlSec) * time.Second,
		lst:  list.New(),
		dict: make(map[string]*list.Element),
	}
}

func (c *regionLRU) get(k string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.dict[k]; ok {
		it := e.Value.(regionEntry)
		if time.Now().Before(it.exp) {
			c.lst.MoveToFront(e)
			return it.v, true
		}
		c.lst.Remove(e)
		delete(c.dict, k)
	}
	return "", false
}

func (c *regionLRU) set(k, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.dict[k]; ok {
		e.Value = regionEntry{k: k, v: v, exp: time.Now().Add(c.ttl)}
		c.lst.MoveToFront(e)
		return
	}
	e := c.lst.PushFront(regionEntry{k: k, v: v, exp: time.Now().Add(c.ttl)})
	c.dict[k] = e
	for c.lst.Len() > c.cap {
		back := c.lst.Back()
		if back != nil {
			it := back.Value.(regionEntry)
			delete(c.dict, it.k)
			c.lst.Remove(back)
		}
	}
}
