package game

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// mediaLoadConcurrency 同时加载的资源数
const mediaLoadConcurrency = 4

// MediaLoader 按 key 加载资源
type MediaLoader[T any] func(key string) (T, error)

// MediaCache 过场资源缓存
//
// 资源加载失败只记录日志，Get 返回占位值，永远不会让过场中断。
// 未加载完成的 key 同样返回占位值。
type MediaCache[T any] struct {
	mu       sync.RWMutex
	loader   MediaLoader[T]
	fallback T
	entries  map[string]T
	failed   map[string]bool
}

// NewMediaCache 创建缓存
func NewMediaCache[T any](loader MediaLoader[T], fallback T) *MediaCache[T] {
	return &MediaCache[T]{
		loader:   loader,
		fallback: fallback,
		entries:  make(map[string]T),
		failed:   make(map[string]bool),
	}
}

// Init 并发预加载全部 key，阻塞直到完成或 ctx 取消
//
// 单个资源失败不会返回错误；只有 ctx 取消时返回 ctx 的错误。
func (c *MediaCache[T]) Init(ctx context.Context, keys []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(mediaLoadConcurrency)

	for _, key := range keys {
		if key == "" || c.IsReady(key) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.load(key)
			return nil
		})
	}
	return g.Wait()
}

// load 加载单个资源
func (c *MediaCache[T]) load(key string) {
	if c.loader == nil {
		c.markFailed(key)
		return
	}
	value, err := c.loader(key)
	if err != nil {
		log.Printf("[MediaCache] Warning: failed to load %s: %v (using placeholder)", key, err)
		c.markFailed(key)
		return
	}
	c.mu.Lock()
	c.entries[key] = value
	delete(c.failed, key)
	c.mu.Unlock()
}

func (c *MediaCache[T]) markFailed(key string) {
	c.mu.Lock()
	c.failed[key] = true
	c.mu.Unlock()
}

// Get 返回资源，未就绪或失败时返回占位值
func (c *MediaCache[T]) Get(key string) T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.entries[key]; ok {
		return v
	}
	return c.fallback
}

// Lookup 返回资源以及是否为真实资源（false 表示占位值）
func (c *MediaCache[T]) Lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.entries[key]; ok {
		return v, true
	}
	return c.fallback, false
}

// IsReady 资源是否已成功加载
func (c *MediaCache[T]) IsReady(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Failed 资源是否加载失败
func (c *MediaCache[T]) Failed(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failed[key]
}
