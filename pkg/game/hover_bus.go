package game

import "sync"

// HoverInfo 悬停提示内容
type HoverInfo struct {
	Name        string
	Description string
	Category    string // sun / planet / moon / asteroid / kuiper
}

// HoverBus 悬停信息的发布-订阅通道
//
// 只在悬停目标变化时通知订阅者；nil 表示离开。
type HoverBus struct {
	mu          sync.Mutex
	current     *HoverInfo
	subscribers []func(*HoverInfo)
}

// NewHoverBus 创建发布通道
func NewHoverBus() *HoverBus {
	return &HoverBus{}
}

// Subscribe 注册订阅者
func (b *HoverBus) Subscribe(fn func(*HoverInfo)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.subscribers = append(b.subscribers, fn)
	b.mu.Unlock()
}

// Publish 发布当前悬停目标，与上一次相同时不通知
func (b *HoverBus) Publish(info *HoverInfo) {
	b.mu.Lock()
	if sameHover(b.current, info) {
		b.mu.Unlock()
		return
	}
	b.current = info
	subs := make([]func(*HoverInfo), len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(info)
	}
}

// Current 当前悬停目标（可能为 nil）
func (b *HoverBus) Current() *HoverInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Clear 移除全部订阅者并清空当前目标（不通知）
func (b *HoverBus) Clear() {
	b.mu.Lock()
	b.subscribers = nil
	b.current = nil
	b.mu.Unlock()
}

func sameHover(a, b *HoverInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name && a.Category == b.Category
}
