package game

// DefaultTimeRate 默认模拟速率（模拟日/秒）：地球约 25 秒公转一圈
const DefaultTimeRate = 15.0

// MaxTimeRate 用户可调的最大速率
const MaxTimeRate = 2000.0

// SimClock 模拟时钟
//
// elapsed 以模拟日为单位，只随 Tick 单调增加。
// rate = 0 表示暂停（不是错误）。显示层开关不会影响时钟。
type SimClock struct {
	elapsed  float64
	rate     float64
	lastRate float64 // Pause 前的速率，Resume 时恢复
}

// NewSimClock 创建时钟，负速率视为 0
func NewSimClock(rate float64) *SimClock {
	c := &SimClock{lastRate: DefaultTimeRate}
	c.SetRate(rate)
	return c
}

// Tick 推进时钟：elapsed += dt * rate，负 dt 视为 0
func (c *SimClock) Tick(frameDeltaSeconds float64) {
	if frameDeltaSeconds <= 0 || c.rate == 0 {
		return
	}
	c.elapsed += frameDeltaSeconds * c.rate
}

// Elapsed 已模拟的天数
func (c *SimClock) Elapsed() float64 {
	return c.elapsed
}

// Rate 当前速率（模拟日/秒）
func (c *SimClock) Rate() float64 {
	return c.rate
}

// SetRate 设置速率，限制在 [0, MaxTimeRate]
func (c *SimClock) SetRate(r float64) {
	if r < 0 {
		r = 0
	}
	if r > MaxTimeRate {
		r = MaxTimeRate
	}
	c.rate = r
	if r > 0 {
		c.lastRate = r
	}
}

// IsPaused 速率为 0 即暂停
func (c *SimClock) IsPaused() bool {
	return c.rate == 0
}

// Pause 暂停（记住当前速率）
func (c *SimClock) Pause() {
	if c.rate > 0 {
		c.lastRate = c.rate
	}
	c.rate = 0
}

// Resume 恢复到暂停前的速率
func (c *SimClock) Resume() {
	if c.rate == 0 {
		c.rate = c.lastRate
	}
}

// TogglePause 切换暂停状态
func (c *SimClock) TogglePause() {
	if c.IsPaused() {
		c.Resume()
	} else {
		c.Pause()
	}
}

// Reset 归零已模拟时间，速率不变
func (c *SimClock) Reset() {
	c.elapsed = 0
}
