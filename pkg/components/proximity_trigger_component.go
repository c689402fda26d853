package components

// TriggerComparison 距离比较方式
type TriggerComparison int

const (
	// TriggerWithin 距离 <= 阈值时触发（靠近）
	TriggerWithin TriggerComparison = iota
	// TriggerBeyond 距离 >= 阈值时触发（远离）
	TriggerBeyond
)

// Matches 判断距离是否满足条件
func (c TriggerComparison) Matches(distance, threshold float64) bool {
	if c == TriggerBeyond {
		return distance >= threshold
	}
	return distance <= threshold
}

// ProximityTriggerComponent 距离触发器
//
// 每种过场一个实体。距离为镜头到原点的距离。
// 触发器"待命"的条件：没有任何触发器在冷却、没有待确认的延迟、没有正在播放的过场。
// 时间字段都以 Director 的墙钟时间（秒）表示。
type ProximityTriggerComponent struct {
	Kind       string            // 对应的过场类型
	Threshold  float64           // 距离阈值
	Comparison TriggerComparison // 比较方式
	ManualOnly bool              // 只在手动模式下检测

	// ConfirmDelay 命中后的确认延迟（秒）
	// 大于 0 时：命中瞬间冻结镜头，延迟到期后再确认距离并触发
	ConfirmDelay float64

	Pending       bool    // 是否有待确认的延迟
	PendingFireAt float64 // 延迟到期时间
	FrozeCamera   bool    // 本触发器是否冻结了镜头（取消时需要解冻）

	CooldownUntil float64 // 冷却结束时间
	FireCount     int     // 已触发次数
}

// IsCooling 是否处于冷却中
func (p *ProximityTriggerComponent) IsCooling(now float64) bool {
	return now < p.CooldownUntil
}
