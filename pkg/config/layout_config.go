package config

// 布局配置常量
// 本文件定义了窗口尺寸以及 HUD、提示框、过场覆盖层的位置参数
// 所有坐标使用逻辑屏幕坐标（左上角为原点），与实际窗口大小无关

// 窗口
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 1280
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 720
	// WindowTitle 窗口标题
	WindowTitle = "Orrery"
)

// HUD（左上角状态栏）
const (
	HUDMarginX    = 16.0
	HUDMarginY    = 14.0
	HUDLineHeight = 20.0
	HUDFontSize   = 14.0

	// HelpLineY 底部按键提示的Y坐标（距底边）
	HelpLineY = 28.0
)

// 悬停提示框
const (
	TooltipOffsetX  = 18.0 // 相对光标的偏移
	TooltipOffsetY  = 12.0
	TooltipPadding  = 8.0
	TooltipWidth    = 260.0
	TooltipFontSize = 13.0
	// TooltipMaxChars 描述每行最多字符数（超过后换行）
	TooltipMaxChars = 38
)

// 过场覆盖层
const (
	// CaptionFontSize 太阳过场台词字号
	CaptionFontSize = 26.0
	// CaptionSubFontSize 电影名称字号
	CaptionSubFontSize = 16.0
	// CaptionY 台词基线（距底边）
	CaptionY = 150.0

	// SilhouetteSize 剪影绘制尺寸
	SilhouetteSize = 180.0
	// SilhouetteDriftPixels 漂移运动的水平幅度
	SilhouetteDriftPixels = 220.0
	// SilhouetteSpinSpeed 旋转运动的角速度（弧度/秒）
	SilhouetteSpinSpeed = 0.6

	// MilkyWayPanPixels 银河全景平移距离
	MilkyWayPanPixels = 320.0
	// MilkyWayPanSeconds 全景平移时长，结束后通知内容播放完毕
	MilkyWayPanSeconds = 10.0
)

// 介绍页
const (
	IntroTitleFontSize = 40.0
	IntroBodyFontSize  = 16.0
	IntroLineHeight    = 26.0
)
