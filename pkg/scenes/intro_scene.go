package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// introLines 介绍页正文
var introLines = []string{
	"A frame-driven view of the solar system.",
	"",
	"Space    switch between automatic and manual camera",
	"Arrows    move        Z / X    zoom in / out",
	"Drag    orbit        Right-drag    pan        Wheel    zoom",
	"1-7    toggle layers        M    milky way brightness",
	"[ ]    time rate        P    pause        - / =    camera speed",
	"",
	"Fly close to the Sun, or far beyond Neptune...",
}

var (
	introBackground = color.RGBA{R: 0x04, G: 0x04, B: 0x10, A: 0xff}
	introTitleColor = color.RGBA{R: 0xff, G: 0xd2, B: 0x6a, A: 0xff}
	introTextColor  = color.RGBA{R: 0xd8, G: 0xdc, B: 0xe8, A: 0xff}
	introHintColor  = color.RGBA{R: 0x9a, G: 0xa4, B: 0xc0, A: 0xff}
)

// IntroScene 启动介绍页
//
// 任意键或鼠标点击进入太阳系场景；H 键切换"下次不再显示"。
type IntroScene struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace

	elapsed      float64
	hideNextTime bool
	dismissed    bool

	keys []ebiten.Key
}

// NewIntroScene 创建介绍页
// 参数:
//   - sm: 场景管理器（关闭介绍页时切换到太阳系场景）
//   - settings: 设置管理器，可为 nil（不记录"下次不再显示"）
func NewIntroScene(sm *game.SceneManager, settings *game.SettingsManager) *IntroScene {
	s := &IntroScene{
		sceneManager: sm,
		settings:     settings,
		titleFace:    newFace(config.IntroTitleFontSize),
		bodyFace:     newFace(config.IntroBodyFontSize),
	}
	if settings != nil {
		s.hideNextTime = settings.GetSettings().IntroHidden
	}
	return s
}

// Update 处理按键和点击
func (s *IntroScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	if s.dismissed {
		return
	}

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		if k == ebiten.KeyH {
			s.ToggleHideNextTime()
			continue
		}
		s.Dismiss()
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.Dismiss()
	}
}

// ToggleHideNextTime 切换"下次不再显示"，返回新的值
func (s *IntroScene) ToggleHideNextTime() bool {
	s.hideNextTime = !s.hideNextTime
	log.Printf("[IntroScene] Hide next time: %v", s.hideNextTime)
	return s.hideNextTime
}

// HideNextTime 是否勾选了"下次不再显示"
func (s *IntroScene) HideNextTime() bool {
	return s.hideNextTime
}

// IsDismissed 是否已关闭
func (s *IntroScene) IsDismissed() bool {
	return s.dismissed
}

// Dismiss 关闭介绍页：保存选择并切换到太阳系场景（只生效一次）
func (s *IntroScene) Dismiss() {
	if s.dismissed {
		return
	}
	s.dismissed = true

	if s.settings != nil {
		s.settings.SetIntroHidden(s.hideNextTime)
		if err := s.settings.Save(); err != nil {
			log.Printf("[IntroScene] Warning: Failed to save settings: %v", err)
		}
	}

	if s.sceneManager != nil {
		s.sceneManager.SwitchToNamed(game.SceneSolarSystem)
	}
}

// Draw 绘制标题、按键说明和提示
func (s *IntroScene) Draw(screen *ebiten.Image) {
	screen.Fill(introBackground)

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	cx := w / 2

	y := h*0.22 - config.IntroTitleFontSize
	drawText(screen, "Orrery", s.titleFace, cx, y, introTitleColor, 1, text.AlignCenter)

	y += config.IntroTitleFontSize + config.IntroLineHeight
	for _, line := range introLines {
		drawText(screen, line, s.bodyFace, cx, y, introTextColor, 1, text.AlignCenter)
		y += config.IntroLineHeight
	}

	check := "[ ]"
	if s.hideNextTime {
		check = "[x]"
	}
	y += config.IntroLineHeight
	drawText(screen, check+" H    don't show this again", s.bodyFace, cx, y, introHintColor, 1, text.AlignCenter)

	// 提示文字呼吸闪烁
	pulse := 0.55 + 0.45*math.Sin(s.elapsed*3)
	drawText(screen, "Click or press any key to start", s.bodyFace, cx, h-config.IntroLineHeight*3, introTextColor, pulse, text.AlignCenter)
}
