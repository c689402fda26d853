package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	cueaudio "github.com/decker502/orrery/internal/audio"
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/metrics"
	"github.com/decker502/orrery/pkg/systems"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 快捷键调整步长
const (
	rateStep      = 2.0  // [ ] 每次乘除的倍数
	minActiveRate = 0.25 // ] 从暂停恢复时的最低速率
	autoSpeedStep = 0.25 // - = 每次调整的自动镜头速度倍率
)

// milkyWayLevels M 键循环的银河亮度
var milkyWayLevels = []float64{0, game.DefaultMilkyWayBrightness, 0.4, 0.8}

// layerKeys 数字键到显示层的映射
var layerKeys = map[ebiten.Key]game.Layer{
	ebiten.Key1: game.LayerSun,
	ebiten.Key2: game.LayerPlanets,
	ebiten.Key3: game.LayerOrbits,
	ebiten.Key4: game.LayerMoons,
	ebiten.Key5: game.LayerAsteroidBelt,
	ebiten.Key6: game.LayerKuiperBelt,
	ebiten.Key7: game.LayerStars,
}

var (
	hudColor         = color.RGBA{R: 0xd8, G: 0xdc, B: 0xe8, A: 0xff}
	hudDimColor      = color.RGBA{R: 0x80, G: 0x88, B: 0xa0, A: 0xff}
	hudFrozenColor   = color.RGBA{R: 0xff, G: 0xb0, B: 0x50, A: 0xff}
	tooltipBack      = color.RGBA{R: 0x10, G: 0x14, B: 0x24, A: 0xd0}
	tooltipBorder    = color.RGBA{R: 0x50, G: 0x60, B: 0x88, A: 0xff}
	captionColor     = color.RGBA{R: 0xff, G: 0xf0, B: 0xc8, A: 0xff}
	silhouetteColor  = color.RGBA{R: 0x08, G: 0x06, B: 0x04, A: 0xff}
	panoramaBase     = color.RGBA{R: 0x14, G: 0x10, B: 0x2c, A: 0xff}
	panoramaBand     = color.RGBA{R: 0xb8, G: 0xb0, B: 0xd8, A: 0x30}
	sunOverlayShadow = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x90}
)

// Resources 太阳系场景的依赖（由 app 创建并注入，在场景重建之间共享）
type Resources struct {
	Settings   *game.SettingsManager
	Audio      *game.AudioManager // 可为 nil（无音效）
	Quotes     *game.QuoteManager
	Media      *game.MediaCache[image.Image] // 可为 nil（全部使用占位图形）
	Camera     *config.CameraConfig
	Cinematics *config.CinematicsConfig
	Bodies     *config.BodiesConfig
}

// MediaKeys 场景可能用到的全部图像资源（供预加载）
func (r *Resources) MediaKeys(refs *config.MovieReferencesConfig) []string {
	var keys []string
	if refs != nil {
		for _, ref := range refs.References {
			if ref.MediaPath != "" {
				keys = append(keys, ref.MediaPath)
			}
		}
	}
	if r.Cinematics != nil {
		for _, cfg := range r.Cinematics.Cinematics {
			if cfg != nil && cfg.MediaKey != "" {
				keys = append(keys, cfg.MediaKey)
			}
		}
	}
	return keys
}

// SolarSystemScene 太阳系主场景
//
// 每帧：输入适配 → 场景快捷键 → Director（镜头/轨道/触发/过场）→ 覆盖层计时 → 悬停拾取。
// 过场开始时选择内容并向过场系统报告内容状态；绘制只读取过场状态。
type SolarSystemScene struct {
	res *Resources

	entityManager *ecs.EntityManager
	camera        *game.PerspectiveCamera
	director      *systems.Director
	inputSystem   *systems.InputSystem
	hoverSystem   *systems.HoverSystem
	renderSystem  *systems.RenderSystem

	hudFace        *text.GoTextFace
	tooltipFace    *text.GoTextFace
	captionFace    *text.GoTextFace
	captionSubFace *text.GoTextFace

	tooltip *game.HoverInfo

	// 过场覆盖层
	quote           config.MovieReference
	overlayTime     float64 // 当前过场播放阶段经过的时间
	panEnded        bool    // 银河全景平移是否已结束
	panoramaPending bool    // 银河全景资源仍在加载
	images          map[string]*ebiten.Image

	keys []ebiten.Key
}

// NewSolarSystemScene 创建太阳系场景
// 参数:
//   - res: 场景依赖，Settings 和 Quotes 不能为 nil
//
// 返回:
//   - *SolarSystemScene: 场景
//   - error: 依赖缺失或配置无效
func NewSolarSystemScene(res *Resources) (*SolarSystemScene, error) {
	if res == nil || res.Settings == nil {
		return nil, fmt.Errorf("settings manager cannot be nil")
	}
	if res.Quotes == nil {
		return nil, fmt.Errorf("quote manager cannot be nil")
	}
	if res.Camera == nil {
		res.Camera = config.DefaultCameraConfig()
	}
	if res.Media == nil {
		res.Media = game.NewMediaCache[image.Image](nil, nil)
	}

	settings := res.Settings.GetSettings()
	em := ecs.NewEntityManager()
	cam := game.NewPerspectiveCamera(res.Camera.InitialPosition, res.Camera.FovDeg)

	director, err := systems.NewDirector(em, cam, systems.DirectorConfig{
		Camera:     res.Camera,
		Cinematics: res.Cinematics,
		Bodies:     res.Bodies,
		TimeRate:   settings.TimeRate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create director: %w", err)
	}

	s := &SolarSystemScene{
		res:            res,
		entityManager:  em,
		camera:         cam,
		director:       director,
		inputSystem:    systems.NewInputSystem(director.Input()),
		hoverSystem:    systems.NewHoverSystem(em, cam, director.Hover()),
		renderSystem:   systems.NewRenderSystem(em, cam),
		hudFace:        newFace(config.HUDFontSize),
		tooltipFace:    newFace(config.TooltipFontSize),
		captionFace:    newFace(config.CaptionFontSize),
		captionSubFace: newFace(config.CaptionSubFontSize),
		images:         make(map[string]*ebiten.Image),
	}

	s.applySettings(settings)

	director.Hover().Subscribe(func(info *game.HoverInfo) { s.tooltip = info })
	director.OnTrigger(s.onCinematicStart)
	director.OnComplete(s.onCinematicComplete)
	director.CameraSystem().OnModeChange(metrics.SetCameraMode)
	metrics.Observe(director)
	metrics.SetCameraMode(director.Mode())

	log.Printf("[SolarSystemScene] Created (%d entities)", em.Count())
	return s, nil
}

// applySettings 把用户设置应用到 Director
func (s *SolarSystemScene) applySettings(settings *game.UserSettings) {
	s.director.Clock().SetRate(settings.TimeRate)
	s.director.SetLayers(settings.Layers)
	cs := s.director.CameraSystem()
	cs.SetAutoSpeedMultiplier(settings.AutoCameraSpeed)
	cs.SetVerticalRange(settings.VerticalMinDeg, settings.VerticalMaxDeg)
}

// Director 返回场景的调度者
func (s *SolarSystemScene) Director() *systems.Director {
	return s.director
}

// Tooltip 当前悬停信息（没有时为 nil）
func (s *SolarSystemScene) Tooltip() *game.HoverInfo {
	return s.tooltip
}

// CurrentQuote 最近一次太阳过场展示的台词
func (s *SolarSystemScene) CurrentQuote() config.MovieReference {
	return s.quote
}

// Update 更新一帧
func (s *SolarSystemScene) Update(deltaTime float64) {
	s.inputSystem.Update()
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.HandleKey(k)
	}
	s.step(deltaTime)
}

// step 不依赖宿主输入的部分
func (s *SolarSystemScene) step(deltaTime float64) {
	s.director.Update(deltaTime)
	metrics.ObserveFrame(deltaTime)
	s.updateOverlay(deltaTime)

	cx, cy := s.inputSystem.Cursor()
	s.hoverSystem.Update(cx, cy, config.GameWindowWidth, config.GameWindowHeight,
		s.director.Layers(), s.director.ActiveCinematic() != "")
}

// HandleKey 处理场景快捷键（镜头按键由 InputSystem 处理）
// 返回是否处理了该按键
func (s *SolarSystemScene) HandleKey(k ebiten.Key) bool {
	if layer, ok := layerKeys[k]; ok {
		visible := s.director.Layers().Toggle(layer)
		log.Printf("[SolarSystemScene] Layer %s visible: %v", layer, visible)
		s.saveSettings()
		return true
	}

	clock := s.director.Clock()
	cs := s.director.CameraSystem()
	switch k {
	case ebiten.KeyBracketLeft:
		s.setTimeRate(clock.Rate() / rateStep)
	case ebiten.KeyBracketRight:
		s.setTimeRate(math.Max(clock.Rate()*rateStep, minActiveRate))
	case ebiten.KeyP:
		clock.TogglePause()
		log.Printf("[SolarSystemScene] Paused: %v", clock.IsPaused())
	case ebiten.KeyMinus:
		s.setAutoSpeed(cs.AutoSpeedMultiplier() - autoSpeedStep)
	case ebiten.KeyEqual:
		s.setAutoSpeed(cs.AutoSpeedMultiplier() + autoSpeedStep)
	case ebiten.KeyM:
		s.cycleMilkyWay()
	default:
		return false
	}
	return true
}

func (s *SolarSystemScene) setTimeRate(rate float64) {
	s.director.Clock().SetRate(rate)
	s.res.Settings.SetTimeRate(s.director.Clock().Rate())
	log.Printf("[SolarSystemScene] Time rate: %.2f days/s", s.director.Clock().Rate())
	s.saveSettings()
}

func (s *SolarSystemScene) setAutoSpeed(multiplier float64) {
	s.res.Settings.SetAutoCameraSpeed(multiplier)
	s.director.CameraSystem().SetAutoSpeedMultiplier(s.res.Settings.GetSettings().AutoCameraSpeed)
	s.saveSettings()
}

// cycleMilkyWay 切换到下一档银河亮度
func (s *SolarSystemScene) cycleMilkyWay() {
	layers := s.director.Layers()
	next := milkyWayLevels[0]
	for _, level := range milkyWayLevels {
		if level > layers.MilkyWay+1e-9 {
			next = level
			break
		}
	}
	layers.SetMilkyWayBrightness(next)
	s.saveSettings()
}

// saveSettings 同步显示层并持久化（失败只记录日志）
func (s *SolarSystemScene) saveSettings() {
	*s.res.Settings.Layers() = *s.director.Layers()
	if err := s.res.Settings.Save(); err != nil {
		log.Printf("[SolarSystemScene] Warning: Failed to save settings: %v", err)
	}
}

// onCinematicStart 过场开始：选择内容、报告内容状态、播放提示音
func (s *SolarSystemScene) onCinematicStart(kind string) {
	cs, ok := s.director.Cinematic(kind)
	if !ok {
		return
	}
	s.overlayTime = 0
	s.panEnded = false
	s.panoramaPending = false

	switch kind {
	case config.CinematicSun:
		s.playCue(cueaudio.CueSunTrigger)
		s.quote = s.res.Quotes.Next()
		cs.SetPayload(s.quote.ID)
		// 剪影缺失时用占位图形，台词总能展示
		cs.NotifyContentLoaded()
		log.Printf("[SolarSystemScene] Showing quote %s (%s)", s.quote.ID, s.quote.Movie)

	case config.CinematicMilkyWay:
		s.playCue(cueaudio.CueMilkyWayTrigger)
		s.reportPanorama(cs)
	}
}

// reportPanorama 根据资源状态通知银河过场；仍在加载时下一帧再检查
func (s *SolarSystemScene) reportPanorama(cs *systems.CinematicSystem) {
	key := cs.Config().MediaKey
	switch {
	case key != "" && s.res.Media.IsReady(key):
		s.panoramaPending = false
		cs.NotifyContentLoaded()
	case key == "" || s.res.Media.Failed(key):
		s.panoramaPending = false
		cs.NotifyContentFailed()
	default:
		s.panoramaPending = true
	}
}

func (s *SolarSystemScene) onCinematicComplete(kind string) {
	s.playCue(cueaudio.CueComplete)
	log.Printf("[SolarSystemScene] Cinematic %s complete", kind)
}

func (s *SolarSystemScene) playCue(cue cueaudio.Cue) {
	if s.res.Audio != nil {
		s.res.Audio.PlayCue(cue)
	}
}

// updateOverlay 推进覆盖层计时；全景平移结束时通知内容结束
func (s *SolarSystemScene) updateOverlay(deltaTime float64) {
	kind := s.director.ActiveCinematic()
	if kind == "" {
		return
	}
	cs, _ := s.director.Cinematic(kind)
	if cs.Phase() == components.CinematicPlaying {
		s.overlayTime += deltaTime
	}

	if kind != config.CinematicMilkyWay {
		return
	}
	if s.panoramaPending {
		s.reportPanorama(cs)
	}
	if !s.panEnded && s.overlayTime >= config.MilkyWayPanSeconds {
		s.panEnded = true
		cs.NotifyContentEnded()
	}
}

// Draw 绘制场景、过场覆盖层、HUD 和提示框
func (s *SolarSystemScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen, s.director.Layers())

	switch kind := s.director.ActiveCinematic(); kind {
	case config.CinematicSun:
		s.drawSunOverlay(screen)
	case config.CinematicMilkyWay:
		s.drawMilkyWayOverlay(screen)
	}

	s.drawHUD(screen)
	if s.tooltip != nil && s.director.ActiveCinematic() == "" {
		s.drawTooltip(screen)
	}
}

// imageFor 把缓存中的图像转换为 ebiten 图像（首次使用时转换）
// 资源未就绪或加载失败时返回 nil
func (s *SolarSystemScene) imageFor(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	if img, ok := s.images[key]; ok {
		return img
	}
	raw, ok := s.res.Media.Lookup(key)
	if !ok || raw == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(raw)
	s.images[key] = img
	return img
}

// drawSunOverlay 太阳过场：压暗画面、剪影运动、台词
func (s *SolarSystemScene) drawSunOverlay(screen *ebiten.Image) {
	cs, _ := s.director.Cinematic(config.CinematicSun)
	state := cs.State()
	alpha := state.ContentAlpha
	if alpha <= 0 {
		return
	}

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	shadow := sunOverlayShadow
	shadow.A = uint8(float64(shadow.A) * alpha)
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), shadow, false)

	progress := s.overlayTime / cs.Config().ContentDuration
	cx, cy := w/2, h/2-60
	angle := 0.0
	switch s.quote.Motion {
	case config.MotionDrift:
		cx += (progress - 0.5) * config.SilhouetteDriftPixels
	default:
		angle = s.overlayTime * config.SilhouetteSpinSpeed
	}

	if img := s.imageFor(s.quote.MediaPath); img != nil {
		b := img.Bounds()
		iw, ih := float64(b.Dx()), float64(b.Dy())
		scale := config.SilhouetteSize / math.Max(iw, ih)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-iw/2, -ih/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Rotate(angle)
		op.GeoM.Translate(cx, cy)
		op.ColorScale.ScaleAlpha(float32(alpha))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	} else {
		drawPlaceholderSilhouette(screen, cx, cy, angle, alpha)
	}

	if state.CaptionVisible {
		y := h - config.CaptionY
		drawText(screen, s.quote.Quote, s.captionFace, w/2, y, captionColor, alpha, text.AlignCenter)
		credit := s.quote.Movie
		if s.quote.Year > 0 {
			credit = fmt.Sprintf("%s (%d)", s.quote.Movie, s.quote.Year)
		}
		drawText(screen, credit, s.captionSubFace, w/2, y+config.CaptionFontSize+10, hudColor, alpha*0.8, text.AlignCenter)
	}
}

// drawPlaceholderSilhouette 剪影图像缺失时的占位图形（细长船体 + 圆形舱段）
func drawPlaceholderSilhouette(screen *ebiten.Image, cx, cy, angle, alpha float64) {
	clr := silhouetteColor
	clr.A = uint8(255 * alpha)
	half := config.SilhouetteSize / 2
	dx, dy := math.Cos(angle)*half, math.Sin(angle)*half
	vector.StrokeLine(screen, float32(cx-dx), float32(cy-dy), float32(cx+dx), float32(cy+dy), 14, clr, true)
	vector.DrawFilledCircle(screen, float32(cx+dx*0.7), float32(cy+dy*0.7), 16, clr, true)
	vector.DrawFilledCircle(screen, float32(cx-dx*0.6), float32(cy-dy*0.6), 10, clr, true)
}

// drawMilkyWayOverlay 银河过场：全景图缓慢平移，缺失时画程序化的星带
func (s *SolarSystemScene) drawMilkyWayOverlay(screen *ebiten.Image) {
	cs, _ := s.director.Cinematic(config.CinematicMilkyWay)
	alpha := cs.State().ContentAlpha
	if alpha <= 0 {
		return
	}

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	pan := math.Min(s.overlayTime/config.MilkyWayPanSeconds, 1) * config.MilkyWayPanPixels

	if img := s.imageFor(cs.Config().MediaKey); img != nil {
		b := img.Bounds()
		iw, ih := float64(b.Dx()), float64(b.Dy())
		// 覆盖整个屏幕并留出平移余量
		scale := math.Max(h/ih, (w+config.MilkyWayPanPixels)/iw)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(-pan, (h-ih*scale)/2)
		op.ColorScale.ScaleAlpha(float32(alpha))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
		return
	}

	base := panoramaBase
	base.A = uint8(255 * alpha)
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), base, false)

	band := panoramaBand
	band.A = uint8(float64(band.A) * alpha)
	for i := 0; i < 6; i++ {
		offset := float64(i-3) * 24
		vector.StrokeLine(screen,
			float32(-pan), float32(h*0.75+offset),
			float32(w+config.MilkyWayPanPixels-pan), float32(h*0.25+offset),
			float32(40-i*5), band, true)
	}
}

// drawHUD 左上角状态和底部按键提示
func (s *SolarSystemScene) drawHUD(screen *ebiten.Image) {
	d := s.director
	clock := d.Clock()
	x, y := config.HUDMarginX, config.HUDMarginY

	modeColor := hudColor
	modeLine := fmt.Sprintf("Camera: %s", d.Mode())
	if d.IsFrozen() {
		modeLine += " (frozen)"
		modeColor = hudFrozenColor
	}
	drawText(screen, modeLine, s.hudFace, x, y, modeColor, 1, text.AlignStart)
	y += config.HUDLineHeight

	timeLine := fmt.Sprintf("Day %.0f    %.2f days/s", clock.Elapsed(), clock.Rate())
	if clock.IsPaused() {
		timeLine = fmt.Sprintf("Day %.0f    paused", clock.Elapsed())
	}
	drawText(screen, timeLine, s.hudFace, x, y, hudColor, 1, text.AlignStart)
	y += config.HUDLineHeight

	speedLine := fmt.Sprintf("Auto camera speed x%.2f", d.CameraSystem().AutoSpeedMultiplier())
	drawText(screen, speedLine, s.hudFace, x, y, hudDimColor, 1, text.AlignStart)

	h := float64(screen.Bounds().Dy())
	help := "Space mode   Arrows/Z/X move   1-7 layers   M milky way   [ ] rate   P pause   - = speed"
	if utils.IsMobile() {
		help = "Drag to orbit   Two fingers to pan"
	}
	drawText(screen, help, s.hudFace, x, h-config.HelpLineY, hudDimColor, 1, text.AlignStart)
}

// drawTooltip 在光标旁显示悬停天体的名称和描述
func (s *SolarSystemScene) drawTooltip(screen *ebiten.Image) {
	info := s.tooltip
	lines := append([]string{info.Name}, wrapText(info.Description, config.TooltipMaxChars)...)

	cx, cy := s.inputSystem.Cursor()
	boxH := float64(len(lines))*config.HUDLineHeight + config.TooltipPadding*2
	x := cx + config.TooltipOffsetX
	y := cy + config.TooltipOffsetY

	// 不超出屏幕
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	if x+config.TooltipWidth > w {
		x = cx - config.TooltipOffsetX - config.TooltipWidth
	}
	if y+boxH > h {
		y = h - boxH
	}

	vector.DrawFilledRect(screen, float32(x), float32(y), config.TooltipWidth, float32(boxH), tooltipBack, false)
	vector.StrokeRect(screen, float32(x), float32(y), config.TooltipWidth, float32(boxH), 1, tooltipBorder, false)

	ty := y + config.TooltipPadding
	for i, line := range lines {
		clr := hudColor
		if i == 0 {
			clr = captionColor
		}
		drawText(screen, line, s.tooltipFace, x+config.TooltipPadding, ty, clr, 1, text.AlignStart)
		ty += config.HUDLineHeight
	}
}

// SaveOnExit 窗口关闭时保存设置
func (s *SolarSystemScene) SaveOnExit() bool {
	s.saveSettings()
	return true
}

// Teardown 场景被替换时取消待执行的过场并保存设置
func (s *SolarSystemScene) Teardown() {
	s.director.Teardown()
	s.saveSettings()
	for key, img := range s.images {
		img.Deallocate()
		delete(s.images, key)
	}
}
