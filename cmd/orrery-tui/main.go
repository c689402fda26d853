// orrery-tui 在终端中运行太阳系视图
//
// 与窗口版本共用同一个 Director：镜头、轨道、距离触发和过场都相同，
// 只有宿主输入和绘制不同。配置使用内置默认值。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	cueaudio "github.com/decker502/orrery/internal/audio"
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = 33 * time.Millisecond // ~30 FPS
	logFile       = "orrery-tui.log"
	soundVolume   = 0.5
)

var (
	verbose = flag.Bool("verbose", false, "把详细日志写入 orrery-tui.log")
	rate    = flag.Float64("rate", game.DefaultTimeRate, "模拟速率（模拟日/秒）")
	mute    = flag.Bool("mute", false, "关闭提示音")
)

// cuePlayer 提示音播放（SpeakerPlayer 实现；测试中替换）
type cuePlayer interface {
	Play(c cueaudio.Cue)
}

// tui 终端前端：把 tcell 事件喂给 Director，并把过场内容报告给过场系统
type tui struct {
	director *systems.Director
	camera   *game.PerspectiveCamera
	hold     *keyHold
	quotes   *game.QuoteManager
	player   cuePlayer

	overlay     overlay
	overlayTime float64
	panEnded    bool
}

// newTUI 创建终端前端
// 参数:
//   - timeRate: 模拟速率
//   - player: 提示音播放器，可为 nil
func newTUI(timeRate float64, player cuePlayer) (*tui, error) {
	camCfg := config.DefaultCameraConfig()
	cam := game.NewPerspectiveCamera(camCfg.InitialPosition, camCfg.FovDeg)

	d, err := systems.NewDirector(ecs.NewEntityManager(), cam, systems.DirectorConfig{
		Camera:   camCfg,
		Bodies:   config.DefaultBodiesConfig(),
		TimeRate: timeRate,
	})
	if err != nil {
		return nil, err
	}
	if timeRate == 0 {
		d.Clock().SetRate(0)
	}

	t := &tui{
		director: d,
		camera:   cam,
		hold:     newKeyHold(d.Input(), holdWindow),
		quotes:   game.NewQuoteManager(nil, nil, nil),
		player:   player,
	}
	d.OnTrigger(t.onTrigger)
	d.OnComplete(func(kind string) {
		t.play(cueaudio.CueComplete)
		log.Printf("[TUI] Cinematic %s complete", kind)
	})
	return t, nil
}

func (t *tui) play(c cueaudio.Cue) {
	if t.player != nil {
		t.player.Play(c)
	}
}

// onTrigger 过场开始：选台词或显示横幅，内容在终端里总是可用
func (t *tui) onTrigger(kind string) {
	cs, ok := t.director.Cinematic(kind)
	if !ok {
		return
	}
	t.overlayTime = 0
	t.panEnded = false

	switch kind {
	case config.CinematicSun:
		t.play(cueaudio.CueSunTrigger)
		t.overlay = overlay{quote: t.quotes.Next()}
		cs.SetPayload(t.overlay.quote.ID)
	case config.CinematicMilkyWay:
		t.play(cueaudio.CueMilkyWayTrigger)
		t.overlay = overlay{banner: true}
	}
	cs.NotifyContentLoaded()
}

// handleEvent 处理一个终端事件，返回是否退出
func (t *tui) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case '[':
				t.director.Clock().SetRate(t.director.Clock().Rate() / 2)
				return false
			case ']':
				t.director.Clock().SetRate(math.Max(t.director.Clock().Rate()*2, 0.25))
				return false
			case 'p', 'P':
				t.director.Clock().TogglePause()
				return false
			}
		}
		t.hold.press(keyCodeFor(ev), now)

	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			t.director.Input().OnWheel(1)
		case ev.Buttons()&tcell.WheelDown != 0:
			t.director.Input().OnWheel(-1)
		}

	case *tcell.EventFocus:
		if !ev.Focused {
			t.hold.releaseAll()
		}
	}
	return false
}

// update 推进一帧
func (t *tui) update(dt float64, now time.Time) {
	t.hold.expire(now)
	t.director.Update(dt)

	kind := t.director.ActiveCinematic()
	if kind != config.CinematicMilkyWay {
		return
	}
	cs, _ := t.director.Cinematic(kind)
	if cs.Phase() == components.CinematicPlaying {
		t.overlayTime += dt
	}
	if !t.panEnded && t.overlayTime >= config.MilkyWayPanSeconds {
		t.panEnded = true
		cs.NotifyContentEnded()
	}
}

// setupLogging 终端占用标准输出，日志只能写文件
func setupLogging(enabled bool) (io.Closer, error) {
	if !enabled {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}

func main() {
	flag.Parse()

	closer, err := setupLogging(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	var player cuePlayer
	if !*mute {
		speakerPlayer := cueaudio.NewSpeakerPlayer(soundVolume)
		if err := speakerPlayer.Initialize(); err != nil {
			// 没有声音也能运行
			log.Printf("[TUI] Audio initialization failed: %v", err)
		} else {
			defer speakerPlayer.Close()
			player = speakerPlayer
		}
	}

	app, err := newTUI(*rate, player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				continue
			}
			if app.handleEvent(ev, time.Now()) {
				app.director.Teardown()
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			app.update(dt, now)
			drawFrame(screen, app.director, app.camera, app.overlay)
		}
	}
}
