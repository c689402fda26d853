package game

import (
	"log"

	cueaudio "github.com/decker502/orrery/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音效管理器
// 职责：
//   - 把过场事件对应的合成音效渲染成 PCM 并缓存播放器
//   - 从 SettingsManager 读取音效开关和音量
//
// audioContext 为 nil 时所有播放都是空操作（终端版本和测试使用）。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	players         map[cueaudio.Cue]*audio.Player
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，采样率必须为 cueaudio.SampleRate，可为 nil
//   - sm: 设置管理器，可为 nil（始终以满音量播放）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		players:         make(map[cueaudio.Cue]*audio.Player),
	}
}

// PlayCue 播放音效，返回是否实际播放
func (am *AudioManager) PlayCue(cue cueaudio.Cue) bool {
	if am.audioContext == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getPlayer(cue)
	if player == nil {
		return false
	}

	player.SetVolume(am.volume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind cue %s: %v", cue, err)
	}
	player.Play()
	return true
}

// getPlayer 获取或创建音效播放器（PCM 以满音量渲染，音量由播放器控制）
func (am *AudioManager) getPlayer(cue cueaudio.Cue) *audio.Player {
	if p, ok := am.players[cue]; ok {
		return p
	}
	pcm := cueaudio.RenderPCM16(cueaudio.NewCue(cue, 1))
	if len(pcm) == 0 {
		log.Printf("[AudioManager] Warning: cue %s rendered no samples", cue)
		return nil
	}
	p := am.audioContext.NewPlayerFromBytes(pcm)
	am.players[cue] = p
	return p
}

// volume 当前音效音量
func (am *AudioManager) volume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.GetSettings().SoundVolume
}
