// Package metrics 暴露运行时诊断指标（Prometheus 格式）
//
// 只记录，不影响模拟。HTTP 端点默认关闭，由 --metrics-addr 开启。
package metrics

import (
	"net/http"

	"github.com/decker502/orrery/pkg/components"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	triggersFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orrery_triggers_fired_total",
			Help: "Total number of cinematic triggers fired.",
		},
		[]string{"kind"},
	)

	cinematicsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orrery_cinematics_completed_total",
			Help: "Total number of cinematics that ran to completion.",
		},
		[]string{"kind"},
	)

	frameSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orrery_frame_seconds",
			Help:    "Frame delta in seconds.",
			Buckets: []float64{0.004, 0.008, 0.0167, 0.025, 0.034, 0.05, 0.1, 0.25},
		},
	)

	cameraManual = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orrery_camera_manual",
			Help: "1 when the camera is in manual mode, 0 in automatic mode.",
		},
	)
)

func init() {
	prometheus.MustRegister(triggersFired)
	prometheus.MustRegister(cinematicsCompleted)
	prometheus.MustRegister(frameSeconds)
	prometheus.MustRegister(cameraManual)
}

// EventSource 过场事件来源（systems.Director 实现）
type EventSource interface {
	OnTrigger(fn func(kind string))
	OnComplete(fn func(kind string))
}

// Observe 订阅过场开始/结束事件并计数
func Observe(src EventSource) {
	src.OnTrigger(func(kind string) {
		triggersFired.WithLabelValues(kind).Inc()
	})
	src.OnComplete(func(kind string) {
		cinematicsCompleted.WithLabelValues(kind).Inc()
	})
}

// ObserveFrame 记录一帧的时间
func ObserveFrame(dt float64) {
	if dt < 0 {
		return
	}
	frameSeconds.Observe(dt)
}

// SetCameraMode 记录当前镜头模式
func SetCameraMode(mode components.CameraMode) {
	if mode == components.CameraModeManual {
		cameraManual.Set(1)
	} else {
		cameraManual.Set(0)
	}
}

// Handler 返回 Prometheus 指标 HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
