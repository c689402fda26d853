package main

import (
	"errors"
	"flag"
	"log"
	"net/http"

	"github.com/decker502/orrery/pkg/app"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/embedded"
	"github.com/decker502/orrery/pkg/metrics"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细日志")
	skipIntro   = flag.Bool("skip-intro", false, "跳过介绍页")
	metricsAddr = flag.String("metrics-addr", "", "Prometheus 指标监听地址（如 :9090），为空时不开启")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	storage := app.OpenStorage(app.StorageAppName)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		SkipIntro: *skipIntro,
		Storage:   storage,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	gameApp.Close()
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}

// serveMetrics 在独立的 HTTP 服务上暴露 /metrics
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	log.Printf("[Main] Serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("[Main] Metrics server stopped: %v", err)
	}
}
