//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 使用 -tags mobile 构建 Android (.aar) 和 iOS (.xcframework) 包：
//
//	make prepare-mobile
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.orrery -o build/android/orrery.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Orrery.xcframework ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/orrery/pkg/app"
	"github.com/decker502/orrery/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	orreryApp, err := app.NewApp(app.Config{
		Verbose: true,
		Storage: app.OpenStorage(app.StorageAppName),
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	mobile.SetGame(orreryApp)
}

// Dummy 空导出函数，确保包被 ebitenmobile 识别
func Dummy() {}
