// check_data 校验 data/ 目录下的配置文件
//
// 用法：
//
//	go run ./cmd/check_data -root .
//
// 逐个加载镜头、过场、天体和台词配置；缺失的媒体文件只报告警告（运行时使用占位图形）。
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/embedded"
)

var root = flag.String("root", ".", "包含 data/ 目录的根路径")

func main() {
	flag.Parse()

	errs, warnings := run(os.DirFS(*root), os.Stdout)
	fmt.Printf("\n%d error(s), %d warning(s)\n", errs, warnings)
	if errs > 0 {
		os.Exit(1)
	}
}

// run 加载全部配置并输出检查结果
// 返回:
//   - errs: 无法加载的配置文件数
//   - warnings: 缺失的媒体文件数
func run(fsys fs.FS, out io.Writer) (errs, warnings int) {
	embedded.Init(fsys)

	check := func(path string, load func() (string, error)) {
		summary, err := load()
		if err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", path, err)
			errs++
			return
		}
		fmt.Fprintf(out, "✓ %s: %s\n", path, summary)
	}

	check(config.CameraConfigPath, func() (string, error) {
		cfg, err := config.LoadCameraConfig(config.CameraConfigPath)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("start mode %s, near %.1f, far %.1f", cfg.StartMode, cfg.NearThreshold, cfg.FarThreshold), nil
	})

	var media []string
	check(config.CinematicsConfigPath, func() (string, error) {
		cfg, err := config.LoadCinematicsConfig(config.CinematicsConfigPath)
		if err != nil {
			return "", err
		}
		for _, c := range cfg.Cinematics {
			if c != nil && c.MediaKey != "" {
				media = append(media, c.MediaKey)
			}
		}
		return fmt.Sprintf("%d cinematics", len(cfg.Cinematics)), nil
	})

	check(config.BodiesConfigPath, func() (string, error) {
		cfg, err := config.LoadBodiesConfig(config.BodiesConfigPath)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d planets", len(cfg.Planets)), nil
	})

	check(config.MovieReferencesPath, func() (string, error) {
		refs, err := config.LoadMovieReferences(config.MovieReferencesPath)
		if err != nil {
			return "", err
		}
		for _, ref := range refs.References {
			if ref.MediaPath != "" {
				media = append(media, ref.MediaPath)
			}
		}
		return fmt.Sprintf("%d quotes", len(refs.References)), nil
	})

	for _, path := range media {
		if !embedded.Exists(path) {
			fmt.Fprintf(out, "! missing media %s (placeholder will be drawn)\n", path)
			warnings++
		}
	}
	return errs, warnings
}
