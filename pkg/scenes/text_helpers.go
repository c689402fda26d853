package scenes

import (
	"bytes"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource
	faceSourceErr  error
)

// loadFaceSource 加载内置字体（Go Regular），只解析一次
func loadFaceSource() (*text.GoTextFaceSource, error) {
	faceSourceOnce.Do(func() {
		faceSource, faceSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if faceSourceErr != nil {
			log.Printf("[Scenes] Warning: Failed to load font: %v (falling back to debug text)", faceSourceErr)
		}
	})
	return faceSource, faceSourceErr
}

// newFace 创建指定字号的字体，字体不可用时返回 nil
func newFace(size float64) *text.GoTextFace {
	src, err := loadFaceSource()
	if err != nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// drawText 绘制一行文字
//
// face 为 nil 时退化为 ebitenutil 调试字体（忽略颜色、透明度和对齐）。
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color, alpha float64, align text.Align) {
	if s == "" || alpha <= 0 {
		return
	}
	if face == nil {
		ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
		return
	}

	// 阴影
	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(x+1, y+1)
	shadowOp.ColorScale.ScaleWithColor(color.Black)
	shadowOp.ColorScale.ScaleAlpha(float32(alpha * 0.6))
	shadowOp.PrimaryAlign = align
	text.Draw(screen, s, face, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.PrimaryAlign = align
	text.Draw(screen, s, face, op)
}

// wrapText 按单词把文字折成每行不超过 maxChars 个字符
// 单个过长的单词独占一行，不截断
func wrapText(s string, maxChars int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if maxChars <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > maxChars {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
