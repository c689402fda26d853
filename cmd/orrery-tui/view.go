package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

// cellAspect 字符格高宽比：投影时纵向按两倍像素计算，再折回行号
const cellAspect = 2.0

var (
	statusStyle  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	frozenStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Background(tcell.ColorNavy)
	captionStyle = tcell.StyleDefault.Foreground(tcell.ColorLightYellow).Bold(true)
	bannerStyle  = tcell.StyleDefault.Foreground(tcell.ColorLavender).Bold(true)
)

// glyphs 各类天体的字符
var glyphs = map[components.BodyKind]rune{
	components.BodySun:          '@',
	components.BodyPlanet:       'o',
	components.BodyMoon:         '.',
	components.BodyAsteroid:     '·',
	components.BodyKuiperObject: '·',
	components.BodyStar:         '.',
}

// cell 一帧中待绘制的天体
type cell struct {
	col, row int
	depth    float64
	glyph    rune
	style    tcell.Style
}

// overlay 过场覆盖层显示的内容
type overlay struct {
	quote  config.MovieReference
	banner bool
}

// drawFrame 绘制整个终端画面：天体、过场文字、状态栏
func drawFrame(screen tcell.Screen, d *systems.Director, cam *game.PerspectiveCamera, ov overlay) {
	screen.Clear()
	w, h := screen.Size()
	if w <= 0 || h <= 1 {
		screen.Show()
		return
	}

	rows := h - 1
	for _, c := range projectBodies(d, cam, w, rows) {
		screen.SetContent(c.col, c.row, c.glyph, nil, c.style)
	}

	drawOverlay(screen, d, ov, w, rows)
	drawStatus(screen, d, w, h-1)
	screen.Show()
}

// projectBodies 投影所有可见天体，按深度从远到近排序
func projectBodies(d *systems.Director, cam *game.PerspectiveCamera, cols, rows int) []cell {
	em := d.EntityManager()
	layers := d.Layers()
	width, height := float64(cols), float64(rows)*cellAspect

	var cells []cell
	ids := ecs.GetEntitiesWith2[*components.BodyInfoComponent, *components.TransformComponent](em)
	for _, id := range ids {
		info, _ := ecs.GetComponent[*components.BodyInfoComponent](em, id)
		if !layers.IsVisible(systems.LayerForBody(info.Kind)) {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		sx, sy, depth, ok := cam.Project(transform.Position, width, height)
		if !ok {
			continue
		}
		col, row := int(sx), int(sy/cellAspect)
		if col < 0 || row < 0 || col >= cols || row >= rows {
			continue
		}

		glyph := glyphs[info.Kind]
		if info.Kind == components.BodyPlanet && cam.ProjectedRadius(info.Radius, depth, height) > 1.5 {
			glyph = 'O'
		}
		cells = append(cells, cell{
			col:   col,
			row:   row,
			depth: depth,
			glyph: glyph,
			style: tcell.StyleDefault.Foreground(toTCellColor(info.Color)),
		})
	}

	sort.SliceStable(cells, func(i, j int) bool { return cells[i].depth > cells[j].depth })
	return cells
}

// drawOverlay 太阳过场显示台词，银河过场显示横幅
func drawOverlay(screen tcell.Screen, d *systems.Director, ov overlay, cols, rows int) {
	kind := d.ActiveCinematic()
	if kind == "" {
		return
	}
	cs, _ := d.Cinematic(kind)
	state := cs.State()

	mid := rows / 2
	switch kind {
	case config.CinematicSun:
		if !state.CaptionVisible || ov.quote.Quote == "" {
			return
		}
		drawCentered(screen, fmt.Sprintf("\"%s\"", ov.quote.Quote), cols, mid, captionStyle)
		drawCentered(screen, fmt.Sprintf("%s (%d)", ov.quote.Movie, ov.quote.Year), cols, mid+1, captionStyle.Bold(false))
	case config.CinematicMilkyWay:
		if ov.banner && state.ContentAlpha > 0 {
			drawCentered(screen, "~ ~ ~  the Milky Way  ~ ~ ~", cols, mid, bannerStyle)
		}
	}
}

// drawStatus 底部状态栏
func drawStatus(screen tcell.Screen, d *systems.Director, cols, row int) {
	style := statusStyle
	frozen := ""
	if d.IsFrozen() {
		frozen = " [frozen]"
		style = frozenStyle
	}
	rate := fmt.Sprintf("%.1f d/s", d.Clock().Rate())
	if d.Clock().IsPaused() {
		rate = "paused"
	}
	line := fmt.Sprintf(" %s%s | day %.0f | %s | space mode  arrows/z/x move  [ ] rate  p pause  q quit",
		d.Mode(), frozen, d.Clock().Elapsed(), rate)

	runes := []rune(line)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		screen.SetContent(x, row, r, nil, style)
	}
}

// drawCentered 在指定行居中绘制文字（超出宽度时截断）
func drawCentered(screen tcell.Screen, s string, cols, row int, style tcell.Style) {
	runes := []rune(s)
	if len(runes) > cols {
		runes = runes[:cols]
	}
	start := (cols - len(runes)) / 2
	for i, r := range runes {
		screen.SetContent(start+i, row, r, nil, style)
	}
}

func toTCellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
