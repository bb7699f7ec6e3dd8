package render

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
	// Number of log lines drawn in the log panel.
	maxLogLines = 12
	maxLogChars = 160
)

var (
	overlayText    = rl.NewColor(30, 30, 30, 255)
	overlayStatus  = rl.NewColor(20, 140, 20, 255)
	logPanelBg     = rl.NewColor(24, 24, 24, 220)
	logPanelText   = rl.LightGray
	helpPanelBg    = rl.NewColor(245, 245, 245, 230)
	helpPanelFrame = rl.NewColor(160, 160, 160, 255)
)

// Overlay draws the 2D layers on top of the scene: FPS/memory counters, geometry stats,
// the key help panel and the recent log lines. All panels except the stats line start hidden
// unless enabled in the preferences.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowHelp     bool
	ShowLog      bool
	lines        func() []string
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
	statsText    string
}

// NewOverlay returns an overlay. lines, if not nil, supplies the log panel.
func NewOverlay(lines func() []string) *Overlay {
	return &Overlay{lines: lines}
}

// SetStats sets the one-line geometry summary shown top-left.
func (o *Overlay) SetStats(meshes, triangles, clouds, points int) {
	switch {
	case meshes > 0 && clouds > 0:
		o.statsText = fmt.Sprintf("%s triangles, %s points", humanize.Comma(int64(triangles)), humanize.Comma(int64(points)))
	case meshes > 0:
		o.statsText = fmt.Sprintf("%s triangles", humanize.Comma(int64(triangles)))
	case clouds > 0:
		o.statsText = fmt.Sprintf("%s points", humanize.Comma(int64(points)))
	default:
		o.statsText = ""
	}
}

// Draw renders the enabled overlays. Call after the scene in the draw loop.
// Text is only recomputed every updateInterval frames to limit allocations.
func (o *Overlay) Draw() {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if o.ShowFPS && o.lastFpsText == "" {
		update = true
	}
	if o.ShowMemAlloc && o.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	if o.statsText != "" {
		rl.DrawText(o.statsText, padding, padding, fontSize, overlayText)
	}
	if !o.ShowHelp {
		rl.DrawText("H: help", padding, padding+lineHeight, fontSize-4, overlayText)
	}

	y := int32(padding)
	if o.ShowFPS {
		if update {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := rl.MeasureText(o.lastFpsText, fontSize)
		rl.DrawText(o.lastFpsText, screenW-w-padding, y, fontSize, overlayStatus)
		y += lineHeight
	}
	if o.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&o.lastMemStats)
			o.lastMemText = "Mem: " + humanize.IBytes(o.lastMemStats.Alloc)
		}
		w := rl.MeasureText(o.lastMemText, fontSize)
		rl.DrawText(o.lastMemText, screenW-w-padding, y, fontSize, overlayStatus)
	}

	if o.ShowHelp {
		o.drawHelp()
	}
	if o.ShowLog && o.lines != nil {
		o.drawLog(screenW, screenH)
	}
}

func (o *Overlay) drawHelp() {
	x, y := int32(padding), int32(padding+lineHeight)
	n := int32(1)
	for _, b := range bindings {
		if b.keys != "" {
			n++
		}
	}
	h := n*lineHeight + padding
	rl.DrawRectangle(x, y, 420, h, helpPanelBg)
	rl.DrawRectangleLines(x, y, 420, h, helpPanelFrame)
	y += padding / 2
	rl.DrawText("Mouse: left drag orbit, right drag pan, wheel zoom", x+padding/2, y, fontSize-4, overlayText)
	for _, b := range bindings {
		if b.keys == "" {
			continue
		}
		y += lineHeight
		rl.DrawText(b.keys+": "+b.help, x+padding/2, y, fontSize-4, overlayText)
	}
}

// drawLog draws the last maxLogLines log lines at the bottom of the window.
func (o *Overlay) drawLog(screenW, screenH int32) {
	lines := o.lines()
	start := 0
	if len(lines) > maxLogLines {
		start = len(lines) - maxLogLines
	}
	lines = lines[start:]
	h := int32(len(lines))*lineHeight + padding
	top := screenH - h
	rl.DrawRectangle(0, top, screenW, h, logPanelBg)
	for i, line := range lines {
		if len(line) > maxLogChars {
			line = line[:maxLogChars-3] + "..."
		}
		rl.DrawText(line, padding, top+padding/2+int32(i)*lineHeight, fontSize-4, logPanelText)
	}
}
