// Package render shows geometry in an interactive raylib window.
package render

import (
	"errors"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mesh-viewer/internal/geometry"
	"mesh-viewer/internal/viewconfig"
)

// ErrNothingToDraw is returned when every geometry passed to DrawGeometries is empty.
var ErrNothingToDraw = errors.New("render: nothing to draw")

// Viewer opens one window per DrawGeometries call.
type Viewer struct {
	prefs viewconfig.Prefs
	log   *slog.Logger
	lines func() []string
}

// New returns a Viewer. lines, if not nil, feeds the on-screen log panel (L key).
func New(prefs viewconfig.Prefs, log *slog.Logger, lines func() []string) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	return &Viewer{prefs: prefs, log: log, lines: lines}
}

type window struct {
	scene   *Scene
	overlay *Overlay
	quit    bool
}

// DrawGeometries opens a window titled title, shows geoms and blocks until the user closes it
// (window button, Esc or Q). Must be called from the main goroutine.
func (v *Viewer) DrawGeometries(title string, width, height int, geoms ...geometry.Geometry) error {
	drawable := make([]geometry.Geometry, 0, len(geoms))
	for _, g := range geoms {
		if g != nil && !g.IsEmpty() {
			drawable = append(drawable, g)
		}
	}
	if len(drawable) == 0 {
		return ErrNothingToDraw
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return errors.New("render: failed to open window")
	}
	rl.SetTargetFPS(v.prefs.TargetFPS)

	w := &window{
		scene:   NewScene(v.prefs, drawable),
		overlay: NewOverlay(v.lines),
	}
	defer w.scene.Close()
	w.overlay.ShowFPS = v.prefs.ShowFPS
	w.overlay.ShowMemAlloc = v.prefs.ShowMemAlloc
	w.overlay.SetStats(w.scene.Stats())
	v.log.Debug("Window opened", "title", title, "width", width, "height", height, "geometries", len(drawable))

	bg := toColor(geometry.Vec3(v.prefs.Background))
	for !w.quit && !rl.WindowShouldClose() {
		w.handleInput()

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		w.scene.Draw()
		w.overlay.Draw()
		rl.EndDrawing()
	}
	v.log.Debug("Window closed", "title", title)
	return nil
}
