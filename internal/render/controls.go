package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	rotateSpeed = 0.005 // radians per pixel
	zoomStep    = 0.9   // distance factor per wheel notch
	maxPoint    = 10
)

// binding maps keys to an action on the viewer state.
type binding struct {
	keys   string
	help   string
	codes  []int32
	action func(v *window)
}

// bindings is also the content of the help panel.
var bindings = []binding{
	{"R", "reset view", []int32{rl.KeyR}, func(v *window) { v.scene.ResetView() }},
	{"W", "toggle wireframe", []int32{rl.KeyW}, func(v *window) { v.scene.Wireframe = !v.scene.Wireframe }},
	{"B", "toggle back faces", []int32{rl.KeyB}, func(v *window) { v.scene.BackFace = !v.scene.BackFace }},
	{"G", "toggle grid", []int32{rl.KeyG}, func(v *window) { v.scene.Grid = !v.scene.Grid }},
	{"+ / -", "point size", []int32{rl.KeyEqual, rl.KeyKpAdd}, func(v *window) {
		v.scene.PointSize = math32.Min(maxPoint, v.scene.PointSize+1)
	}},
	{"", "", []int32{rl.KeyMinus, rl.KeyKpSubtract}, func(v *window) {
		v.scene.PointSize = math32.Max(1, v.scene.PointSize-1)
	}},
	{"F", "toggle FPS and memory", []int32{rl.KeyF}, func(v *window) {
		v.overlay.ShowFPS = !v.overlay.ShowFPS
		v.overlay.ShowMemAlloc = v.overlay.ShowFPS
	}},
	{"H", "toggle help", []int32{rl.KeyH}, func(v *window) { v.overlay.ShowHelp = !v.overlay.ShowHelp }},
	{"L", "toggle log panel", []int32{rl.KeyL}, func(v *window) { v.overlay.ShowLog = !v.overlay.ShowLog }},
	{"Q / Esc", "close", []int32{rl.KeyQ}, func(v *window) { v.quit = true }},
}

// handleInput runs once per frame: key bindings first, then mouse camera control.
func (v *window) handleInput() {
	for _, b := range bindings {
		for _, code := range b.codes {
			if rl.IsKeyPressed(code) {
				b.action(v)
				break
			}
		}
	}

	d := rl.GetMouseDelta()
	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		v.scene.Orbit.Rotate(-d.X*rotateSpeed, d.Y*rotateSpeed)
	case rl.IsMouseButtonDown(rl.MouseButtonRight), rl.IsMouseButtonDown(rl.MouseButtonMiddle):
		h := float32(rl.GetScreenHeight())
		if h > 0 {
			v.scene.Orbit.Pan(-d.X/h, d.Y/h)
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.scene.Orbit.Zoom(math32.Pow(zoomStep, wheel))
	}
}
