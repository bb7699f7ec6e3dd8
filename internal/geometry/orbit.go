package geometry

import "github.com/chewxy/math32"

const (
	maxPitch       = math32.Pi/2 - 0.01
	minDistance    = 1e-3
	fitMargin      = 1.2
	defaultFovyDeg = 45
)

// Orbit is a Y-up camera that circles Target at Distance. With Yaw and Pitch zero the
// eye sits on +Z looking down -Z.
type Orbit struct {
	Target   Vec3
	Yaw      float32 // radians around +Y
	Pitch    float32 // radians above the XZ plane, clamped short of the poles
	Distance float32
	FovyDeg  float32
}

// FitOrbit returns an orbit that frames b: target at the center and distance chosen
// so the bounding sphere fits the vertical field of view with a small margin.
// An empty box frames the unit sphere at the origin.
func FitOrbit(b AABB, fovyDeg float32) Orbit {
	if fovyDeg <= 0 {
		fovyDeg = defaultFovyDeg
	}
	center, radius := Vec3{}, float32(1)
	if !b.IsEmpty() {
		center = b.Center()
		if r := b.Radius(); r > 0 {
			radius = r
		}
	}
	half := fovyDeg * math32.Pi / 360
	return Orbit{
		Target:   center,
		Distance: radius / math32.Sin(half) * fitMargin,
		FovyDeg:  fovyDeg,
	}
}

// Eye returns the camera position.
func (o Orbit) Eye() Vec3 {
	cp := math32.Cos(o.Pitch)
	dir := Vec3{cp * math32.Sin(o.Yaw), math32.Sin(o.Pitch), cp * math32.Cos(o.Yaw)}
	return o.Target.Add(dir.Scale(o.Distance))
}

// Right and Up are the camera's screen axes in world space.
func (o Orbit) Right() Vec3 {
	return Vec3{math32.Cos(o.Yaw), 0, -math32.Sin(o.Yaw)}
}

func (o Orbit) Up() Vec3 {
	fwd, _ := o.Target.Sub(o.Eye()).Normalize()
	up, _ := o.Right().Cross(fwd).Normalize()
	return up
}

// Rotate turns the camera by the given yaw and pitch deltas in radians.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw += dYaw
	o.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, o.Pitch+dPitch))
}

// Zoom scales the distance by factor (< 1 moves closer). Non-positive factors are ignored.
func (o *Orbit) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	o.Distance = math32.Max(minDistance, o.Distance*factor)
}

// Pan moves the target along the screen axes. dx and dy are fractions of the distance.
func (o *Orbit) Pan(dx, dy float32) {
	shift := o.Right().Scale(dx * o.Distance).Add(o.Up().Scale(dy * o.Distance))
	o.Target = o.Target.Add(shift)
}
