package viz

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera orbits the origin and projects points onto the canvas plane.
// Points are expected to be normalized to roughly [-1, 1].
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 4, RotX: -0.5, RotY: 0.6, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Rotate applies the camera rotation to p.
func (c *Camera) Rotate(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project maps p to dot coordinates on a w x h dot surface. The boolean
// is false for points behind the camera.
func (c *Camera) Project(p Vec3, w, h int) (int, int, bool) {
	r := c.Rotate(p).Scale(c.Zoom)
	if r.Z >= c.Distance {
		return 0, 0, false
	}
	persp := c.Distance / (c.Distance - r.Z)
	half := float64(min(w, h)) / 2.2
	x := int(math.Round(r.X*persp*half)) + w/2
	y := int(math.Round(-r.Y*persp*half)) + h/2
	return x, y, true
}
