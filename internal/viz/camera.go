package viz

import (
	"math"

	"github.com/attractorlab/attractor/internal/physics"
)

type vec3 struct {
	X, Y, Z float64
}

// Camera projects points in normalized space onto the canvas with a simple
// perspective divide.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p vec3) vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a normalized 3D point to sub-pixel canvas coordinates.
// The sw and sh arguments are the canvas cell dimensions.
func (c *Camera) Project(p vec3, sw, sh int) (int, int, bool) {
	rot := c.rotate(p)
	rot.X *= c.Zoom
	rot.Y *= c.Zoom
	rot.Z *= c.Zoom

	if rot.Z >= c.Distance-0.1 {
		return 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)

	pw, ph := sw*2, sh*4
	minDim := float64(ph)
	if float64(pw) < minDim {
		minDim = float64(pw)
	}
	pScale := minDim / 3.0

	sx := int(rot.X*scale*pScale) + pw/2
	sy := int(-rot.Y*scale*pScale) + ph/2
	return sx, sy, sx >= 0 && sx < pw && sy >= 0 && sy < ph
}

// normalize maps attractor coordinates into the roughly unit-sized space
// the camera expects. Each attractor lives in a different region, so the
// mapping is per-field.
func normalize(field string, p physics.Vec3) vec3 {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	switch field {
	case "rossler":
		return vec3{x * 0.08, z * 0.04, y * 0.08}
	default: // lorenz
		return vec3{x * 0.04, (z - 25) * 0.04, y * 0.04}
	}
}
