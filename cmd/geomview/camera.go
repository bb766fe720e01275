package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minScale = 1e-3
	maxScale = 1e3
)

// camera maps world coordinates (y up) to screen pixels (y down) and back.
type camera struct {
	centre        mgl64.Vec2
	scale         float64
	width, height int
}

func newCamera(width, height int) *camera {
	return &camera{scale: 1, width: width, height: height}
}

// matrix returns the world to screen transform.
func (c *camera) matrix() mgl64.Mat3 {
	return mgl64.Translate2D(float64(c.width)/2, float64(c.height)/2).
		Mul3(mgl64.Scale2D(c.scale, -c.scale)).
		Mul3(mgl64.Translate2D(-c.centre[0], -c.centre[1]))
}

func (c *camera) toScreen(p mgl64.Vec2) (float32, float32) {
	q := c.matrix().Mul3x1(p.Vec3(1))
	return float32(q[0]), float32(q[1])
}

func (c *camera) toWorld(x, y float64) mgl64.Vec2 {
	q := c.matrix().Inv().Mul3x1(mgl64.Vec3{x, y, 1})
	return q.Vec2()
}

// project converts a loop to the parallel coordinate slices the painter
// takes.
func (c *camera) project(loop []mgl64.Vec2) (xp, yp []float32) {
	xp = make([]float32, len(loop))
	yp = make([]float32, len(loop))
	for i, p := range loop {
		xp[i], yp[i] = c.toScreen(p)
	}
	return xp, yp
}

// pan moves the view by a screen-space drag.
func (c *camera) pan(dx, dy float64) {
	c.centre = c.centre.Sub(mgl64.Vec2{dx / c.scale, -dy / c.scale})
}

// zoom scales the view by factor, keeping the world point under the screen
// position (x, y) fixed.
func (c *camera) zoom(factor, x, y float64) {
	before := c.toWorld(x, y)
	c.scale = math.Max(minScale, math.Min(maxScale, c.scale*factor))
	after := c.toWorld(x, y)
	c.centre = c.centre.Add(before.Sub(after))
}

// fit centres the view on the box [lo, hi] with a margin of pixels on every
// side.
func (c *camera) fit(lo, hi mgl64.Vec2, margin float64) {
	c.centre = lo.Add(hi).Mul(0.5)
	size := hi.Sub(lo)
	sx := (float64(c.width) - 2*margin) / math.Max(size[0], 1e-9)
	sy := (float64(c.height) - 2*margin) / math.Max(size[1], 1e-9)
	c.scale = math.Max(minScale, math.Min(maxScale, math.Min(sx, sy)))
}
