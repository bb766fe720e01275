package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom"
	"golang.org/x/image/vector"
)

const (
	pngSize   = 512
	pngMargin = 16
)

var (
	pngBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pngFill       = color.RGBA{R: 200, G: 220, B: 245, A: 255}
	pngEdge       = color.RGBA{R: 40, G: 80, B: 160, A: 255}
	pngLoop       = color.RGBA{R: 220, G: 60, B: 30, A: 255}
	pngPoint      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

func circleLoop(c gosiegeom.Circle2, n int) []mgl64.Vec2 {
	loop := make([]mgl64.Vec2, n)
	for i := range loop {
		loop[i] = c.Center.Add(gosiegeom.VectorFromAngle(2 * math.Pi * float64(i) / float64(n)).Mul(c.Radius))
	}
	return loop
}

// fitTransform maps the bounding box of d into a size x size image with y
// pointing down.
func fitTransform(d drawing, size int) (mgl64.Mat3, error) {
	all := append([]mgl64.Vec2(nil), d.points...)
	for _, l := range d.loops {
		all = append(all, l...)
	}
	b, err := gosiegeom.NewAlignedBox2(all)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	extent := b.Max.Sub(b.Min)
	scale := float64(size-2*pngMargin) / math.Max(math.Max(extent[0], extent[1]), 1e-9)
	c := b.Center()
	return mgl64.Translate2D(float64(size)/2, float64(size)/2).
		Mul3(mgl64.Scale2D(scale, -scale)).
		Mul3(mgl64.Translate2D(-c[0], -c[1])), nil
}

type canvas struct {
	img *image.RGBA
	m   mgl64.Mat3
	r   *vector.Rasterizer
}

func (c *canvas) at(p mgl64.Vec2) (float32, float32) {
	q := c.m.Mul3x1(p.Vec3(1))
	return float32(q[0]), float32(q[1])
}

func (c *canvas) fill(loop []mgl64.Vec2, clr color.Color) {
	if len(loop) < 3 {
		return
	}
	b := c.img.Bounds()
	c.r.Reset(b.Dx(), b.Dy())
	c.r.MoveTo(c.at(loop[0]))
	for _, p := range loop[1:] {
		c.r.LineTo(c.at(p))
	}
	c.r.ClosePath()
	c.r.Draw(c.img, b, image.NewUniform(clr), image.Point{})
}

// stroke draws each edge of the closed loop as a thin quad in pixel space.
func (c *canvas) stroke(loop []mgl64.Vec2, width float32, clr color.Color) {
	b := c.img.Bounds()
	src := image.NewUniform(clr)
	for i := range loop {
		x0, y0 := c.at(loop[i])
		x1, y1 := c.at(loop[(i+1)%len(loop)])
		dx, dy := x1-x0, y1-y0
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*width/2, dx/l*width/2
		c.r.Reset(b.Dx(), b.Dy())
		c.r.MoveTo(x0+nx, y0+ny)
		c.r.LineTo(x1+nx, y1+ny)
		c.r.LineTo(x1-nx, y1-ny)
		c.r.LineTo(x0-nx, y0-ny)
		c.r.ClosePath()
		c.r.Draw(c.img, b, src, image.Point{})
	}
}

func (c *canvas) dot(p mgl64.Vec2, radius float32, clr color.Color) {
	x, y := c.at(p)
	b := c.img.Bounds()
	c.r.Reset(b.Dx(), b.Dy())
	c.r.MoveTo(x-radius, y-radius)
	c.r.LineTo(x+radius, y-radius)
	c.r.LineTo(x+radius, y+radius)
	c.r.LineTo(x-radius, y+radius)
	c.r.ClosePath()
	c.r.Draw(c.img, b, image.NewUniform(clr), image.Point{})
}

// rasterize paints triangles, then loops, then points.
func rasterize(d drawing, size int) (*image.RGBA, error) {
	m, err := fitTransform(d, size)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(pngBackground), image.Point{}, draw.Src)
	c := &canvas{img: img, m: m, r: vector.NewRasterizer(size, size)}

	for _, t := range d.triangles {
		tri := []mgl64.Vec2{d.points[t[0]], d.points[t[1]], d.points[t[2]]}
		c.fill(tri, pngFill)
		c.stroke(tri, 1, pngEdge)
	}
	for _, l := range d.loops {
		c.stroke(l, 2, pngLoop)
	}
	for _, p := range d.points {
		c.dot(p, 2, pngPoint)
	}
	return img, nil
}

func renderPNG(path string, d drawing, size int) error {
	img, err := rasterize(d, size)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
