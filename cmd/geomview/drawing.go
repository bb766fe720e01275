package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// painter receives screen-space polygons. The viewer draws through an
// ebitenPainter; tests record the calls.
type painter interface {
	AddPolygon(xp, yp []float32, clr color.RGBA)
	AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32)
	AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32)
}

type ebitenPainter struct {
	screen *ebiten.Image
}

func (p *ebitenPainter) AddPolygon(xp, yp []float32, clr color.RGBA) {
	fillConvexPolygon(p.screen, xp, yp, clr)
}

func (p *ebitenPainter) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	fillConvexPolygon(p.screen, xp, yp, fillClr)
	drawPolygonOutline(p.screen, xp, yp, strokeWidth, strokeClr)
}

func (p *ebitenPainter) AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32) {
	drawPolygonOutline(p.screen, xp, yp, strokeWidth, clr)
}

// drawSolid paints the triangles in a single color, sampling the solid texel
// of whiteSub.
func drawSolid(screen *ebiten.Image, vertices []ebiten.Vertex, indices []uint16, clr color.RGBA) {
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vertices {
		v := &vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// fillConvexPolygon fans the polygon from its first vertex, so it must be
// convex.
func fillConvexPolygon(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	vertices := make([]ebiten.Vertex, len(xp))
	for i := range xp {
		vertices[i].DstX, vertices[i].DstY = xp[i], yp[i]
	}
	drawSolid(screen, vertices, fanIndices(len(xp)), clr)
}

// fanIndices triangulates a convex polygon of n vertices from vertex 0.
func fanIndices(n int) []uint16 {
	if n < 3 {
		return nil
	}
	indices := make([]uint16, 0, (n-2)*3)
	for i := 2; i < n; i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}
	return indices
}

// drawPolygonOutline strokes the closed loop through the given points.
func drawPolygonOutline(screen *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: strokeWidth})
	drawSolid(screen, vertices, indices, clr)
}
