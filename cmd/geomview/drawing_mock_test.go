package main

import "image/color"

// polygonBatcher records what a scene paints.
type polygonBatcher struct {
	filled   [][2][]float32
	outlined [][2][]float32
	colors   []color.RGBA
}

func (b *polygonBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	b.filled = append(b.filled, [2][]float32{xp, yp})
	b.colors = append(b.colors, clr)
}

func (b *polygonBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.AddPolygon(xp, yp, fillClr)
	b.AddOutline(xp, yp, strokeClr, strokeWidth)
}

func (b *polygonBatcher) AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32) {
	b.outlined = append(b.outlined, [2][]float32{xp, yp})
}
