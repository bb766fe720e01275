package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 640
	screenHeight = 480
	fitMargin    = 24
	zoomStep     = 1.1
)

var background = color.RGBA{R: 12, G: 12, B: 20, A: 255}

type Game struct {
	points []mgl64.Vec2
	seed   int64
	count  int
	mode   sceneMode
	boolOp int

	scene  *scene
	err    error
	camera *camera

	lastX, lastY int
	dragged      bool
}

// NewGame builds the first scene. When points is empty a random set of
// count points is generated from seed.
func NewGame(points []mgl64.Vec2, count int, seed int64, mode sceneMode) *Game {
	g := &Game{
		points: points,
		seed:   seed,
		count:  count,
		mode:   mode,
		camera: newCamera(screenWidth, screenHeight),
	}
	if len(g.points) == 0 {
		g.points = randomPoints(seed, count, 200)
	}
	g.rebuild(true)
	return g
}

// rebuild reruns the current query and optionally refits the camera.
func (g *Game) rebuild(fit bool) {
	g.scene, g.err = buildScene(g.mode, g.points, g.seed, boolOps[g.boolOp])
	if g.err != nil {
		slog.Error("scene failed", "mode", g.mode, "err", g.err)
		return
	}
	slog.Info("scene built", "mode", g.mode, "shapes", len(g.scene.shapes), "status", g.scene.status)
	if !fit {
		return
	}
	if b, err := g.scene.bounds(); err == nil {
		g.camera.fit(b.Min, b.Max, fitMargin)
	}
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.mode = (g.mode + 1) % modeCount
		g.rebuild(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.boolOp = (g.boolOp + 1) % len(boolOps)
		g.rebuild(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.seed++
		g.points = randomPoints(g.seed, g.count, 200)
		g.rebuild(true)
	}

	// drag to pan
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragged = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragged {
		x, y := ebiten.CursorPosition()
		g.camera.pan(float64(x-g.lastX), float64(y-g.lastY))
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragged = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		x, y := ebiten.CursorPosition()
		factor := zoomStep
		if wy < 0 {
			factor = 1 / zoomStep
		}
		g.camera.zoom(factor, float64(x), float64(y))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if g.err != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s: %v", g.mode, g.err))
		return
	}
	g.scene.paint(&ebitenPainter{screen: screen}, g.camera)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %s\nFPS: %0.2f  [space] mode  [b] boolean op  [r] new points",
		g.mode, g.scene.status, ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
