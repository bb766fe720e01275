// Command geomview shows the geometry queries interactively: convex hulls,
// Delaunay and constrained triangulations, ear clipping, minimum bounding
// volumes and polygon booleans over a point set.
//
// Usage:
//
//	geomview [-n count] [-seed n] [-mode name] [-mesh file.ply]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/gosiegeom"
)

func parseMode(name string) (sceneMode, error) {
	for m := sceneMode(0); m < modeCount; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", name)
}

func main() {
	count := flag.Int("n", 60, "number of random points")
	seed := flag.Int64("seed", 1, "random seed")
	modeName := flag.String("mode", modeDelaunay.String(), "initial scene")
	meshFile := flag.String("mesh", "", "PLY or DXF file whose vertices replace the random points (z is dropped)")
	verbose := flag.Bool("v", false, "log library debug records")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gosiegeom.SetLogger(logger)

	mode, err := parseMode(*modeName)
	if err != nil {
		slog.Error("bad flag", "err", err)
		os.Exit(2)
	}

	var points []mgl64.Vec2
	if *meshFile != "" {
		m, err := gosiegeom.LoadMeshFile(*meshFile)
		if err != nil {
			slog.Error("load mesh", "err", err)
			os.Exit(1)
		}
		points = m.Points2()
		slog.Info("mesh loaded", "file", *meshFile, "points", len(points), "faces", len(m.Faces))
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("geomview")
	if err := ebiten.RunGame(NewGame(points, *count, *seed, mode)); err != nil {
		slog.Error("viewer stopped", "err", err)
		os.Exit(1)
	}
}
