package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/gosiegeom"
)

type sceneMode int

const (
	modeHull sceneMode = iota
	modeDelaunay
	modeConstrained
	modeEarClip
	modeBounds
	modeBoolean
	modeCount
)

func (m sceneMode) String() string {
	switch m {
	case modeHull:
		return "convex hull"
	case modeDelaunay:
		return "delaunay"
	case modeConstrained:
		return "constrained delaunay"
	case modeEarClip:
		return "ear clipping"
	case modeBounds:
		return "bounding volumes"
	case modeBoolean:
		return "polygon boolean"
	}
	return "unknown"
}

var (
	pointColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	edgeColor   = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	fillColor   = color.RGBA{R: 30, G: 70, B: 120, A: 255}
	hullColor   = color.RGBA{R: 255, G: 200, B: 40, A: 255}
	boxColor    = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	circleColor = color.RGBA{R: 120, G: 255, B: 120, A: 255}
	inputColor  = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	resultColor = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	resultFill  = color.RGBA{R: 120, G: 60, B: 0, A: 255}
	aabbColor   = color.RGBA{R: 200, G: 120, B: 255, A: 255}
)

const (
	// pointPixels is the half size of a point marker.
	pointPixels  float32 = 2
	circleRounds         = 64
)

// shape is one world-space loop with its style.
type shape struct {
	loop   []mgl64.Vec2
	fill   *color.RGBA
	stroke *color.RGBA
	width  float32
}

// scene is the result of one query, ready to paint.
type scene struct {
	mode   sceneMode
	shapes []shape
	points []mgl64.Vec2
	status string
}

func (s *scene) addTriangles(points []mgl64.Vec2, triangles [][3]int) {
	for _, t := range triangles {
		s.shapes = append(s.shapes, shape{
			loop:   []mgl64.Vec2{points[t[0]], points[t[1]], points[t[2]]},
			fill:   &fillColor,
			stroke: &edgeColor,
			width:  1,
		})
	}
}

func (s *scene) addOutline(loop []mgl64.Vec2, clr *color.RGBA, width float32) {
	s.shapes = append(s.shapes, shape{loop: loop, stroke: clr, width: width})
}

// bounds returns the box holding every point and shape vertex.
func (s *scene) bounds() (gosiegeom.AlignedBox2, error) {
	all := append([]mgl64.Vec2(nil), s.points...)
	for _, sh := range s.shapes {
		all = append(all, sh.loop...)
	}
	return gosiegeom.NewAlignedBox2(all)
}

// paint sends the scene through the camera to p: shapes first, then points
// as small squares on top.
func (s *scene) paint(p painter, cam *camera) {
	for _, sh := range s.shapes {
		xp, yp := cam.project(sh.loop)
		switch {
		case sh.fill != nil && sh.stroke != nil:
			p.AddPolygonAndOutline(xp, yp, *sh.fill, *sh.stroke, sh.width)
		case sh.fill != nil:
			p.AddPolygon(xp, yp, *sh.fill)
		case sh.stroke != nil:
			p.AddOutline(xp, yp, *sh.stroke, sh.width)
		}
	}
	for _, pt := range s.points {
		x, y := cam.toScreen(pt)
		p.AddPolygon(
			[]float32{x - pointPixels, x + pointPixels, x + pointPixels, x - pointPixels},
			[]float32{y - pointPixels, y - pointPixels, y + pointPixels, y + pointPixels},
			pointColor,
		)
	}
}

// randomPoints returns count points on an integer grid of the given half
// size, so duplicates and collinear runs are common.
func randomPoints(seed int64, count int, half int) []mgl64.Vec2 {
	rnd := rand.New(rand.NewSource(seed))
	points := make([]mgl64.Vec2, count)
	for i := range points {
		points[i] = mgl64.Vec2{
			float64(rnd.Intn(2*half+1) - half),
			float64(rnd.Intn(2*half+1) - half),
		}
	}
	return points
}

// starPolygon returns a counterclockwise star with the given number of tips.
// Every vertex lies at least inner from the origin.
func starPolygon(seed int64, tips int, inner, outer float64) []mgl64.Vec2 {
	rnd := rand.New(rand.NewSource(seed))
	loop := make([]mgl64.Vec2, 0, 2*tips)
	for i := 0; i < 2*tips; i++ {
		r := inner + rnd.Float64()*(outer-inner)/4
		if i%2 == 0 {
			r = outer - rnd.Float64()*(outer-inner)/4
		}
		angle := float64(i) * math.Pi / float64(tips)
		loop = append(loop, mgl64.Vec2{math.Round(r * math.Cos(angle)), math.Round(r * math.Sin(angle))})
	}
	return loop
}

func square(centre mgl64.Vec2, half float64) []mgl64.Vec2 {
	return []mgl64.Vec2{
		centre.Add(mgl64.Vec2{-half, -half}),
		centre.Add(mgl64.Vec2{half, -half}),
		centre.Add(mgl64.Vec2{half, half}),
		centre.Add(mgl64.Vec2{-half, half}),
	}
}

func reversed(loop []mgl64.Vec2) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(loop))
	for i, p := range loop {
		out[len(loop)-1-i] = p
	}
	return out
}

func circleLoop(c gosiegeom.Circle2) []mgl64.Vec2 {
	loop := make([]mgl64.Vec2, circleRounds)
	for i := range loop {
		loop[i] = c.Center.Add(gosiegeom.VectorFromAngle(2 * math.Pi * float64(i) / circleRounds).Mul(c.Radius))
	}
	return loop
}

// boolOps are the operations the boolean scene cycles through.
var boolOps = []string{"intersection", "union", "difference", "xor"}

func applyBoolean(op string, a, b *gosiegeom.Polygon2) (*gosiegeom.Polygon2, error) {
	switch op {
	case "intersection":
		return a.Intersection(b), nil
	case "union":
		return a.Union(b), nil
	case "difference":
		return a.Difference(b), nil
	case "xor":
		return a.Xor(b), nil
	}
	return nil, fmt.Errorf("unknown boolean operation %q", op)
}

// buildScene runs the query for mode over points. seed drives the polygons
// used by the polygon modes, and boolOp picks the boolean operation.
func buildScene(mode sceneMode, points []mgl64.Vec2, seed int64, boolOp string) (*scene, error) {
	s := &scene{mode: mode}
	switch mode {
	case modeHull:
		h, err := gosiegeom.ConvexHull2(points)
		if err != nil {
			return nil, err
		}
		s.points = points
		s.addOutline(h.Points(points), &hullColor, 2)
		s.status = fmt.Sprintf("hull vertices %d, dimension %d", len(h.Indices), h.Dimension)

	case modeDelaunay:
		d, err := gosiegeom.NewDelaunay2(points)
		if err != nil {
			return nil, err
		}
		s.points = points
		s.addTriangles(points, d.Triangles())
		s.status = fmt.Sprintf("triangles %d, duplicates %d", len(d.Triangles()), countDuplicates(d.Duplicates()))

	case modeConstrained:
		outer := starPolygon(seed, 9, 120, 240)
		hole := square(mgl64.Vec2{}, 50)
		pt, err := gosiegeom.TriangulatePolygon(outer, [][]mgl64.Vec2{hole})
		if err != nil {
			return nil, err
		}
		s.addTriangles(pt.Points, pt.Triangles)
		s.addOutline(outer, &hullColor, 2)
		s.addOutline(hole, &hullColor, 2)
		s.status = fmt.Sprintf("triangles %d, constraints %d", len(pt.Triangles), len(pt.Delaunay.Constraints()))

	case modeEarClip:
		outer := starPolygon(seed, 9, 120, 240)
		holes := [][]mgl64.Vec2{square(mgl64.Vec2{-40, 0}, 25), square(mgl64.Vec2{40, 0}, 25)}
		tris, err := gosiegeom.TriangulateEC(outer, holes)
		if err != nil {
			return nil, err
		}
		all := append([]mgl64.Vec2(nil), outer...)
		for _, h := range holes {
			all = append(all, h...)
		}
		s.addTriangles(all, tris)
		s.status = fmt.Sprintf("triangles %d", len(tris))

	case modeBounds:
		aabb, err := gosiegeom.NewAlignedBox2(points)
		if err != nil {
			return nil, err
		}
		box, err := gosiegeom.MinAreaBox2(points)
		if err != nil {
			return nil, err
		}
		circle, err := gosiegeom.MinAreaCircle2(points)
		if err != nil {
			return nil, err
		}
		v := box.Vertices()
		s.points = points
		s.addOutline([]mgl64.Vec2{aabb.Min, {aabb.Max[0], aabb.Min[1]}, aabb.Max, {aabb.Min[0], aabb.Max[1]}}, &aabbColor, 1)
		s.addOutline(v[:], &boxColor, 2)
		s.addOutline(circleLoop(circle), &circleColor, 2)
		s.status = fmt.Sprintf("box area %.1f, circle radius %.1f", box.Area(), circle.Radius)

	case modeBoolean:
		a, err := gosiegeom.NewPolygon2(starPolygon(seed, 7, 80, 200))
		if err != nil {
			return nil, err
		}
		b, err := gosiegeom.NewPolygon2(square(mgl64.Vec2{90, 40}, 110), reversed(square(mgl64.Vec2{90, 40}, 40)))
		if err != nil {
			return nil, err
		}
		res, err := applyBoolean(boolOp, a, b)
		if err != nil {
			return nil, err
		}
		loops := res.LoopsFloat64()
		if len(loops) > 0 && res.Area().Sign() > 0 {
			pt, err := gosiegeom.TriangulatePolygon(loops[0], loops[1:])
			if err != nil {
				gosiegeom.Logger().Warn("boolean result fill", "err", err)
			} else {
				for _, t := range pt.Triangles {
					s.shapes = append(s.shapes, shape{
						loop: []mgl64.Vec2{pt.Points[t[0]], pt.Points[t[1]], pt.Points[t[2]]},
						fill: &resultFill,
					})
				}
			}
		}
		for _, loop := range append(a.LoopsFloat64(), b.LoopsFloat64()...) {
			s.addOutline(loop, &inputColor, 1)
		}
		for _, loop := range loops {
			s.addOutline(loop, &resultColor, 2)
		}
		s.status = fmt.Sprintf("%s: area %.1f, loops %d", boolOp, res.Area().F(), len(loops))

	default:
		return nil, fmt.Errorf("unknown scene mode %d", mode)
	}
	return s, nil
}

func countDuplicates(dup []int) int {
	n := 0
	for i, d := range dup {
		if d != i {
			n++
		}
	}
	return n
}
