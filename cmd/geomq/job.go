package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/smasonuk/gosiegeom"
)

// jobFile is the TOML document read by geomq:
//
//	[[job]]
//	name = "square"
//	op = "delaunay"
//	points = [[0, 0], [4, 0], [4, 4], [0, 4]]
//	png = "square.png"
type jobFile struct {
	// Seed is the default shuffle seed for jobs that set none.
	Seed int64 `toml:"seed"`
	Jobs []job `toml:"job"`
}

type job struct {
	Name string `toml:"name"`
	Op   string `toml:"op"`

	Points [][]float64   `toml:"points"`
	Holes  [][][]float64 `toml:"holes"`
	// Clip is the second operand of a boolean job: an outer loop followed
	// by its holes. Boolean jobs orient both operands' loops, outer
	// counterclockwise and holes clockwise, so the file may use either.
	Clip   [][][]float64 `toml:"clip"`
	BoolOp string        `toml:"boolop"`

	// Input replaces Points with the vertices of a PLY or DXF file.
	Input string `toml:"input"`
	// Output saves triangulation results as a PLY or DXF mesh.
	Output string `toml:"output"`
	PNG    string `toml:"png"`

	Seed  int64 `toml:"seed"`
	Exact bool  `toml:"exact"`
}

// result is one entry of the TOML report written to stdout.
type result struct {
	Name  string `toml:"name"`
	Op    string `toml:"op"`
	Error string `toml:"error,omitempty"`

	Dimension int           `toml:"dimension,omitempty"`
	Indices   []int         `toml:"indices,omitempty"`
	Triangles [][3]int      `toml:"triangles,omitempty"`
	Area      string        `toml:"area,omitempty"`
	Center    []float64     `toml:"center,omitempty"`
	Radius    float64       `toml:"radius,omitempty"`
	Axis      [][]float64   `toml:"axis,omitempty"`
	Extent    []float64     `toml:"extent,omitempty"`
	Loops     [][][]float64 `toml:"loops,omitempty"`
}

type report struct {
	Results []result `toml:"result"`
}

var errUnknownOp = errors.New("unknown op")

func readJobs(r io.Reader) (*jobFile, error) {
	var jf jobFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&jf); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	for i := range jf.Jobs {
		if jf.Jobs[i].Name == "" {
			jf.Jobs[i].Name = fmt.Sprintf("job%d", i+1)
		}
		if jf.Jobs[i].Seed == 0 {
			jf.Jobs[i].Seed = jf.Seed
		}
	}
	return &jf, nil
}

func toVec2(coords [][]float64) ([]mgl64.Vec2, error) {
	out := make([]mgl64.Vec2, len(coords))
	for i, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates, want 2", i, len(c))
		}
		out[i] = mgl64.Vec2{c[0], c[1]}
	}
	return out, nil
}

func toVec3(coords [][]float64) ([]mgl64.Vec3, error) {
	out := make([]mgl64.Vec3, len(coords))
	for i, c := range coords {
		switch len(c) {
		case 2:
			out[i] = mgl64.Vec3{c[0], c[1], 0}
		case 3:
			out[i] = mgl64.Vec3{c[0], c[1], c[2]}
		default:
			return nil, fmt.Errorf("point %d has %d coordinates, want 2 or 3", i, len(c))
		}
	}
	return out, nil
}

func toLoops(loops [][][]float64) ([][]mgl64.Vec2, error) {
	out := make([][]mgl64.Vec2, len(loops))
	for i, l := range loops {
		v, err := toVec2(l)
		if err != nil {
			return nil, fmt.Errorf("loop %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// orientLoops returns copies of loops with the first loop counterclockwise
// and the rest, its holes, clockwise.
func orientLoops(loops [][]mgl64.Vec2) [][]mgl64.Vec2 {
	out := make([][]mgl64.Vec2, len(loops))
	for i, l := range loops {
		out[i] = append([]mgl64.Vec2(nil), l...)
		if ccw := gosiegeom.SignedArea2(l) > 0; ccw != (i == 0) {
			slices.Reverse(out[i])
		}
	}
	return out
}

func fromVec2(points []mgl64.Vec2) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = []float64{p[0], p[1]}
	}
	return out
}

func (j *job) options() []gosiegeom.Option {
	var opts []gosiegeom.Option
	if j.Seed != 0 {
		opts = append(opts, gosiegeom.WithShuffle(j.Seed))
	}
	if j.Exact {
		opts = append(opts, gosiegeom.WithExactOnly())
	}
	return opts
}

// points3 returns the job's points, loading them from Input when set.
func (j *job) points3() ([]mgl64.Vec3, error) {
	if j.Input == "" {
		return toVec3(j.Points)
	}
	m, err := gosiegeom.LoadMeshFile(j.Input)
	if err != nil {
		return nil, err
	}
	return m.Points, nil
}

func (j *job) points2() ([]mgl64.Vec2, error) {
	p3, err := j.points3()
	if err != nil {
		return nil, err
	}
	out := make([]mgl64.Vec2, len(p3))
	for i, p := range p3 {
		out[i] = p.Vec2()
	}
	return out, nil
}

// drawing is what a job hands to the PNG renderer.
type drawing struct {
	points    []mgl64.Vec2
	triangles [][3]int
	loops     [][]mgl64.Vec2
}

// run executes the job. Query failures are reported in the result; the
// returned error is reserved for failures writing the job's files.
func (j *job) run(ctx context.Context) (result, error) {
	res := result{Name: j.Name, Op: j.Op}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	d, err := j.query(&res)
	if err != nil {
		res.Error = err.Error()
		logger.Warn("job failed", "job", j.Name, "op", j.Op, "err", err)
		return res, nil
	}
	if j.Output != "" && len(d.triangles) > 0 {
		m, err := gosiegeom.MeshFromTriangulation(d.points, d.triangles)
		if err != nil {
			return res, fmt.Errorf("job %s: %w", j.Name, err)
		}
		if err := gosiegeom.SaveMeshFile(m, j.Output); err != nil {
			return res, fmt.Errorf("job %s: %w", j.Name, err)
		}
	}
	if j.PNG != "" {
		if err := renderPNG(j.PNG, d, pngSize); err != nil {
			return res, fmt.Errorf("job %s: %w", j.Name, err)
		}
	}
	logger.Info("job done", "job", j.Name, "op", j.Op)
	return res, nil
}

func (j *job) query(res *result) (drawing, error) {
	var d drawing
	switch j.Op {
	case "hull":
		points, err := j.points2()
		if err != nil {
			return d, err
		}
		h, err := gosiegeom.ConvexHull2(points, j.options()...)
		if err != nil {
			return d, err
		}
		res.Dimension, res.Indices = h.Dimension, h.Indices
		d.points, d.loops = points, [][]mgl64.Vec2{h.Points(points)}

	case "delaunay":
		points, err := j.points2()
		if err != nil {
			return d, err
		}
		dt, err := gosiegeom.NewDelaunay2(points, j.options()...)
		if err != nil {
			return d, err
		}
		res.Dimension, res.Triangles, res.Indices = dt.Dimension(), dt.Triangles(), dt.Hull()
		d.points, d.triangles = points, res.Triangles

	case "polygon", "earclip":
		outer, err := toVec2(j.Points)
		if err != nil {
			return d, err
		}
		holes, err := toLoops(j.Holes)
		if err != nil {
			return d, err
		}
		d.points = append([]mgl64.Vec2(nil), outer...)
		for _, h := range holes {
			d.points = append(d.points, h...)
		}
		if j.Op == "polygon" {
			pt, err := gosiegeom.TriangulatePolygon(outer, holes, j.options()...)
			if err != nil {
				return d, err
			}
			res.Triangles = pt.Triangles
		} else {
			tris, err := gosiegeom.TriangulateEC(outer, holes)
			if err != nil {
				return d, err
			}
			res.Triangles = tris
		}
		d.triangles = res.Triangles
		d.loops = append([][]mgl64.Vec2{outer}, holes...)

	case "box":
		points, err := j.points2()
		if err != nil {
			return d, err
		}
		b, err := gosiegeom.MinAreaBox2(points, j.options()...)
		if err != nil {
			return d, err
		}
		v := b.Vertices()
		res.Center = []float64{b.Center[0], b.Center[1]}
		res.Axis = fromVec2(b.Axis[:])
		res.Extent = []float64{b.Extent[0], b.Extent[1]}
		d.points, d.loops = points, [][]mgl64.Vec2{v[:]}

	case "circle":
		points, err := j.points2()
		if err != nil {
			return d, err
		}
		c, err := gosiegeom.MinAreaCircle2(points, j.options()...)
		if err != nil {
			return d, err
		}
		res.Center, res.Radius = []float64{c.Center[0], c.Center[1]}, c.Radius
		d.points, d.loops = points, [][]mgl64.Vec2{circleLoop(c, 96)}

	case "sphere":
		points, err := j.points3()
		if err != nil {
			return d, err
		}
		s, err := gosiegeom.MinVolumeSphere3(points, j.options()...)
		if err != nil {
			return d, err
		}
		res.Center, res.Radius = []float64{s.Center[0], s.Center[1], s.Center[2]}, s.Radius
		for _, p := range points {
			d.points = append(d.points, p.Vec2())
		}
		d.loops = [][]mgl64.Vec2{circleLoop(gosiegeom.Circle2{Center: s.Center.Vec2(), Radius: s.Radius}, 96)}

	case "aabb":
		points, err := j.points3()
		if err != nil {
			return d, err
		}
		b, err := gosiegeom.NewAlignedBox3(points)
		if err != nil {
			return d, err
		}
		c, e := b.Center(), b.Extent()
		res.Center, res.Extent = []float64{c[0], c[1], c[2]}, []float64{e[0], e[1], e[2]}
		for _, p := range points {
			d.points = append(d.points, p.Vec2())
		}
		d.loops = [][]mgl64.Vec2{{
			{b.Min[0], b.Min[1]}, {b.Max[0], b.Min[1]}, {b.Max[0], b.Max[1]}, {b.Min[0], b.Max[1]},
		}}

	case "boolean":
		subject, err := toLoops(append([][][]float64{j.Points}, j.Holes...))
		if err != nil {
			return d, err
		}
		clip, err := toLoops(j.Clip)
		if err != nil {
			return d, err
		}
		if len(clip) == 0 {
			return d, fmt.Errorf("boolean without clip loops: %w", gosiegeom.ErrDegenerate)
		}
		a, err := gosiegeom.NewPolygon2(orientLoops(subject)...)
		if err != nil {
			return d, err
		}
		b, err := gosiegeom.NewPolygon2(orientLoops(clip)...)
		if err != nil {
			return d, err
		}
		var out *gosiegeom.Polygon2
		switch j.BoolOp {
		case "intersection":
			out = a.Intersection(b)
		case "union":
			out = a.Union(b)
		case "difference":
			out = a.Difference(b)
		case "xor":
			out = a.Xor(b)
		default:
			return d, fmt.Errorf("boolean %q: %w", j.BoolOp, errUnknownOp)
		}
		res.Area = out.Area().String()
		d.loops = out.LoopsFloat64()
		for _, l := range d.loops {
			res.Loops = append(res.Loops, fromVec2(l))
		}

	default:
		return d, fmt.Errorf("%q: %w", j.Op, errUnknownOp)
	}
	return d, nil
}
