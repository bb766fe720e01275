package gosiegeom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh3 is an indexed polygon mesh. Points are deduplicated on insertion so
// faces sharing a corner share its index.
type Mesh3 struct {
	Points     []mgl64.Vec3
	Faces      [][]int
	pointIndex map[mgl64.Vec3]int
}

func NewMesh3() *Mesh3 {
	return &Mesh3{
		pointIndex: make(map[mgl64.Vec3]int),
	}
}

// AddPoint returns the index of point, adding it when it is new.
func (m *Mesh3) AddPoint(point mgl64.Vec3) int {
	if index, found := m.pointIndex[point]; found {
		return index
	}
	m.Points = append(m.Points, point)
	newIndex := len(m.Points) - 1
	m.pointIndex[point] = newIndex
	return newIndex
}

// AddFace adds a polygon by its corners. Consecutive repeated corners are
// collapsed; a face left with fewer than three corners is skipped and false
// is returned.
func (m *Mesh3) AddFace(corners ...mgl64.Vec3) bool {
	face := make([]int, 0, len(corners))
	for _, c := range corners {
		idx := m.AddPoint(c)
		if len(face) > 0 && face[len(face)-1] == idx {
			continue
		}
		face = append(face, idx)
	}
	if len(face) > 1 && face[0] == face[len(face)-1] {
		face = face[:len(face)-1]
	}
	if len(face) < 3 {
		return false
	}
	m.Faces = append(m.Faces, face)
	return true
}

// AddFaceIndices adds a polygon by point indices.
func (m *Mesh3) AddFaceIndices(face ...int) error {
	if len(face) < 3 {
		return fmt.Errorf("face with %d corners: %w", len(face), ErrDegenerate)
	}
	for _, i := range face {
		if i < 0 || i >= len(m.Points) {
			return fmt.Errorf("face corner %d: %w", i, ErrIndexRange)
		}
	}
	m.Faces = append(m.Faces, append([]int(nil), face...))
	return nil
}

// Copy must also duplicate the point index.
func (m *Mesh3) Copy() *Mesh3 {
	c := NewMesh3()
	c.Points = append([]mgl64.Vec3(nil), m.Points...)
	for key, value := range m.pointIndex {
		c.pointIndex[key] = value
	}
	for _, f := range m.Faces {
		c.Faces = append(c.Faces, append([]int(nil), f...))
	}
	return c
}

// Bounds returns the axis-aligned box of the points.
func (m *Mesh3) Bounds() (AlignedBox3, error) {
	return NewAlignedBox3(m.Points)
}

// Centre moves all points so the center of the bounding box is the origin
// and returns the applied offset.
func (m *Mesh3) Centre() mgl64.Vec3 {
	box, err := m.Bounds()
	if err != nil {
		return mgl64.Vec3{}
	}
	offset := box.Center().Mul(-1)
	m.pointIndex = make(map[mgl64.Vec3]int, len(m.Points))
	for i := range m.Points {
		m.Points[i] = m.Points[i].Add(offset)
		m.pointIndex[m.Points[i]] = i
	}
	return offset
}

// Triangles fans every face into triangles.
func (m *Mesh3) Triangles() [][3]int {
	var out [][3]int
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			out = append(out, [3]int{f[0], f[i], f[i+1]})
		}
	}
	return out
}

// Points2 drops the z coordinate.
func (m *Mesh3) Points2() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(m.Points))
	for i, p := range m.Points {
		out[i] = p.Vec2()
	}
	return out
}

// MeshFromTriangulation embeds a planar triangulation at z = 0. Point
// indices are preserved, so triangles index the same slots in the mesh.
func MeshFromTriangulation(points []mgl64.Vec2, triangles [][3]int) (*Mesh3, error) {
	m := NewMesh3()
	m.Points = make([]mgl64.Vec3, len(points))
	for i, p := range points {
		m.Points[i] = p.Vec3(0)
		if _, found := m.pointIndex[m.Points[i]]; !found {
			m.pointIndex[m.Points[i]] = i
		}
	}
	for _, t := range triangles {
		if err := m.AddFaceIndices(t[0], t[1], t[2]); err != nil {
			return nil, fmt.Errorf("mesh from triangulation: %w", err)
		}
	}
	return m, nil
}
