package gosiegeom

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeMesh() *Mesh3 {
	m := NewMesh3()
	c := func(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x, y, z} }
	m.AddFace(c(0, 0, 0), c(0, 1, 0), c(1, 1, 0), c(1, 0, 0))
	m.AddFace(c(0, 0, 1), c(1, 0, 1), c(1, 1, 1), c(0, 1, 1))
	m.AddFace(c(0, 0, 0), c(1, 0, 0), c(1, 0, 1), c(0, 0, 1))
	m.AddFace(c(0, 1, 0), c(0, 1, 1), c(1, 1, 1), c(1, 1, 0))
	m.AddFace(c(0, 0, 0), c(0, 0, 1), c(0, 1, 1), c(0, 1, 0))
	m.AddFace(c(1, 0, 0), c(1, 1, 0), c(1, 1, 1), c(1, 0, 1))
	return m
}

func TestMesh3AddFace(t *testing.T) {
	m := NewMesh3()
	a, b, c := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}

	assert.True(t, m.AddFace(a, b, b, c, a))
	assert.Equal(t, [][]int{{0, 1, 2}}, m.Faces)
	assert.False(t, m.AddFace(a, b, b), "two distinct corners")
	assert.Len(t, m.Points, 3)
	assert.Equal(t, 1, m.AddPoint(b))

	assert.NoError(t, m.AddFaceIndices(2, 1, 0))
	assert.ErrorIs(t, m.AddFaceIndices(0, 1), ErrDegenerate)
	assert.ErrorIs(t, m.AddFaceIndices(0, 1, 3), ErrIndexRange)
	assert.Len(t, m.Faces, 2)
}

func TestMesh3CopyAndCentre(t *testing.T) {
	m := cubeMesh()
	require.Len(t, m.Points, 8)
	require.Len(t, m.Triangles(), 12)

	c := m.Copy()
	offset := c.Centre()
	assert.Equal(t, mgl64.Vec3{-0.5, -0.5, -0.5}, offset)

	box, err := c.Bounds()
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{-0.5, -0.5, -0.5}, box.Min)
	assert.Equal(t, mgl64.Vec3{0.5, 0.5, 0.5}, box.Max)
	assert.Equal(t, 2, c.AddPoint(mgl64.Vec3{0.5, 0.5, -0.5}), "index follows the moved points")

	// the original is untouched
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, m.Points[0])
	assert.Equal(t, 0, m.AddPoint(mgl64.Vec3{0, 0, 0}))
	assert.Equal(t, m.Faces, c.Faces)

	empty := NewMesh3()
	assert.Equal(t, mgl64.Vec3{}, empty.Centre())
}

func TestMeshFromTriangulation(t *testing.T) {
	points := []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	d, err := NewDelaunay2(points)
	require.NoError(t, err)

	m, err := MeshFromTriangulation(points, d.Triangles())
	require.NoError(t, err)
	assert.Len(t, m.Points, 4)
	assert.Len(t, m.Faces, 2)
	assert.Equal(t, points, m.Points2())
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, m.Points[2])

	_, err = MeshFromTriangulation(points, [][3]int{{0, 1, 9}})
	assert.ErrorIs(t, err, ErrIndexRange)
}

func TestPLYRoundTrip(t *testing.T) {
	m := cubeMesh()
	m.AddFace(mgl64.Vec3{0.1, 0.2, 1e-7}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 2, 0})

	var buf bytes.Buffer
	require.NoError(t, m.WritePLY(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "ply\nformat ascii 1.0\n"))

	got, err := ReadPLY(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Points, got.Points)
	assert.Equal(t, m.Faces, got.Faces)
}

func TestReadPLY(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 4
property float z
property float x
property float nx
property float y
element face 1
property list uchar int vertex_indices
end_header
0 0 9 0
0 1 9 0
0 1 9 1
0 1 9 1
3 0 1 2
`
	m, err := ReadPLY(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {1, 1, 0}}, m.Points)
	assert.Equal(t, [][]int{{0, 1, 2}}, m.Faces)
	assert.Equal(t, 2, m.AddPoint(mgl64.Vec3{1, 1, 0}), "repeated points map to the first copy")

	testCases := []struct {
		name string
		src  string
	}{
		{"no magic", "solid\n"},
		{"binary", "ply\nformat binary_little_endian 1.0\nend_header\n"},
		{"no header end", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"no x", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float y\nend_header\n1\n"},
		{"short vertices", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nend_header\n1 2\n"},
		{"bad float", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nend_header\n1 q\n"},
		{"face out of range", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nelement face 1\nend_header\n1 2\n3 0 0 4\n"},
		{"negative face count", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nelement face 1\nend_header\n1 2\n-1\n"},
		{"huge face count", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nelement face 1\nend_header\n1 2\n9223372036854775807 0 0 0\n"},
		{"two corner face", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nelement face 1\nend_header\n1 2\n3 4\n2 0 1\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadPLY(strings.NewReader(tc.src))
			assert.Error(t, err)
		})
	}
}

func TestDXFRoundTrip(t *testing.T) {
	m := cubeMesh()
	pentagon := []mgl64.Vec3{{5, 0, 0}, {6, 0, 0}, {6.5, 1, 0}, {5.5, 2, 0}, {4.5, 1, 0}}
	m.AddFace(pentagon...)

	var buf bytes.Buffer
	require.NoError(t, m.WriteDXF(&buf))
	got, err := ReadDXF(&buf)
	require.NoError(t, err)

	assert.Equal(t, m.Points, got.Points)
	// quads survive, the pentagon comes back as a fan of triangles
	assert.Equal(t, m.Faces[:6], got.Faces[:6])
	assert.Equal(t, [][]int{{8, 9, 10}, {8, 10, 11}, {8, 11, 12}}, got.Faces[6:])
}

func TestReadDXF(t *testing.T) {
	src := strings.Join([]string{
		"0", "SECTION", "2", "ENTITIES",
		"0", "POINT", "8", "0", "10", "7", "20", "8", "30", "9",
		"0", "3DFACE", "8", "0",
		"10", "0", "20", "0", "30", "0",
		"11", "1", "21", "0", "31", "0",
		"12", "0", "22", "1", "32", "0",
		"13", "0", "23", "1", "33", "0",
		"0", "LINE", "10", "5", "20", "5",
		"0", "ENDSEC", "0", "EOF",
	}, "\n")
	m, err := ReadDXF(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []mgl64.Vec3{{7, 8, 9}, {0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, m.Points)
	assert.Equal(t, [][]int{{1, 2, 3}}, m.Faces)

	_, err = ReadDXF(strings.NewReader("0\n3DFACE\n10\nabc\n"))
	assert.Error(t, err)
	_, err = ReadDXF(strings.NewReader("zero\nSECTION\n"))
	assert.Error(t, err)
}

func TestMeshFiles(t *testing.T) {
	dir := t.TempDir()
	m := cubeMesh()
	for _, name := range []string{"cube.ply", "cube.DXF"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, SaveMeshFile(m, path))
			got, err := LoadMeshFile(path)
			require.NoError(t, err)
			assert.Equal(t, m.Points, got.Points)
			assert.Equal(t, m.Faces, got.Faces)
		})
	}

	assert.Error(t, SaveMeshFile(m, filepath.Join(dir, "cube.obj")))
	_, err := LoadMeshFile(filepath.Join(dir, "missing.ply"))
	assert.Error(t, err)
}
