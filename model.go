package gosiegeom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// LoadMeshFile reads a PLY or DXF file, chosen by extension.
func LoadMeshFile(fileName string) (*Mesh3, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file %s: %w", fileName, err)
	}
	defer file.Close()

	var m *Mesh3
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ply":
		m, err = ReadPLY(file)
	case ".dxf":
		m, err = ReadDXF(file)
	default:
		return nil, fmt.Errorf("unsupported mesh file %s", fileName)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing mesh file %s: %w", fileName, err)
	}
	return m, nil
}

// SaveMeshFile writes m as PLY or DXF, chosen by extension.
func SaveMeshFile(m *Mesh3, fileName string) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ply":
		write = m.WritePLY
	case ".dxf":
		write = m.WriteDXF
	default:
		return fmt.Errorf("unsupported mesh file %s", fileName)
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create mesh file %s: %w", fileName, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("error writing mesh file %s: %w", fileName, err)
	}
	return file.Close()
}

// ReadPLY reads an ASCII PLY file with a vertex element holding x, y and z
// properties and an optional face element of vertex index lists. Other
// properties are ignored.
func ReadPLY(reader io.Reader) (*Mesh3, error) {
	scanner := bufio.NewScanner(reader)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("missing ply magic")
	}

	var vertexCount, faceCount int
	var currentElement string
	var vertexProps []string
	var err error

	// header
	done := false
	for !done && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported PLY format %q", strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("invalid element line %q", scanner.Text())
			}
			currentElement = parts[1]
			switch parts[1] {
			case "vertex":
				vertexCount, err = strconv.Atoi(parts[2])
			case "face":
				faceCount, err = strconv.Atoi(parts[2])
			}
			if err != nil {
				return nil, fmt.Errorf("invalid %s count: %w", parts[1], err)
			}
		case "property":
			if currentElement == "vertex" && len(parts) >= 3 {
				vertexProps = append(vertexProps, parts[len(parts)-1])
			}
		case "end_header":
			done = true
		}
	}
	if !done {
		return nil, fmt.Errorf("unexpected end of file in PLY header")
	}

	axis := [3]int{-1, -1, -1}
	for i, name := range vertexProps {
		switch name {
		case "x":
			axis[0] = i
		case "y":
			axis[1] = i
		case "z":
			axis[2] = i
		}
	}
	if axis[0] < 0 || axis[1] < 0 {
		return nil, fmt.Errorf("PLY vertex element has no x/y properties")
	}

	m := NewMesh3()
	// file order is kept even for repeated coordinates so face indices
	// stay valid; the point index then maps to the first copy
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < len(vertexProps) {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		var p mgl64.Vec3
		for a := 0; a < 3; a++ {
			if axis[a] < 0 {
				continue
			}
			if p[a], err = strconv.ParseFloat(parts[axis[a]], 64); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
		}
		m.Points = append(m.Points, p)
		if _, found := m.pointIndex[p]; !found {
			m.pointIndex[p] = len(m.Points) - 1
		}
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 3 || numFaceVerts > len(parts)-1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}
		face := make([]int, numFaceVerts)
		for j := range face {
			if face[j], err = strconv.Atoi(parts[j+1]); err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
		}
		if err := m.AddFaceIndices(face...); err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return m, nil
}

// WritePLY writes the mesh as ASCII PLY.
func (m *Mesh3) WritePLY(w io.Writer) error {
	writer := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment generated by gosiegeom")
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", len(m.Points))
	_, _ = fmt.Fprintln(writer, "property double x")
	_, _ = fmt.Fprintln(writer, "property double y")
	_, _ = fmt.Fprintln(writer, "property double z")
	_, _ = fmt.Fprintf(writer, "element face %d\n", len(m.Faces))
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(writer, "end_header")

	for _, p := range m.Points {
		_, _ = fmt.Fprintf(writer, "%s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	for _, face := range m.Faces {
		_, _ = fmt.Fprintf(writer, "%d", len(face))
		for _, idx := range face {
			_, _ = fmt.Fprintf(writer, " %d", idx)
		}
		_, _ = fmt.Fprintln(writer)
	}
	return writer.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// dxfPair is one group code and its value.
type dxfPair struct {
	code  int
	value string
}

// ReadDXF reads 3DFACE and POINT entities from an ASCII DXF stream. A
// 3DFACE whose fourth corner repeats the third is a triangle. POINT
// entities add points without faces.
func ReadDXF(reader io.Reader) (*Mesh3, error) {
	scanner := bufio.NewScanner(reader)
	line := 0

	readPair := func() (dxfPair, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return dxfPair{}, err
			}
			return dxfPair{}, io.EOF
		}
		line++
		code, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return dxfPair{}, fmt.Errorf("line %d: invalid group code %q: %w", line, scanner.Text(), err)
		}
		if !scanner.Scan() {
			return dxfPair{}, fmt.Errorf("line %d: group code %d without value", line, code)
		}
		line++
		return dxfPair{code: code, value: strings.TrimSpace(scanner.Text())}, nil
	}

	m := NewMesh3()
	var entity string
	var corners [4]mgl64.Vec3

	flush := func() {
		switch entity {
		case "3DFACE":
			n := 4
			if corners[3] == corners[2] {
				n = 3
			}
			m.AddFace(corners[:n]...)
		case "POINT":
			m.AddPoint(corners[0])
		}
		entity, corners = "", [4]mgl64.Vec3{}
	}

	for {
		pair, err := readPair()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading from DXF source: %w", err)
		}
		if pair.code == 0 {
			flush()
			if pair.value == "EOF" {
				break
			}
			entity = pair.value
			continue
		}
		if entity != "3DFACE" && entity != "POINT" {
			continue
		}
		// 10-13 x, 20-23 y, 30-33 z of corners 0-3
		if pair.code < 10 || pair.code > 33 || pair.code%10 > 3 {
			continue
		}
		v, err := strconv.ParseFloat(pair.value, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: could not parse float value %q: %w", line, pair.value, err)
		}
		corners[pair.code%10][pair.code/10-1] = v
	}
	flush()
	return m, nil
}

// WriteDXF writes every face as a 3DFACE entity. Faces with more than four
// corners are fanned into triangles.
func (m *Mesh3) WriteDXF(w io.Writer) error {
	writer := bufio.NewWriter(w)

	// writePair writes a DXF group code and its value.
	writePair := func(code int, value string) {
		_, _ = fmt.Fprintf(writer, "%d\n%s\n", code, value)
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")
	writePair(0, "SECTION")
	writePair(2, "ENTITIES")

	writeFace := func(idx ...int) {
		writePair(0, "3DFACE")
		writePair(8, "0")
		for c := 0; c < 4; c++ {
			// a triangle repeats its third corner
			p := m.Points[idx[min(c, len(idx)-1)]]
			writePair(10+c, formatFloat(p[0]))
			writePair(20+c, formatFloat(p[1]))
			writePair(30+c, formatFloat(p[2]))
		}
	}
	for _, face := range m.Faces {
		if len(face) <= 4 {
			writeFace(face...)
			continue
		}
		for i := 1; i+1 < len(face); i++ {
			writeFace(face[0], face[i], face[i+1])
		}
	}

	writePair(0, "ENDSEC")
	writePair(0, "EOF")
	return writer.Flush()
}
