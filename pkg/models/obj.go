package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/prism/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj %q: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// objParser accumulates position/uv/normal lists while faces are
// assembled into the output mesh.
type objParser struct {
	positions []math3d.Vec3
	uvs       []math3d.Vec2
	normals   []math3d.Vec3

	mesh *Mesh
}

// ParseOBJ parses Wavefront OBJ data from r. Supported lines: v (an
// optional fourth component is ignored), vt, vn, and f in the v, v/t,
// v//n, and v/t/n forms. Unknown data lines are skipped. Negative
// indices resolve from the end of the current list. Faces with more
// than three corners are fan-triangulated. Missing UVs and normals
// stay zero.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	p := &objParser{mesh: NewMesh("")}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p.parsePosition(fields[1:])
		case "vt":
			p.parseUV(fields[1:])
		case "vn":
			p.parseNormal(fields[1:])
		case "f":
			p.parseFace(fields[1:])
		}
		// Everything else (o, g, s, mtllib, usemtl, comments) is skipped.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	p.mesh.CalculateBounds()
	return p.mesh, nil
}

func (p *objParser) parsePosition(args []string) {
	if len(args) < 3 {
		return
	}
	p.positions = append(p.positions, math3d.V3(
		parseFloat(args[0]),
		parseFloat(args[1]),
		parseFloat(args[2]),
	))
}

func (p *objParser) parseUV(args []string) {
	if len(args) < 2 {
		return
	}
	p.uvs = append(p.uvs, math3d.V2(parseFloat(args[0]), parseFloat(args[1])))
}

func (p *objParser) parseNormal(args []string) {
	if len(args) < 3 {
		return
	}
	p.normals = append(p.normals, math3d.V3(
		parseFloat(args[0]),
		parseFloat(args[1]),
		parseFloat(args[2]),
	))
}

// parseFace appends one face, fan-triangulating polygons with more than
// three corners. Corners with out-of-range indices are dropped; if
// fewer than three corners survive, the face is skipped.
func (p *objParser) parseFace(args []string) {
	corners := make([]MeshVertex, 0, len(args))
	for _, arg := range args {
		v, ok := p.parseCorner(arg)
		if !ok {
			continue
		}
		corners = append(corners, v)
	}
	if len(corners) < 3 {
		return
	}

	base := len(p.mesh.Vertices)
	p.mesh.Vertices = append(p.mesh.Vertices, corners...)

	for i := 1; i+1 < len(corners); i++ {
		p.mesh.Faces = append(p.mesh.Faces, Face{
			V: [3]int{base, base + i, base + i + 1},
		})
	}
}

// parseCorner resolves one face corner of the form v, v/t, v//n, or
// v/t/n into a vertex.
func (p *objParser) parseCorner(s string) (MeshVertex, bool) {
	var v MeshVertex

	parts := strings.Split(s, "/")
	pos, ok := resolveIndex(parts[0], len(p.positions))
	if !ok {
		return v, false
	}
	v.Position = p.positions[pos]

	if len(parts) > 1 && parts[1] != "" {
		if t, ok := resolveIndex(parts[1], len(p.uvs)); ok {
			v.UV = p.uvs[t]
		} else {
			return v, false
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if n, ok := resolveIndex(parts[2], len(p.normals)); ok {
			v.Normal = p.normals[n]
		} else {
			return v, false
		}
	}
	return v, true
}

// resolveIndex converts a 1-based OBJ index into a 0-based slice index.
// Negative indices count back from the end of the list.
func resolveIndex(s string, size int) (int, bool) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx == 0 {
		return 0, false
	}
	if idx < 0 {
		idx += size
	} else {
		idx--
	}
	if idx < 0 || idx >= size {
		return 0, false
	}
	return idx, true
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
