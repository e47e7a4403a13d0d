package export

import (
	"strconv"
	"strings"

	"github.com/MeKo-Tech/vectra/internal/geomfix"
	"github.com/MeKo-Tech/vectra/internal/utils"
)

// DXF group codes and fixed values for the AutoCAD 2000 exchange format.
const (
	dxfVersion    = "AC1015"
	dxfHandleSeed = "FFFF"

	// AutoCAD color indices for the two layers.
	colorDetail = 7
	colorFill   = 1

	// HATCH boundary path type flags.
	pathExternal = 2
	pathInternal = 16
)

// DXFOptions configures the exchange writer.
type DXFOptions struct {
	// Fill adds one SOLID HATCH entity per polygon on the fill layer.
	Fill bool
}

// GenerateDXF writes a complete AutoCAD-2000 compatible exchange file:
// HEADER (version, handle seed, metric measurement), TABLES (the two fixed
// layers, declared regardless of the fill flag), ENTITIES (closed
// LWPOLYLINEs, optional HATCHes) and the OBJECTS/EOF footer.
func GenerateDXF(polygons []geomfix.Polygon, opts DXFOptions) string {
	var b strings.Builder
	writeHeader(&b)
	writeTables(&b)
	tag(&b, 0, "SECTION")
	tag(&b, 2, "ENTITIES")
	writeEntities(&b, polygons, opts)
	tag(&b, 0, "ENDSEC")
	writeFooter(&b)
	return b.String()
}

// GenerateDXFEntities is the reduced writer variant: it emits only the
// entity records, with no header, tables or footer. The entity rules are
// identical to the full writer, so the output is a strict subset of it.
func GenerateDXFEntities(polygons []geomfix.Polygon, opts DXFOptions) string {
	var b strings.Builder
	writeEntities(&b, polygons, opts)
	return b.String()
}

func writeHeader(b *strings.Builder) {
	tag(b, 0, "SECTION")
	tag(b, 2, "HEADER")
	tag(b, 9, "$ACADVER")
	tag(b, 1, dxfVersion)
	tag(b, 9, "$HANDSEED")
	tag(b, 5, dxfHandleSeed)
	tag(b, 9, "$MEASUREMENT")
	tag(b, 70, "1")
	tag(b, 0, "ENDSEC")
}

func writeTables(b *strings.Builder) {
	tag(b, 0, "SECTION")
	tag(b, 2, "TABLES")
	tag(b, 0, "TABLE")
	tag(b, 2, "LAYER")
	tag(b, 70, "2")
	writeLayer(b, LayerDetail, colorDetail)
	writeLayer(b, LayerFill, colorFill)
	tag(b, 0, "ENDTAB")
	tag(b, 0, "ENDSEC")
}

func writeLayer(b *strings.Builder, name string, color int) {
	tag(b, 0, "LAYER")
	tag(b, 2, name)
	tag(b, 70, "0")
	tag(b, 62, strconv.Itoa(color))
	tag(b, 6, "CONTINUOUS")
}

func writeEntities(b *strings.Builder, polygons []geomfix.Polygon, opts DXFOptions) {
	for _, p := range polygons {
		writePolyline(b, p.Exterior)
		for _, h := range p.Holes {
			writePolyline(b, h)
		}
		if opts.Fill {
			writeHatch(b, p)
		}
	}
}

// writePolyline emits a closed LWPOLYLINE on the detail layer with an
// explicit vertex count and the closed flag set.
func writePolyline(b *strings.Builder, ring []utils.Point) {
	pts := openRing(ring)
	if len(pts) == 0 {
		return
	}
	tag(b, 0, "LWPOLYLINE")
	tag(b, 8, LayerDetail)
	tag(b, 90, strconv.Itoa(len(pts)))
	tag(b, 70, "1")
	for _, p := range pts {
		tag(b, 10, formatCoord(p.X))
		tag(b, 20, formatCoord(p.Y))
	}
}

// writeHatch emits one SOLID HATCH on the fill layer with one boundary
// path per ring: the exterior flagged external (2), each hole internal
// (16), and the boundary-path count set to 1 + hole count.
func writeHatch(b *strings.Builder, p geomfix.Polygon) {
	tag(b, 0, "HATCH")
	tag(b, 8, LayerFill)
	tag(b, 2, "SOLID")
	tag(b, 70, "1")
	tag(b, 71, "0")
	tag(b, 91, strconv.Itoa(1+len(p.Holes)))
	writeBoundaryPath(b, p.Exterior, pathExternal)
	for _, h := range p.Holes {
		writeBoundaryPath(b, h, pathInternal)
	}
	tag(b, 75, "0")
	tag(b, 98, "0")
}

func writeBoundaryPath(b *strings.Builder, ring []utils.Point, flag int) {
	pts := openRing(ring)
	tag(b, 92, strconv.Itoa(flag))
	tag(b, 93, strconv.Itoa(len(pts)))
	for _, p := range pts {
		tag(b, 10, formatCoord(p.X))
		tag(b, 20, formatCoord(p.Y))
	}
	tag(b, 97, "0")
}

func writeFooter(b *strings.Builder) {
	tag(b, 0, "SECTION")
	tag(b, 2, "OBJECTS")
	tag(b, 0, "DICTIONARY")
	tag(b, 0, "ENDSEC")
	tag(b, 0, "EOF")
}

// openRing strips the closing duplicate vertex; LWPOLYLINE closure is
// carried by the closed flag, not a repeated point.
func openRing(ring []utils.Point) []utils.Point {
	if len(ring) >= 2 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

// tag writes one DXF group code / value pair.
func tag(b *strings.Builder, code int, value string) {
	b.WriteString(strconv.Itoa(code))
	b.WriteByte('\n')
	b.WriteString(value)
	b.WriteByte('\n')
}
