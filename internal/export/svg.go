// Package export renders the final polygon set into the two output
// formats consumed by drawing applications: an SVG stroke/fill markup and
// an AutoCAD-2000 drawing-exchange (DXF) file. Both writers format
// coordinates to 6 decimal places and use the two fixed layer/class names.
package export

import (
	"strconv"
	"strings"

	"github.com/MeKo-Tech/vectra/internal/geomfix"
	"github.com/MeKo-Tech/vectra/internal/utils"
)

// Fixed layer/class names shared by both writers.
const (
	LayerDetail = "VW_CLASS_Detail"
	LayerFill   = "VW_CLASS_Fill"
)

// SVGOptions configures the markup writer.
type SVGOptions struct {
	Width  int
	Height int
	Fill   bool
}

// GenerateSVG emits one closed path per exterior ring and per hole ring
// under the detail stroke class, and, when Fill is set, a fill class whose
// per-polygon paths combine exterior and hole subpaths under the even-odd
// fill rule so holes subtract without boolean operations.
func GenerateSVG(polygons []geomfix.Polygon, opts SVGOptions) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="`)
	b.WriteString(strconv.Itoa(opts.Width))
	b.WriteString(`" height="`)
	b.WriteString(strconv.Itoa(opts.Height))
	b.WriteString(`" viewBox="0 0 `)
	b.WriteString(strconv.Itoa(opts.Width))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(opts.Height))
	b.WriteString("\">\n")

	if opts.Fill {
		b.WriteString(`  <g class="` + LayerFill + `" fill="black" fill-rule="evenodd" stroke="none">` + "\n")
		for _, p := range polygons {
			b.WriteString(`    <path d="`)
			b.WriteString(pathData(p.Exterior))
			for _, h := range p.Holes {
				b.WriteByte(' ')
				b.WriteString(pathData(h))
			}
			b.WriteString("\"/>\n")
		}
		b.WriteString("  </g>\n")
	}

	b.WriteString(`  <g class="` + LayerDetail + `" fill="none" stroke="black" stroke-width="1">` + "\n")
	for _, p := range polygons {
		writeRingPath(&b, p.Exterior)
		for _, h := range p.Holes {
			writeRingPath(&b, h)
		}
	}
	b.WriteString("  </g>\n")
	b.WriteString("</svg>\n")
	return b.String()
}

func writeRingPath(b *strings.Builder, ring []utils.Point) {
	if len(ring) == 0 {
		return
	}
	b.WriteString(`    <path d="`)
	b.WriteString(pathData(ring))
	b.WriteString("\"/>\n")
}

// pathData renders a closed subpath, omitting the closing duplicate vertex
// in favor of an explicit Z command.
func pathData(ring []utils.Point) string {
	pts := ring
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatCoord(p.X))
		b.WriteByte(' ')
		b.WriteString(formatCoord(p.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

// formatCoord renders a coordinate with the 6-decimal CAD precision contract.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
