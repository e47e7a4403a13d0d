package export

import (
	"fmt"
	"strings"
)

// geometryEntities that must never appear in ring output; only closed
// LWPOLYLINEs are CAD-safe here.
var forbiddenEntities = []string{
	"POLYLINE", "LINE", "ARC", "CIRCLE", "ELLIPSE", "SPLINE",
}

// ValidateDXF checks the hard format rules on a generated exchange file:
// balanced SECTION/ENDSEC pairs, exactly one EOF marker at the end, only
// closed LWPOLYLINE ring geometry, and layer references restricted to the
// two fixed layer names.
func ValidateDXF(doc string) error {
	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	if len(lines)%2 != 0 {
		return fmt.Errorf("odd number of lines: %d", len(lines))
	}

	sections := 0
	eofs := 0
	for i := 0; i+1 < len(lines); i += 2 {
		code := strings.TrimSpace(lines[i])
		value := strings.TrimSpace(lines[i+1])

		if code == "0" {
			switch value {
			case "SECTION":
				sections++
			case "ENDSEC":
				sections--
				if sections < 0 {
					return fmt.Errorf("ENDSEC without matching SECTION at line %d", i+1)
				}
			case "EOF":
				eofs++
				if i+2 != len(lines) {
					return fmt.Errorf("EOF marker not at end of file (line %d)", i+1)
				}
			case "LWPOLYLINE":
				if err := validatePolylineAt(lines, i); err != nil {
					return err
				}
			default:
				for _, forbidden := range forbiddenEntities {
					if value == forbidden {
						return fmt.Errorf("forbidden entity %s at line %d", value, i+1)
					}
				}
			}
		}

		if code == "8" && value != LayerDetail && value != LayerFill {
			return fmt.Errorf("unexpected layer name %q at line %d", value, i+2)
		}
	}

	if sections != 0 {
		return fmt.Errorf("unbalanced SECTION/ENDSEC: %d open", sections)
	}
	if eofs != 1 {
		return fmt.Errorf("expected exactly one EOF marker, found %d", eofs)
	}
	return nil
}

// validatePolylineAt verifies the LWPOLYLINE starting at line index i
// carries the closed flag (group 70 value 1) before the next entity.
func validatePolylineAt(lines []string, i int) error {
	for j := i + 2; j+1 < len(lines); j += 2 {
		code := strings.TrimSpace(lines[j])
		value := strings.TrimSpace(lines[j+1])
		if code == "0" {
			break
		}
		if code == "70" {
			if value != "1" {
				return fmt.Errorf("LWPOLYLINE at line %d is not closed (70=%s)", i+1, value)
			}
			return nil
		}
	}
	return fmt.Errorf("LWPOLYLINE at line %d has no closed flag", i+1)
}
