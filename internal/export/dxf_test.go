package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/vectra/internal/geomfix"
)

// countTag counts occurrences of a group code / value pair.
func countTag(doc string, code, value string) int {
	return strings.Count(doc, "\n"+code+"\n"+value+"\n") +
		boolToInt(strings.HasPrefix(doc, code+"\n"+value+"\n"))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestGenerateDXFHeader(t *testing.T) {
	doc := GenerateDXF(nil, DXFOptions{})

	assert.Contains(t, doc, "9\n$ACADVER\n1\nAC1015\n")
	assert.Contains(t, doc, "9\n$HANDSEED\n5\nFFFF\n")
	assert.Contains(t, doc, "9\n$MEASUREMENT\n70\n1\n")
}

func TestGenerateDXFLayerTable(t *testing.T) {
	doc := GenerateDXF(nil, DXFOptions{Fill: false})

	// Both layers are declared regardless of the fill flag.
	assert.Contains(t, doc, "0\nLAYER\n2\n"+LayerDetail+"\n")
	assert.Contains(t, doc, "0\nLAYER\n2\n"+LayerFill+"\n")
	assert.Contains(t, doc, "6\nCONTINUOUS\n")
}

func TestGenerateDXFEmptySetIsValid(t *testing.T) {
	doc := GenerateDXF(nil, DXFOptions{})

	require.NoError(t, ValidateDXF(doc))
	assert.Equal(t, 1, strings.Count(doc, "0\nEOF\n"))
	assert.True(t, strings.HasSuffix(doc, "0\nEOF\n"))
}

func TestGenerateDXFSinglePolygon(t *testing.T) {
	doc := GenerateDXF([]geomfix.Polygon{squarePoly(10)}, DXFOptions{Fill: true})
	require.NoError(t, ValidateDXF(doc))

	assert.Equal(t, 1, countTag(doc, "0", "LWPOLYLINE"))
	assert.Equal(t, 1, countTag(doc, "0", "HATCH"))

	// Closed flag and explicit vertex count (closing duplicate stripped).
	assert.Contains(t, doc, "0\nLWPOLYLINE\n8\n"+LayerDetail+"\n90\n4\n70\n1\n")
	// Boundary path count for a hole-free polygon.
	assert.Contains(t, doc, "91\n1\n")
	// External path flag.
	assert.Contains(t, doc, "92\n2\n")
}

func TestGenerateDXFPolygonWithHole(t *testing.T) {
	doc := GenerateDXF([]geomfix.Polygon{holedPoly()}, DXFOptions{Fill: true})
	require.NoError(t, ValidateDXF(doc))

	assert.Equal(t, 2, countTag(doc, "0", "LWPOLYLINE"), "exterior and hole each get a polyline")
	assert.Equal(t, 1, countTag(doc, "0", "HATCH"))
	assert.Contains(t, doc, "91\n2\n", "boundary path count is 1 + hole count")
	assert.Equal(t, 1, countTag(doc, "92", "2"), "one external path")
	assert.Equal(t, 1, countTag(doc, "92", "16"), "one internal path")
}

func TestGenerateDXFNoHatchWithoutFill(t *testing.T) {
	doc := GenerateDXF([]geomfix.Polygon{holedPoly()}, DXFOptions{Fill: false})
	require.NoError(t, ValidateDXF(doc))

	assert.Zero(t, countTag(doc, "0", "HATCH"))
	assert.NotContains(t, doc, LayerFill+"\n2\nSOLID")
}

func TestGenerateDXFHatchSolidPattern(t *testing.T) {
	doc := GenerateDXF([]geomfix.Polygon{squarePoly(10)}, DXFOptions{Fill: true})

	assert.Contains(t, doc, "0\nHATCH\n8\n"+LayerFill+"\n2\nSOLID\n70\n1\n71\n0\n")
}

func TestGenerateDXFCoordinatePrecision(t *testing.T) {
	p := geomfix.Polygon{Exterior: squarePoly(10).Exterior}
	p.Exterior[1].X = 3.5
	doc := GenerateDXF([]geomfix.Polygon{p}, DXFOptions{})

	assert.Contains(t, doc, "10\n3.500000\n")
	assert.Contains(t, doc, "20\n0.000000\n")
}

func TestGenerateDXFEntitiesSubsetOfFull(t *testing.T) {
	polys := []geomfix.Polygon{holedPoly()}
	entities := GenerateDXFEntities(polys, DXFOptions{Fill: true})
	full := GenerateDXF(polys, DXFOptions{Fill: true})

	assert.Contains(t, full, entities)
	assert.NotContains(t, entities, "SECTION")
	assert.NotContains(t, entities, "EOF")
}

func TestGenerateDXFManyPolygonsBalanced(t *testing.T) {
	polys := []geomfix.Polygon{squarePoly(10), squarePoly(5), holedPoly()}
	doc := GenerateDXF(polys, DXFOptions{Fill: true})

	require.NoError(t, ValidateDXF(doc))
	assert.Equal(t, countTag(doc, "0", "SECTION"), countTag(doc, "0", "ENDSEC"))
}
