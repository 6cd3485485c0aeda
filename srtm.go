// Package srtm looks up ground elevations in SRTM digital elevation tiles.
package srtm

// A Resolution is the sample density of a tile. Its value is the side length
// of the tile's sample grid.
type Resolution int

const (
	// ResolutionAuto detects each tile's resolution from its payload size.
	ResolutionAuto Resolution = 0
	// SRTM1 tiles are sampled at one arc-second intervals.
	SRTM1 Resolution = 3601
	// SRTM3 tiles are sampled at three arc-second intervals.
	SRTM3 Resolution = 1201
)

// voidSample is the reserved sample value meaning "no elevation recorded".
const voidSample int16 = -32768

func (r Resolution) side() int        { return int(r) }
func (r Resolution) sampleCount() int { return int(r) * int(r) }
func (r Resolution) byteCount() int   { return 2 * r.sampleCount() }

// DetectResolution returns the resolution of a tile payload of n bytes.
func DetectResolution(n int) (Resolution, error) {
	switch n {
	case SRTM1.byteCount():
		return SRTM1, nil
	case SRTM3.byteCount():
		return SRTM3, nil
	default:
		return 0, &MalformedTileError{Size: n}
	}
}
