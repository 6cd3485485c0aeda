package srtm

import (
	"encoding/binary"
	"math"
)

// A Tile is a decoded one-degree-by-one-degree grid of elevation samples.
// Rows run from the tile's north edge to its south edge and columns from
// west to east. Adjacent tiles share their edge row and column.
type Tile struct {
	id      TileID
	samples []int16
}

// DecodeTile decodes raw tile data. data must be the decompressed contents
// of a tile archive: big-endian int16 samples in row-major order, north row
// first. If id's resolution is ResolutionAuto it is detected from the
// payload size.
func DecodeTile(data []byte, id TileID) (*Tile, error) {
	if id.Resolution == ResolutionAuto {
		resolution, err := DetectResolution(len(data))
		if err != nil {
			return nil, err
		}
		id.Resolution = resolution
	} else if len(data) != id.Resolution.byteCount() {
		return nil, &MalformedTileError{Resolution: id.Resolution, Size: len(data)}
	}
	samples := make([]int16, id.Resolution.sampleCount())
	for i := range samples {
		samples[i] = int16(binary.BigEndian.Uint16(data[2*i:]))
	}
	return &Tile{
		id:      id,
		samples: samples,
	}, nil
}

// ID returns t's TileID. Its resolution is always concrete, even if t was
// decoded with ResolutionAuto.
func (t *Tile) ID() TileID {
	return t.id
}

// sample returns the sample at (row, col) and whether it holds recorded
// data.
func (t *Tile) sample(row, col int) (int16, bool) {
	s := t.samples[row*t.id.Resolution.side()+col]
	return s, s != voidSample
}

// Sample returns the bilinearly-interpolated elevation in meters at
// (lat, lon), which must lie within t. It returns ErrElevationUnavailable
// if any sample contributing to the interpolation is void.
func (t *Tile) Sample(lat, lon float64) (float64, error) {
	side := t.id.Resolution.side()

	// Row 0 is the north edge, and the side-1 sample spacing spans exactly
	// one degree, matching the one-sample overlap between adjacent tiles.
	// Clamping tolerates floating-point rounding at tile boundaries.
	rowF := (float64(t.id.Lat) + 1 - lat) * float64(side-1)
	colF := (lon - float64(t.id.Lon)) * float64(side-1)
	rowF = min(max(rowF, 0), float64(side-1))
	colF = min(max(colF, 0), float64(side-1))

	// Using ceil for the second row and column means that samples with zero
	// weight never contribute, so an exact vertex hit depends on one sample
	// only.
	row0, col0 := int(math.Floor(rowF)), int(math.Floor(colF))
	row1, col1 := int(math.Ceil(rowF)), int(math.Ceil(colF))
	dy, dx := rowF-float64(row0), colF-float64(col0)

	s00, ok00 := t.sample(row0, col0)
	s01, ok01 := t.sample(row0, col1)
	s10, ok10 := t.sample(row1, col0)
	s11, ok11 := t.sample(row1, col1)
	if !ok00 || !ok01 || !ok10 || !ok11 {
		return 0, ErrElevationUnavailable
	}

	return float64(s00)*(1-dx)*(1-dy) +
		float64(s01)*dx*(1-dy) +
		float64(s10)*(1-dx)*dy +
		float64(s11)*dx*dy, nil
}
