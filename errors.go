package srtm

import (
	"errors"
	"fmt"
)

// ErrElevationUnavailable is returned when a point's interpolation
// neighborhood contains a void sample.
var ErrElevationUnavailable = errors.New("elevation unavailable")

// An OutOfRangeError is returned when a coordinate lies outside the valid
// latitude or longitude range.
type OutOfRangeError struct {
	Lat float64
	Lon float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("coordinate (%v, %v) out of range", e.Lat, e.Lon)
}

// A MalformedTileError is returned when tile data does not match the
// expected size for its resolution. Resolution is zero when the resolution
// was to be detected from the payload size.
type MalformedTileError struct {
	Resolution Resolution
	Size       int
}

func (e *MalformedTileError) Error() string {
	if e.Resolution == ResolutionAuto {
		return fmt.Sprintf("malformed tile: no resolution has a %d-byte payload", e.Size)
	}
	return fmt.Sprintf("malformed tile: got %d bytes, expected %d", e.Size, e.Resolution.byteCount())
}

// A TileUnavailableError wraps a failure to fetch or decode a tile.
type TileUnavailableError struct {
	ID  TileID
	Err error
}

func (e *TileUnavailableError) Error() string {
	return fmt.Sprintf("tile %s unavailable: %v", e.ID.Name(), e.Err)
}

func (e *TileUnavailableError) Unwrap() error {
	return e.Err
}
