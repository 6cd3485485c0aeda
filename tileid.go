package srtm

import (
	"fmt"
	"math"
)

// A TileID identifies a one-degree-by-one-degree tile by its south-west
// corner.
type TileID struct {
	Lat        int // Latitude band, the floor of the latitude.
	Lon        int // Longitude band, the floor of the longitude.
	Resolution Resolution
}

// NewTileID returns the TileID of the tile covering (lat, lon). Bands floor
// toward negative infinity, so the tile covering (-0.5, -0.5) is "S01W001".
func NewTileID(lat, lon float64, resolution Resolution) (TileID, error) {
	if !(-90 <= lat && lat <= 90) || !(-180 <= lon && lon <= 180) {
		return TileID{}, &OutOfRangeError{Lat: lat, Lon: lon}
	}
	return TileID{
		Lat:        int(math.Floor(lat)),
		Lon:        int(math.Floor(lon)),
		Resolution: resolution,
	}, nil
}

// Name returns id's canonical tile name, e.g. "N47E005".
func (id TileID) Name() string {
	latHemisphere, lat := 'N', id.Lat
	if lat < 0 {
		latHemisphere, lat = 'S', -lat
	}
	lonHemisphere, lon := 'E', id.Lon
	if lon < 0 {
		lonHemisphere, lon = 'W', -lon
	}
	return fmt.Sprintf("%c%02d%c%03d", latHemisphere, lat, lonHemisphere, lon)
}
