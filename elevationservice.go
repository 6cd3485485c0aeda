package srtm

import (
	"context"
	"errors"
	"math"
)

// An ElevationService answers the ground elevation at geographic
// coordinates.
type ElevationService struct {
	tileSet *TileSet
}

// NewElevationService returns a new ElevationService fetching tiles from
// source.
func NewElevationService(source Source, options ...TileSetOption) (*ElevationService, error) {
	tileSet, err := NewTileSet(source, options...)
	if err != nil {
		return nil, err
	}
	return &ElevationService{
		tileSet: tileSet,
	}, nil
}

// Elevation returns the elevation in meters at (lat, lon). It returns
// ErrElevationUnavailable if the point's interpolation neighborhood
// contains a void sample.
func (s *ElevationService) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	id, err := NewTileID(lat, lon, s.tileSet.Resolution())
	if err != nil {
		return 0, err
	}
	tile, err := s.tileSet.GetTile(ctx, id)
	if err != nil {
		return 0, err
	}
	return tile.Sample(lat, lon)
}

// Elevations returns the elevations at multiple independent coordinates,
// fetching each distinct tile once. Each coords element is a [lat, lon]
// pair. Points whose interpolation neighborhood contains a void sample are
// reported as NaN.
func (s *ElevationService) Elevations(ctx context.Context, coords [][]float64) ([]float64, error) {
	elevations := make([]float64, len(coords))

	// Group indexes by tile.
	indexesByTileID := make(map[TileID][]int)
	for index, coord := range coords {
		id, err := NewTileID(coord[0], coord[1], s.tileSet.Resolution())
		if err != nil {
			return nil, err
		}
		indexesByTileID[id] = append(indexesByTileID[id], index)
	}

	// Populate elevations one tile at a time.
	for id, indexes := range indexesByTileID {
		tile, err := s.tileSet.GetTile(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, index := range indexes {
			coord := coords[index]
			switch elevation, err := tile.Sample(coord[0], coord[1]); {
			case errors.Is(err, ErrElevationUnavailable):
				elevations[index] = math.NaN()
			case err != nil:
				return nil, err
			default:
				elevations[index] = elevation
			}
		}
	}

	return elevations, nil
}
