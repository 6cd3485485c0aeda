package srtm

import (
	"context"

	"github.com/maypok86/otter/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	tileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "srtm_tile_cache_hits_total",
		Help: "The total number of hits on the tile cache",
	})
	tileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "srtm_tile_cache_misses_total",
		Help: "The total number of misses on the tile cache",
	})
	tileFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "srtm_tile_fetches_total",
		Help: "The total number of tile fetches",
	})
	tileFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "srtm_tile_fetch_failures_total",
		Help: "The total number of failed tile fetches",
	})
)

// A TileNameFunc returns the fetch key for a TileID.
type TileNameFunc func(TileID) string

// A TileSet memoizes decoded tiles by TileID. Concurrent lookups of the
// same tile share a single fetch, while lookups of different tiles fetch in
// parallel. Failed fetches are not cached, so a later lookup retries.
type TileSet struct {
	source       Source
	resolution   Resolution
	tileNameFunc TileNameFunc
	cacheSize    int
	logger       *zap.Logger
	tileCache    *otter.Cache[TileID, *Tile]
}

// A TileSetOption sets an option on a TileSet.
type TileSetOption func(*TileSet)

// NewTileSet returns a new TileSet fetching tiles from source.
func NewTileSet(source Source, options ...TileSetOption) (*TileSet, error) {
	s := &TileSet{
		source:       source,
		resolution:   ResolutionAuto,
		tileNameFunc: TileID.Name,
		logger:       zap.NewNop(),
	}
	for _, option := range options {
		option(s)
	}
	var err error
	s.tileCache, err = otter.New(&otter.Options[TileID, *Tile]{
		MaximumSize: s.cacheSize,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WithCacheSize bounds the number of cached tiles. The default is unbounded:
// tiles are immutable terrain data and are retained for the life of the
// process.
func WithCacheSize(cacheSize int) TileSetOption {
	return func(s *TileSet) {
		s.cacheSize = cacheSize
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) TileSetOption {
	return func(s *TileSet) {
		s.logger = logger
	}
}

// WithResolution sets the resolution of all tiles in the set. The default is
// ResolutionAuto.
func WithResolution(resolution Resolution) TileSetOption {
	return func(s *TileSet) {
		s.resolution = resolution
	}
}

// WithTileNameFunc sets the function mapping a TileID to its fetch key.
func WithTileNameFunc(tileNameFunc TileNameFunc) TileSetOption {
	return func(s *TileSet) {
		s.tileNameFunc = tileNameFunc
	}
}

// Resolution returns s's resolution.
func (s *TileSet) Resolution() Resolution {
	return s.resolution
}

// GetTile returns the tile with the given id, fetching and decoding it if it
// is not already cached.
func (s *TileSet) GetTile(ctx context.Context, id TileID) (*Tile, error) {
	if tile, ok := s.tileCache.GetIfPresent(id); ok {
		tileCacheHits.Inc()
		return tile, nil
	}
	tileCacheMisses.Inc()
	return s.tileCache.Get(ctx, id, otter.LoaderFunc[TileID, *Tile](s.getTile))
}

// getTile fetches and decodes the tile with the given id. It runs at most
// once concurrently per id, as the loader of s.tileCache.
func (s *TileSet) getTile(ctx context.Context, id TileID) (*Tile, error) {
	name := s.tileNameFunc(id)
	s.logger.Debug("fetching tile", zap.String("name", name))
	tileFetches.Inc()
	data, err := s.source.FetchTile(ctx, name)
	if err != nil {
		tileFetchFailures.Inc()
		s.logger.Debug("tile fetch failed", zap.String("name", name), zap.Error(err))
		return nil, &TileUnavailableError{ID: id, Err: err}
	}
	tile, err := DecodeTile(data, id)
	if err != nil {
		tileFetchFailures.Inc()
		return nil, &TileUnavailableError{ID: id, Err: err}
	}
	return tile, nil
}
