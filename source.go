package srtm

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// A Source fetches the raw, decompressed sample data of named tiles. A
// failed fetch for a missing tile returns an error wrapping fs.ErrNotExist.
type Source interface {
	FetchTile(ctx context.Context, name string) ([]byte, error)
}

// DefaultSkadiBaseURL is the public AWS Terrain Tiles bucket.
const DefaultSkadiBaseURL = "https://elevation-tiles-prod.s3.amazonaws.com/skadi"

// A SkadiSource fetches gzipped tiles over HTTP from the skadi directory
// layout, i.e. <base>/N47/N47E005.hgt.gz.
type SkadiSource struct {
	baseURL    string
	httpClient *http.Client
}

// A SkadiSourceOption sets an option on a SkadiSource.
type SkadiSourceOption func(*SkadiSource)

// NewSkadiSource returns a new SkadiSource with the given options.
func NewSkadiSource(options ...SkadiSourceOption) *SkadiSource {
	s := &SkadiSource{
		baseURL:    DefaultSkadiBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func WithBaseURL(baseURL string) SkadiSourceOption {
	return func(s *SkadiSource) {
		s.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) SkadiSourceOption {
	return func(s *SkadiSource) {
		s.httpClient = httpClient
	}
}

func (s *SkadiSource) FetchTile(ctx context.Context, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s.hgt.gz", s.baseURL, skadiFolder(name), name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", url, fs.ErrNotExist)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: unexpected status %s", url, resp.Status)
	}
	return gunzip(resp.Body)
}

// skadiFolder returns the per-latitude-band folder of a tile name, e.g.
// "N47" for "N47E005".
func skadiFolder(name string) string {
	return name[:3]
}

// An FSSource fetches tiles from a filesystem, reading <name>.hgt or, if
// that does not exist, <name>.hgt.gz.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a new FSSource serving tiles from fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{
		fsys: fsys,
	}
}

func (s *FSSource) FetchTile(ctx context.Context, name string) ([]byte, error) {
	switch data, err := fs.ReadFile(s.fsys, name+".hgt"); {
	case errors.Is(err, fs.ErrNotExist):
		file, err := s.fsys.Open(name + ".hgt.gz")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return gunzip(file)
	case err != nil:
		return nil, err
	default:
		return data, nil
	}
}

// A CacheDirSource caches the tiles of another Source as decompressed .hgt
// files in a local directory, in the same per-latitude-band layout as the
// skadi bucket.
type CacheDirSource struct {
	source   Source
	dir      string
	maxFiles int
	files    *lru.Cache[string, string] // Nil when unbounded.
}

// A CacheDirSourceOption sets an option on a CacheDirSource.
type CacheDirSourceOption func(*CacheDirSource)

// NewCacheDirSource returns a new CacheDirSource caching source's tiles
// under dir.
func NewCacheDirSource(source Source, dir string, options ...CacheDirSourceOption) (*CacheDirSource, error) {
	s := &CacheDirSource{
		source: source,
		dir:    dir,
	}
	for _, option := range options {
		option(s)
	}
	if s.maxFiles > 0 {
		var err error
		s.files, err = lru.NewWithEvict(s.maxFiles, func(name, path string) {
			_ = os.Remove(path)
		})
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithMaxFiles bounds the number of cached files. The least recently used
// file is removed when the bound is exceeded.
func WithMaxFiles(maxFiles int) CacheDirSourceOption {
	return func(s *CacheDirSource) {
		s.maxFiles = maxFiles
	}
}

func (s *CacheDirSource) FetchTile(ctx context.Context, name string) ([]byte, error) {
	path := filepath.Join(s.dir, skadiFolder(name), name+".hgt")
	switch data, err := os.ReadFile(path); {
	case err == nil:
		if s.files != nil {
			s.files.Add(name, path)
		}
		return data, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	data, err := s.source.FetchTile(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}
	if s.files != nil {
		s.files.Add(name, path)
	}
	return data, nil
}

// gunzip decompresses all of r.
func gunzip(r io.Reader) ([]byte, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(gzr)
	if err != nil {
		return nil, err
	}
	return data, gzr.Close()
}
