package srtm_test

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-srtm"
)

func gzipData(t *testing.T, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	w := gzip.NewWriter(&buffer)
	_, err := w.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	return buffer.Bytes()
}

func TestFSSource(t *testing.T) {
	data := uniformTileData(srtm.SRTM3, 100, nil)
	source := srtm.NewFSSource(fstest.MapFS{
		"N47E005.hgt":    &fstest.MapFile{Data: data},
		"N47E006.hgt.gz": &fstest.MapFile{Data: gzipData(t, data)},
	})

	actual, err := source.FetchTile(t.Context(), "N47E005")
	assert.NoError(t, err)
	assert.Equal(t, data, actual)

	// Gzipped tiles are decompressed transparently.
	actual, err = source.FetchTile(t.Context(), "N47E006")
	assert.NoError(t, err)
	assert.Equal(t, data, actual)

	_, err = source.FetchTile(t.Context(), "N47E007")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSkadiSource(t *testing.T) {
	data := uniformTileData(srtm.SRTM3, 100, nil)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/N47/N47E005.hgt.gz" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(gzipData(t, data))
	}))
	defer server.Close()

	source := srtm.NewSkadiSource(
		srtm.WithBaseURL(server.URL),
		srtm.WithHTTPClient(server.Client()),
	)

	actual, err := source.FetchTile(t.Context(), "N47E005")
	assert.NoError(t, err)
	assert.Equal(t, data, actual)

	_, err = source.FetchTile(t.Context(), "S01W001")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCacheDirSource(t *testing.T) {
	upstream := &countingSource{
		data: map[string][]byte{
			"N47E005": uniformTileData(srtm.SRTM3, 100, nil),
		},
	}
	dir := t.TempDir()
	source, err := srtm.NewCacheDirSource(upstream, dir)
	assert.NoError(t, err)

	data, err := source.FetchTile(t.Context(), "N47E005")
	assert.NoError(t, err)
	assert.Equal(t, upstream.data["N47E005"], data)

	// The tile is persisted and served from disk on the next fetch.
	_, err = os.Stat(filepath.Join(dir, "N47", "N47E005.hgt"))
	assert.NoError(t, err)
	data, err = source.FetchTile(t.Context(), "N47E005")
	assert.NoError(t, err)
	assert.Equal(t, upstream.data["N47E005"], data)
	assert.Equal(t, int64(1), upstream.fetchCalls.Load())
}

func TestCacheDirSourceMaxFiles(t *testing.T) {
	upstream := &countingSource{
		data: map[string][]byte{
			"N47E005": uniformTileData(srtm.SRTM3, 100, nil),
			"N47E006": uniformTileData(srtm.SRTM3, 200, nil),
		},
	}
	dir := t.TempDir()
	source, err := srtm.NewCacheDirSource(upstream, dir, srtm.WithMaxFiles(1))
	assert.NoError(t, err)

	_, err = source.FetchTile(t.Context(), "N47E005")
	assert.NoError(t, err)
	_, err = source.FetchTile(t.Context(), "N47E006")
	assert.NoError(t, err)

	// The least recently used file was evicted from disk.
	_, err = os.Stat(filepath.Join(dir, "N47", "N47E005.hgt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	_, err = os.Stat(filepath.Join(dir, "N47", "N47E006.hgt"))
	assert.NoError(t, err)
}
