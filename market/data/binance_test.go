package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		// the mirror has no 2024-02 archive for this symbol
		if strings.Contains(r.URL.Path, "2024-02") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("archive-bytes"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchKlines(t *testing.T) {
	t.Parallel()
	var hits atomic.Int64
	srv := testServer(t, &hits)
	out := t.TempDir()

	d := NewDownloader(WithBase(srv.URL), WithWorkers(2), WithSleep(0))

	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	rep, err := d.FetchKlines(context.Background(), "btcusdt", "1h", from, to, out)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.OK)
	assert.Equal(t, 1, rep.Missing)
	assert.Equal(t, 0, rep.Failed)
	require.Len(t, rep.Files, 2)

	for _, p := range rep.Files {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "archive-bytes", string(b))
	}

	// symbol is upper-cased into the layout
	assert.FileExists(t, filepath.Join(out, "BTCUSDT", "1h", "BTCUSDT-1h-2024-01.zip"))
	assert.FileExists(t, filepath.Join(out, "BTCUSDT", "1h", "BTCUSDT-1h-2024-03.zip"))
}

func TestFetchKlinesSkipsPresent(t *testing.T) {
	t.Parallel()
	var hits atomic.Int64
	srv := testServer(t, &hits)
	out := t.TempDir()

	d := NewDownloader(WithBase(srv.URL), WithSleep(0))
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := d.FetchKlines(context.Background(), "BTCUSDT", "1h", from, from, out)
	require.NoError(t, err)
	require.Equal(t, int64(1), hits.Load())

	rep, err := d.FetchKlines(context.Background(), "BTCUSDT", "1h", from, from, out)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.OK)
	assert.Equal(t, int64(1), hits.Load(), "archive on disk must not be re-fetched")
}

func TestFetchKlinesValidation(t *testing.T) {
	t.Parallel()
	d := NewDownloader()
	now := time.Now()

	_, err := d.FetchKlines(context.Background(), "", "1h", now, now, t.TempDir())
	assert.Error(t, err)

	_, err = d.FetchKlines(context.Background(), "BTCUSDT", "", now, now, t.TempDir())
	assert.Error(t, err)

	_, err = d.FetchKlines(context.Background(), "BTCUSDT", "1h", now, now.AddDate(0, -2, 0), t.TempDir())
	assert.Error(t, err)
}
