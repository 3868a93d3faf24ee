// Package data downloads historical kline archives from the Binance
// public data mirror. Archives stay zipped on disk; market.LoadCSV reads
// them directly.
package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const defaultBase = "https://data.binance.vision"

// Downloader fetches monthly USD-M futures kline archives. The zero
// value is not usable; construct with NewDownloader.
type Downloader struct {
	base    string
	client  *http.Client
	workers int
	sleep   time.Duration
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithBase overrides the mirror base URL.
func WithBase(base string) Option {
	return func(d *Downloader) { d.base = strings.TrimRight(base, "/") }
}

// WithClient overrides the HTTP client.
func WithClient(c *http.Client) Option {
	return func(d *Downloader) { d.client = c }
}

// WithWorkers sets the number of parallel downloads.
func WithWorkers(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithSleep sets the polite per-request delay.
func WithSleep(s time.Duration) Option {
	return func(d *Downloader) { d.sleep = s }
}

func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		base:    defaultBase,
		client:  &http.Client{Timeout: 45 * time.Second},
		workers: max(4, runtime.NumCPU()),
		sleep:   50 * time.Millisecond,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Report summarizes one fetch: archives downloaded or already present,
// months the mirror does not have, and failures.
type Report struct {
	OK      int
	Missing int
	Failed  int

	// Files lists the local paths of every archive that is now present.
	Files []string
}

type job struct {
	url string
	dst string
}

// FetchKlines downloads the monthly archives covering [from, to] for one
// symbol and interval into outDir. Months already on disk are skipped.
// A missing month on the mirror is counted, not failed: listings start
// and end mid-history for most symbols.
func (d *Downloader) FetchKlines(ctx context.Context, symbol, interval string, from, to time.Time, outDir string) (Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Report{}, fmt.Errorf("data: symbol required")
	}
	if interval == "" {
		return Report{}, fmt.Errorf("data: interval required")
	}
	if to.Before(from) {
		return Report{}, fmt.Errorf("data: range end %s before start %s", to.Format("2006-01"), from.Format("2006-01"))
	}

	var jobs []job
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		name := fmt.Sprintf("%s-%s-%04d-%02d.zip", symbol, interval, m.Year(), m.Month())
		jobs = append(jobs, job{
			url: fmt.Sprintf("%s/data/futures/um/monthly/klines/%s/%s/%s", d.base, symbol, interval, name),
			dst: filepath.Join(outDir, symbol, interval, name),
		})
	}

	jobCh := make(chan job)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var rep Report

	workers := d.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				time.Sleep(d.sleep)

				status, err := d.downloadIfMissing(ctx, j.url, j.dst)
				mu.Lock()
				switch {
				case err != nil:
					rep.Failed++
				case status == http.StatusNotFound:
					rep.Missing++
				default:
					rep.OK++
					rep.Files = append(rep.Files, j.dst)
				}
				mu.Unlock()
			}
		}()
	}

	for _, j := range jobs {
		select {
		case jobCh <- j:
		case <-ctx.Done():
			close(jobCh)
			wg.Wait()
			return rep, ctx.Err()
		}
	}
	close(jobCh)
	wg.Wait()

	return rep, nil
}

// downloadIfMissing fetches url into dst unless dst already exists. The
// write goes through a .part file so a crash never leaves a truncated
// archive behind.
func (d *Downloader) downloadIfMissing(ctx context.Context, url, dst string) (int, error) {
	if st, err := os.Stat(dst); err == nil && st.Size() > 0 {
		return http.StatusOK, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return http.StatusNotFound, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("http status %d for %s", resp.StatusCode, url)
	}

	tmp := dst + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return resp.StatusCode, err
	}
	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		_ = os.Remove(tmp)
		return resp.StatusCode, copyErr
	}
	if closeErr != nil {
		_ = os.Remove(tmp)
		return resp.StatusCode, closeErr
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
