package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"pixfetch/internal/downloader"
	"pixfetch/pkg/logger"
)

// ErrEmptyArchive is returned when no image in the job could be fetched
var ErrEmptyArchive = errors.New("no images could be fetched, nothing to archive")

// contentTypeExt maps image content types onto archive entry extensions
var contentTypeExt = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
	"image/avif": "avif",
}

// Result holds the finished archive
type Result struct {
	Data         []byte
	Entries      []string
	BytesWritten int64
	Skipped      int
}

// Builder fetches every descriptor in a job over a bounded worker pool and
// bundles the payloads into an in-memory zip. Per-item failures are skipped
// and counted, not propagated.
type Builder struct {
	client  downloader.ImageFetcher
	workers int
	logger  logger.Logger

	// OnResult, when set, is called once per descriptor as its fetch
	// finishes. Used by the progress display.
	OnResult func(id string, success bool)
}

// NewBuilder creates an archive builder with the given fetch concurrency
func NewBuilder(client downloader.ImageFetcher, workers int, log logger.Logger) *Builder {
	if log == nil {
		log = logger.GetLogger()
	}
	if workers <= 0 {
		workers = 4
	}
	return &Builder{
		client:  client,
		workers: workers,
		logger:  log,
	}
}

type fetched struct {
	data        []byte
	contentType string
}

// Build runs the job. Fetches happen concurrently; the zip is written
// sequentially in descriptor order once all results are in, so the archive
// index is never touched by more than one goroutine.
func (b *Builder) Build(job *Job) (*Result, error) {
	b.logger.InfoWithFields("building archive", map[string]interface{}{
		"job_id":     job.ID,
		"query":      job.Query,
		"images":     len(job.Descriptors),
		"resolution": string(job.Resolution),
	})

	pool := downloader.NewWorkerPool(b.workers, b.client, b.logger)
	pool.Start()

	results := make(map[string]fetched, len(job.Descriptors))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for res := range pool.Results() {
			if res.Success {
				results[res.Job.ID] = fetched{data: res.Data, contentType: res.ContentType}
			} else {
				job.Skipped++
				logger.LogDownload(job.Query, res.Job.ID, false, res.Error)
			}
			if b.OnResult != nil {
				b.OnResult(res.Job.ID, res.Success)
			}
		}
	}()

	urls := make(map[string]string, len(job.Descriptors))
	for _, d := range job.Descriptors {
		u := d.URLFor(job.Resolution)
		urls[d.ID] = u
		if err := pool.Submit(downloader.Job{ID: d.ID, URL: u}); err != nil {
			job.Skipped++
			b.logger.WithError(err).WithField("photo_id", d.ID).Error("failed to submit fetch job")
		}
	}

	pool.Stop()
	wg.Wait()

	if len(results) == 0 {
		b.logger.WarnWithFields("archive job produced nothing", map[string]interface{}{
			"job_id":  job.ID,
			"skipped": job.Skipped,
		})
		return nil, ErrEmptyArchive
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	used := make(map[string]bool, len(results))
	entries := make([]string, 0, len(results))

	// Write in descriptor order so the entry set and order are the same on
	// every run with the same inputs.
	for _, d := range job.Descriptors {
		f, ok := results[d.ID]
		if !ok {
			continue
		}

		name := entryName(d.ID, f.contentType, urls[d.ID], used)
		used[name] = true

		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create archive entry %s: %w", name, err)
		}
		n, err := w.Write(f.data)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}

		job.BytesWritten += int64(n)
		entries = append(entries, name)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	b.logger.InfoWithFields("archive built", map[string]interface{}{
		"job_id":        job.ID,
		"entries":       len(entries),
		"skipped":       job.Skipped,
		"bytes_written": job.BytesWritten,
		"archive_size":  buf.Len(),
	})

	return &Result{
		Data:         buf.Bytes(),
		Entries:      entries,
		BytesWritten: job.BytesWritten,
		Skipped:      job.Skipped,
	}, nil
}

// entryName derives a deterministic, collision-free entry name from the
// descriptor id. Extension comes from the content type, then the URL suffix,
// then jpg.
func entryName(id, contentType, fetchURL string, used map[string]bool) string {
	ext := extFromContentType(contentType)
	if ext == "" {
		ext = extFromURL(fetchURL)
	}
	if ext == "" {
		ext = "jpg"
	}

	name := fmt.Sprintf("%s.%s", id, ext)
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s_%d.%s", id, i, ext)
	}
	return name
}

func extFromContentType(contentType string) string {
	// Strip parameters like "; charset=binary"
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return contentTypeExt[strings.TrimSpace(strings.ToLower(contentType))]
}

func extFromURL(fetchURL string) string {
	u, err := url.Parse(fetchURL)
	if err != nil {
		return ""
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if len(ext) == 0 || len(ext) > 5 {
		return ""
	}
	return strings.ToLower(ext)
}
