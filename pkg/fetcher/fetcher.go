package fetcher

import (
	"fmt"

	"pixfetch/pkg/archive"
	"pixfetch/pkg/config"
	"pixfetch/pkg/logger"
	"pixfetch/pkg/media"
	"pixfetch/pkg/pexels"
)

// MaxPreview caps how many thumbnails the preview projection returns
const MaxPreview = 20

// Client is the part of the Pexels client the fetcher depends on
type Client interface {
	SearchPhotos(query string, page, perPage int) (*pexels.SearchResponse, error)
	DownloadImage(url string) ([]byte, string, error)
}

// Fetcher orchestrates the search, preview and archive pipeline
type Fetcher struct {
	client Client
	config *config.Config
	logger logger.Logger
}

// New creates a Fetcher from the resolved configuration
func New(cfg *config.Config) *Fetcher {
	log := logger.GetLogger()

	client := pexels.NewClient(
		cfg.Pexels.BaseURL,
		cfg.Pexels.APIKey,
		cfg.Download.RequestTimeout,
		cfg.Download.MaxRetries,
		log,
	)

	return &Fetcher{
		client: client,
		config: cfg,
		logger: log,
	}
}

// NewWithClient creates a Fetcher with an injected client, for tests
func NewWithClient(cfg *config.Config, client Client, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Fetcher{
		client: client,
		config: cfg,
		logger: log,
	}
}

// Search collects up to count descriptors for term, walking the service's
// pages until enough results are in or the service is exhausted. Any page
// failure discards everything collected so far.
func (f *Fetcher) Search(term string, count int) ([]media.Descriptor, error) {
	term = pexels.SanitizeQuery(term)
	if term == "" {
		return nil, fmt.Errorf("search term must not be empty")
	}

	if count < 1 {
		count = 1
	} else if count > config.MaxCount {
		count = config.MaxCount
	}

	f.logger.InfoWithFields("starting search", map[string]interface{}{
		"query": term,
		"count": count,
	})

	descriptors := make([]media.Descriptor, 0, count)
	seen := make(map[string]bool, count)
	page := 1

	for len(descriptors) < count {
		perPage := count - len(descriptors)
		if perPage > pexels.MaxPerPage {
			perPage = pexels.MaxPerPage
		}

		resp, err := f.client.SearchPhotos(term, page, perPage)
		if err != nil {
			f.logger.WithError(err).WithFields(map[string]interface{}{
				"query": term,
				"page":  page,
			}).Error("search page failed, discarding partial results")
			return nil, err
		}

		if len(resp.Photos) == 0 {
			break
		}

		for _, p := range resp.Photos {
			d := p.Descriptor()
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			descriptors = append(descriptors, d)
			if len(descriptors) == count {
				break
			}
		}

		logger.LogSearchProgress(term, len(descriptors), count)

		if resp.NextPage == "" {
			break
		}
		page++
	}

	f.logger.InfoWithFields("search completed", map[string]interface{}{
		"query":   term,
		"results": len(descriptors),
	})

	return descriptors, nil
}

// Preview projects the first min(MaxPreview, len(descriptors)) thumbnail
// URLs. It never fails; broken thumbnails are the display layer's problem.
func Preview(descriptors []media.Descriptor) []string {
	n := len(descriptors)
	if n > MaxPreview {
		n = MaxPreview
	}

	thumbs := make([]string, 0, n)
	for _, d := range descriptors[:n] {
		thumbs = append(thumbs, d.ThumbnailURL)
	}
	return thumbs
}

// BuildArchive fetches every descriptor at the given resolution and bundles
// the results into a zip. onResult, when non-nil, receives per-image
// completion events for progress display.
func (f *Fetcher) BuildArchive(query string, descriptors []media.Descriptor, resolution media.Resolution, onResult func(id string, success bool)) (*archive.Result, error) {
	job := archive.NewJob(query, descriptors, resolution)

	builder := archive.NewBuilder(f.client, f.config.Download.ConcurrentDownloads, f.logger)
	builder.OnResult = onResult

	return builder.Build(job)
}
