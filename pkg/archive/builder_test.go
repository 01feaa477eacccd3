package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixfetch/pkg/logger"
	"pixfetch/pkg/media"
)

// fakeFetcher serves canned responses keyed by URL
type fakeFetcher struct {
	responses map[string]fakeResponse
}

type fakeResponse struct {
	data        []byte
	contentType string
	err         error
}

func (f *fakeFetcher) DownloadImage(url string) ([]byte, string, error) {
	resp, ok := f.responses[url]
	if !ok {
		return nil, "", errors.New("unexpected URL " + url)
	}
	if resp.err != nil {
		return nil, "", resp.err
	}
	return resp.data, resp.contentType, nil
}

func descriptor(id, originalURL string) media.Descriptor {
	return media.Descriptor{
		ID:   id,
		URLs: map[media.Resolution]string{media.ResolutionOriginal: originalURL},
	}
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	contents := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		payload, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		contents[f.Name] = payload
	}
	return contents
}

func TestBuildAllSuccess(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		"https://img/1.jpg": {data: []byte("one"), contentType: "image/jpeg"},
		"https://img/2.png": {data: []byte("two"), contentType: "image/png"},
		"https://img/3.jpg": {data: []byte("three"), contentType: "image/jpeg"},
	}}

	job := NewJob("cats", []media.Descriptor{
		descriptor("1", "https://img/1.jpg"),
		descriptor("2", "https://img/2.png"),
		descriptor("3", "https://img/3.jpg"),
	}, media.ResolutionOriginal)

	builder := NewBuilder(fetcher, 2, logger.NewTestLogger())
	result, err := builder.Build(job)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.jpg", "2.png", "3.jpg"}, result.Entries)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, int64(len("one")+len("two")+len("three")), result.BytesWritten)

	contents := readZip(t, result.Data)
	assert.Equal(t, []byte("one"), contents["1.jpg"])
	assert.Equal(t, []byte("two"), contents["2.png"])
	assert.Equal(t, []byte("three"), contents["3.jpg"])
}

func TestBuildSkipsFailures(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		"https://img/1.jpg": {data: []byte("one"), contentType: "image/jpeg"},
		"https://img/2.jpg": {err: errors.New("boom")},
		"https://img/3.jpg": {data: []byte("three"), contentType: "image/jpeg"},
	}}

	job := NewJob("cats", []media.Descriptor{
		descriptor("1", "https://img/1.jpg"),
		descriptor("2", "https://img/2.jpg"),
		descriptor("3", "https://img/3.jpg"),
	}, media.ResolutionOriginal)

	builder := NewBuilder(fetcher, 2, logger.NewTestLogger())
	result, err := builder.Build(job)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.jpg", "3.jpg"}, result.Entries)
	assert.Equal(t, 1, result.Skipped)

	contents := readZip(t, result.Data)
	assert.Len(t, contents, 2)
	_, hasFailed := contents["2.jpg"]
	assert.False(t, hasFailed)
}

func TestBuildAllFailuresReturnsEmptyArchiveError(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		"https://img/1.jpg": {err: errors.New("boom")},
		"https://img/2.jpg": {err: errors.New("boom")},
	}}

	job := NewJob("cats", []media.Descriptor{
		descriptor("1", "https://img/1.jpg"),
		descriptor("2", "https://img/2.jpg"),
	}, media.ResolutionOriginal)

	builder := NewBuilder(fetcher, 2, logger.NewTestLogger())
	result, err := builder.Build(job)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyArchive)
	assert.Equal(t, 2, job.Skipped)
}

func TestBuildNoDescriptors(t *testing.T) {
	job := NewJob("nothing", nil, media.ResolutionOriginal)

	builder := NewBuilder(&fakeFetcher{}, 2, logger.NewTestLogger())
	result, err := builder.Build(job)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestBuildUsesResolutionFallback(t *testing.T) {
	// Descriptor has no large variant, so a large request falls back to medium
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		"https://img/1-medium.jpg": {data: []byte("medium"), contentType: "image/jpeg"},
	}}

	d := media.Descriptor{
		ID: "1",
		URLs: map[media.Resolution]string{
			media.ResolutionMedium:   "https://img/1-medium.jpg",
			media.ResolutionOriginal: "https://img/1-orig.jpg",
		},
	}

	job := NewJob("cats", []media.Descriptor{d}, media.ResolutionLarge)

	builder := NewBuilder(fetcher, 1, logger.NewTestLogger())
	result, err := builder.Build(job)
	require.NoError(t, err)

	contents := readZip(t, result.Data)
	assert.Equal(t, []byte("medium"), contents["1.jpg"])
}

func TestBuildOnResultCallback(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		"https://img/1.jpg": {data: []byte("one"), contentType: "image/jpeg"},
		"https://img/2.jpg": {err: errors.New("boom")},
	}}

	job := NewJob("cats", []media.Descriptor{
		descriptor("1", "https://img/1.jpg"),
		descriptor("2", "https://img/2.jpg"),
	}, media.ResolutionOriginal)

	var mu sync.Mutex
	outcomes := make(map[string]bool)

	builder := NewBuilder(fetcher, 2, logger.NewTestLogger())
	builder.OnResult = func(id string, success bool) {
		mu.Lock()
		defer mu.Unlock()
		outcomes[id] = success
	}

	_, err := builder.Build(job)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"1": true, "2": false}, outcomes)
}

func TestEntryName(t *testing.T) {
	used := map[string]bool{}

	t.Run("content type wins", func(t *testing.T) {
		assert.Equal(t, "1.png", entryName("1", "image/png", "https://img/1.jpg", used))
	})

	t.Run("content type parameters are stripped", func(t *testing.T) {
		assert.Equal(t, "2.webp", entryName("2", "image/webp; charset=binary", "", used))
	})

	t.Run("unknown content type falls back to URL", func(t *testing.T) {
		assert.Equal(t, "3.png", entryName("3", "application/octet-stream", "https://img/photo.png?w=100", used))
	})

	t.Run("no usable source defaults to jpg", func(t *testing.T) {
		assert.Equal(t, "4.jpg", entryName("4", "", "https://img/photo", used))
	})

	t.Run("collisions get numeric suffixes", func(t *testing.T) {
		taken := map[string]bool{"5.jpg": true}
		assert.Equal(t, "5_2.jpg", entryName("5", "image/jpeg", "", taken))
		taken["5_2.jpg"] = true
		assert.Equal(t, "5_3.jpg", entryName("5", "image/jpeg", "", taken))
	})
}

func TestNewJob(t *testing.T) {
	descriptors := []media.Descriptor{descriptor("1", "https://img/1.jpg")}
	job := NewJob("sunsets", descriptors, media.ResolutionMedium)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "sunsets", job.Query)
	assert.Equal(t, descriptors, job.Descriptors)
	assert.Equal(t, media.ResolutionMedium, job.Resolution)

	other := NewJob("sunsets", descriptors, media.ResolutionMedium)
	assert.NotEqual(t, job.ID, other.ID)
}
