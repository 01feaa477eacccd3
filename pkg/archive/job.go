package archive

import (
	"github.com/google/uuid"

	"pixfetch/pkg/media"
)

// Job describes one user-initiated "download all" action. It lives for the
// duration of a single Build call and is never persisted.
type Job struct {
	ID          string
	Query       string
	Descriptors []media.Descriptor
	Resolution  media.Resolution

	// BytesWritten and Skipped are updated during Build, for progress
	// reporting only.
	BytesWritten int64
	Skipped      int
}

// NewJob creates an archive job for the given descriptors and resolution
func NewJob(query string, descriptors []media.Descriptor, resolution media.Resolution) *Job {
	return &Job{
		ID:          uuid.NewString(),
		Query:       query,
		Descriptors: descriptors,
		Resolution:  resolution,
	}
}
