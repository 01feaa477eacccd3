package media

import "fmt"

// Resolution is one of the four fixed size labels a search result can carry.
type Resolution string

const (
	ResolutionSmall    Resolution = "small"
	ResolutionMedium   Resolution = "medium"
	ResolutionLarge    Resolution = "large"
	ResolutionOriginal Resolution = "original"
)

// Resolutions lists all valid labels in ascending size order.
var Resolutions = []Resolution{
	ResolutionSmall,
	ResolutionMedium,
	ResolutionLarge,
	ResolutionOriginal,
}

// fallbackChains maps each label to the lookup order used when a descriptor
// is missing that size. Every chain ends in original, which is always present.
var fallbackChains = map[Resolution][]Resolution{
	ResolutionSmall:    {ResolutionSmall, ResolutionMedium, ResolutionLarge, ResolutionOriginal},
	ResolutionMedium:   {ResolutionMedium, ResolutionLarge, ResolutionSmall, ResolutionOriginal},
	ResolutionLarge:    {ResolutionLarge, ResolutionMedium, ResolutionOriginal},
	ResolutionOriginal: {ResolutionOriginal},
}

// ParseResolution validates a user-supplied resolution label
func ParseResolution(s string) (Resolution, error) {
	for _, r := range Resolutions {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid resolution %q (valid: small, medium, large, original)", s)
}

// Descriptor is the metadata record for one search result. It is built once
// from a query response and never mutated afterwards.
type Descriptor struct {
	ID           string
	URLs         map[Resolution]string
	ThumbnailURL string

	// Attribution carried along for display only
	Photographer string
	Alt          string
}

// URLFor resolves the fetch URL for the requested resolution, walking the
// fallback chain to the nearest available size. The empty return only happens
// on a descriptor that violates the always-has-original invariant.
func (d Descriptor) URLFor(res Resolution) string {
	for _, r := range fallbackChains[res] {
		if u, ok := d.URLs[r]; ok && u != "" {
			return u
		}
	}
	return d.URLs[ResolutionOriginal]
}
