package pexels

import (
	"strconv"

	"pixfetch/pkg/media"
)

// SearchResponse is the wire format of GET /v1/search
type SearchResponse struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	TotalResults int     `json:"total_results"`
	NextPage     string  `json:"next_page"`
	Photos       []Photo `json:"photos"`
}

// Photo is a single search result as returned by the API
type Photo struct {
	ID              int64    `json:"id"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	URL             string   `json:"url"`
	Photographer    string   `json:"photographer"`
	PhotographerURL string   `json:"photographer_url"`
	Alt             string   `json:"alt"`
	Src             PhotoSrc `json:"src"`
}

// PhotoSrc carries the per-size variants of a photo
type PhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// Descriptor converts the wire photo into the immutable domain record.
// The original variant is always present in API responses; other sizes are
// only added when the service supplied them.
func (p Photo) Descriptor() media.Descriptor {
	urls := map[media.Resolution]string{
		media.ResolutionOriginal: p.Src.Original,
	}
	if p.Src.Small != "" {
		urls[media.ResolutionSmall] = p.Src.Small
	}
	if p.Src.Medium != "" {
		urls[media.ResolutionMedium] = p.Src.Medium
	}
	if p.Src.Large != "" {
		urls[media.ResolutionLarge] = p.Src.Large
	}

	thumb := p.Src.Tiny
	if thumb == "" {
		thumb = p.Src.Small
	}

	return media.Descriptor{
		ID:           strconv.FormatInt(p.ID, 10),
		URLs:         urls,
		ThumbnailURL: thumb,
		Photographer: p.Photographer,
		Alt:          p.Alt,
	}
}
