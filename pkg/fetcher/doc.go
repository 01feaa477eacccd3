// Package fetcher wires the search, preview and archive components into the
// linear pipeline the tool exposes.
//
// Search issues paginated requests against the Pexels API and returns an
// ordered, duplicate-free descriptor list of bounded length. Preview is a
// pure projection of at most 20 thumbnail URLs. BuildArchive hands the
// descriptor list to the archive builder, which fetches the images on a
// bounded worker pool and bundles them into a zip, skipping per-item
// failures.
package fetcher
