// Package assetscan classifies the contents of an artwork asset store.
//
// Two storage conventions are supported. The flat layout keeps one image per
// asset directly in the store root, with per-season images stored as siblings
// whose names extend the series image name with a season marker. Each season
// image belongs to the longest series image name it extends; one without a
// series image forms its own series entry titled up to its last year token.
// The nested layout keeps one directory per asset. Both produce inventory.Assets grouped
// into movies, series, and collections; titles without a "(YYYY)" year token
// are treated as collections. Nested folder names also need whitespace before
// the year.
//
// Scanning never mutates the store.
package assetscan
