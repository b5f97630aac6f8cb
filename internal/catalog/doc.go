// Package catalog gathers the collection titles a media server knows about.
//
// A Source abstracts the remote server (Plex or Jellyfin). Collect queries every
// configured library, drops smart collections, and sanitizes titles so they
// compare with the artwork filenames produced by the asset scanner.
package catalog
