// Package plex talks to a Plex Media Server to list library collections.
//
// CatalogClient resolves library section keys once per client, reads the
// collections of a section, and reports the smart flag Plex attaches to
// rule-based collections. Connection failures are tagged with
// services.ErrCatalogUnreachable and unknown libraries with
// services.ErrLibraryNotFound so the pipeline can classify them.
package plex
