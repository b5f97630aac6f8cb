// Package services defines shared utilities consumed by the reconciliation
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and pipeline phases for
//     logging.
//   - Structured error markers plus the Wrap helper so callers can tell an
//     unreachable catalog, a missing library, and a failed removal apart with
//     errors.Is.
//
// The plex and jellyfin subpackages implement the remote catalog used to
// match collection artwork.
package services
