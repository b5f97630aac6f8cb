// Package jellyfin talks to a Jellyfin server to list library collections.
//
// Jellyfin exposes collections as BoxSet items. They have no smart variant, so
// every collection returned here is a regular one.
package jellyfin
