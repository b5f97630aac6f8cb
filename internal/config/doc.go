// Package config loads, normalizes, and validates cleanarr configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PLEX_TOKEN and JELLYFIN_API_KEY. The Config type centralizes every knob the
// CLI needs so the asset store, media roots, and catalog credentials are
// discovered in one pass.
//
// The reconcile pipeline never imports config. The CLI converts a loaded Config into the
// option values each component accepts.
package config
