// Package inventory defines the entries produced by the asset and media
// scanners and consumed by the matcher and remover.
//
// Asset entries share one shape across kinds, while media entries are split
// into movie and series variants so season data only exists where it is
// meaningful. Catalog entries stand in for remote collections and are matched
// against collection-kind assets.
package inventory
