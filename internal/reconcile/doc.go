// Package reconcile runs one cleanup pass over the asset store.
//
// Run validates its options, takes the single-run lock, checks the asset and
// media directories, gathers catalog collections, scans both trees, matches
// them, and hands the unmatched entries to the remover. Every log line of a
// pass carries the same run_id.
package reconcile
