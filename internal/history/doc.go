// Package history persists a record of every cleanup run in SQLite.
//
// Each run stores its counts and outcome, plus one row per asset entry that
// was removed (or that a dry run would have removed), so deletions can be
// audited after the fact with `cleanarr history`.
package history
