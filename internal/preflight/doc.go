// Package preflight provides readiness checks for the filesystem paths and
// media server that cleanarr depends on.
//
// These checks run in two contexts:
//   - The reconcile pipeline calls RunAll before scanning. A failed check
//     aborts the run before anything is read or removed.
//   - The CLI "cleanarr check" command renders every result as a table.
//
// The asset store only needs write access when the run will remove files.
package preflight
