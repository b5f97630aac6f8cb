// Package remover deletes unmatched artwork from the asset store, or in dry-run
// mode describes what it would delete.
//
// Flat stores lose each listed file; nested stores lose the whole title
// directory. Every entry yields exactly one Action in the Report, so the final
// count always equals the number of unmatched entries.
package remover
