// Package textutil provides title cleanup helpers shared by the catalog
// adapters and the matcher.
//
// The primary use cases are:
//   - Stripping characters that cannot appear in asset file names from remote
//     collection titles
//   - Normalizing Unicode so titles read from different filesystems and
//     services compare byte-for-byte
package textutil
