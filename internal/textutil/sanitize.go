package textutil

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// illegalTitleChars matches characters that cannot be part of an asset file
// name, including ASCII control characters.
var illegalTitleChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]+`)

// SanitizeCollectionTitle removes filesystem-illegal and control characters
// from a remote collection title so it can be compared with asset names.
// Surrounding whitespace is preserved; "Best: Of/2020" becomes "Best Of2020".
func SanitizeCollectionTitle(title string) string {
	return illegalTitleChars.ReplaceAllString(title, "")
}

// NormalizeTitle returns the NFC form of title. macOS filesystems hand back
// decomposed names while media servers report composed ones.
func NormalizeTitle(title string) string {
	return norm.NFC.String(title)
}
