// Package match decides which asset entries no longer correspond to a media
// title or catalog collection.
//
// Substring mode keeps an asset whose title occurs anywhere in a reference
// title of the same kind; exact mode requires equal titles. Both sides are
// NFC-normalized first.
package match
