// Package mediascan walks media library roots and classifies each title
// folder as a movie or a series.
//
// Libraries follow a two-level convention: Title/Season NN or Title/Specials
// for series, and a bare Title folder for movies.
package mediascan
