// Package library tracks movies, their quality profiles, and the files
// already imported for them.
package library

import "time"

// Movie is a title tracked by the library.
type Movie struct {
	ID       int64
	Title    string
	Year     int
	Profiles []string // quality profile names, in priority order
	AddedAt  time.Time
}

// File is a media file already imported for a movie.
type File struct {
	ID          int64
	MovieID     int64
	Path        string
	Quality     string // empty when unknown
	ReleaseName string // scene name the file was imported from, if known
	SizeBytes   int64
	AddedAt     time.Time
}
