package importer

import "errors"

var (
	// ErrNoVideoFile indicates no video file was found at the candidate path.
	ErrNoVideoFile = errors.New("no video file found")

	// ErrNoProfiles indicates the movie has no quality profiles assigned.
	ErrNoProfiles = errors.New("movie has no quality profiles")

	// ErrUnknownProfile indicates a movie references a profile that is not configured.
	ErrUnknownProfile = errors.New("movie references unknown quality profile")
)
