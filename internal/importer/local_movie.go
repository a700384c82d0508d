package importer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vmunix/arrgate/internal/config"
	"github.com/vmunix/arrgate/internal/library"
	"github.com/vmunix/arrgate/internal/upgrade"
	"github.com/vmunix/arrgate/pkg/customformat"
	"github.com/vmunix/arrgate/pkg/quality"
	"github.com/vmunix/arrgate/pkg/release"
)

// LocalMovie is a file on disk being considered for import into a movie.
type LocalMovie struct {
	Movie     *library.Movie
	Profiles  []quality.Profile
	Candidate upgrade.Candidate
	SizeBytes int64
	Existing  []upgrade.ExistingFile
}

// Target returns the movie as the format matcher sees it.
func (lm *LocalMovie) Target() customformat.Movie {
	return customformat.Movie{Title: lm.Movie.Title, Year: lm.Movie.Year}
}

// MovieSource is the part of the library the builder reads.
type MovieSource interface {
	GetMovie(id int64) (*library.Movie, error)
	ListFiles(movieID int64) ([]*library.File, error)
}

// ProfileSource resolves profile names to configured profiles.
type ProfileSource interface {
	Profiles(names []string) ([]quality.Profile, error)
}

// Source names the optional metadata sources for a candidate.
type Source struct {
	Folder string // release folder name; derived from the path when it is a directory
	Client string // download client title
}

// Builder assembles LocalMovies from the library and configuration.
type Builder struct {
	movies   MovieSource
	profiles ProfileSource
}

// NewBuilder creates a builder.
func NewBuilder(movies MovieSource, profiles ProfileSource) *Builder {
	return &Builder{movies: movies, profiles: profiles}
}

// Build loads movieID with its profiles and files and parses the candidate at
// path. A directory path resolves to its largest non-sample video. Relative
// paths are made absolute so they compare equal to recorded files.
func (b *Builder) Build(movieID int64, path string, src Source) (*LocalMovie, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve candidate path: %w", err)
	}
	file, folder, size, err := resolveVideo(abs)
	if err != nil {
		return nil, err
	}
	if src.Folder == "" {
		src.Folder = folder
	}

	movie, err := b.movies.GetMovie(movieID)
	if err != nil {
		return nil, fmt.Errorf("load movie: %w", err)
	}
	if len(movie.Profiles) == 0 {
		return nil, fmt.Errorf("%w: movie %d", ErrNoProfiles, movie.ID)
	}
	profiles, err := b.profiles.Profiles(movie.Profiles)
	if err != nil {
		if errors.Is(err, config.ErrUnknownProfile) {
			return nil, fmt.Errorf("%w: %w", ErrUnknownProfile, err)
		}
		return nil, fmt.Errorf("resolve profiles: %w", err)
	}

	files, err := b.movies.ListFiles(movie.ID)
	if err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}

	return &LocalMovie{
		Movie:     movie,
		Profiles:  profiles,
		Candidate: NewCandidate(file, src),
		SizeBytes: size,
		Existing:  ExistingFiles(files),
	}, nil
}

// NewCandidate parses every available name of the file at path. The
// candidate's quality comes from the first source that yields one, in the
// order file name, folder, client title.
func NewCandidate(path string, src Source) upgrade.Candidate {
	c := upgrade.Candidate{Path: path, FileInfo: parsed(filepath.Base(path))}
	c.FolderInfo = parsed(src.Folder)
	c.ClientInfo = parsed(src.Client)

	for _, info := range []*release.Info{c.FileInfo, c.FolderInfo, c.ClientInfo} {
		if info == nil {
			continue
		}
		if q := quality.FromRelease(*info); q != quality.Unknown {
			c.Quality = q
			break
		}
	}
	return c
}

func parsed(name string) *release.Info {
	if name == "" {
		return nil
	}
	info := release.Parse(name)
	return &info
}

// ExistingFiles converts library records for the evaluator. A file's formats
// are matched from its recorded release name, or from its file name when no
// release name was stored.
func ExistingFiles(files []*library.File) []upgrade.ExistingFile {
	out := make([]upgrade.ExistingFile, 0, len(files))
	for _, f := range files {
		name := f.ReleaseName
		if name == "" {
			name = filepath.Base(f.Path)
		}
		out = append(out, upgrade.ExistingFile{
			ID:      f.ID,
			Path:    f.Path,
			Quality: f.Quality,
			Release: parsed(name),
		})
	}
	return out
}
