package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vmunix/arrgate/internal/library"
	"github.com/vmunix/arrgate/pkg/quality"
	"github.com/vmunix/arrgate/pkg/release"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage movies and their files",
}

var libraryAddMovieCmd = &cobra.Command{
	Use:   "add-movie [flags] <title>",
	Short: "Add a movie",
	Long: `Add a movie to the library. Profiles default to quality.default from the config.

Examples:
  arrgate library add-movie --year 1995 Heat
  arrgate library add-movie --year 1999 --profile uhd --profile hd "The Matrix"`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryAddMovie,
}

var libraryMoviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List movies",
	Args:  cobra.NoArgs,
	RunE:  runLibraryMovies,
}

var libraryProfilesCmd = &cobra.Command{
	Use:   "set-profiles <movie-id> <profile>...",
	Short: "Replace a movie's quality profiles",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runLibrarySetProfiles,
}

var libraryAddFileCmd = &cobra.Command{
	Use:   "add-file [flags] <movie-id> <path>",
	Short: "Record an existing file for a movie",
	Long: `Record a file the library already holds. Quality is derived from the release
name (or the file name) unless --quality is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runLibraryAddFile,
}

var libraryFilesCmd = &cobra.Command{
	Use:   "files <movie-id>",
	Short: "List a movie's files",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryFiles,
}

var libraryRemoveFileCmd = &cobra.Command{
	Use:   "remove-file <file-id>",
	Short: "Forget a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemoveFile,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryAddMovieCmd, libraryMoviesCmd, libraryProfilesCmd,
		libraryAddFileCmd, libraryFilesCmd, libraryRemoveFileCmd)

	libraryAddMovieCmd.Flags().Int("year", 0, "Release year (required)")
	libraryAddMovieCmd.Flags().StringSlice("profile", nil, "Quality profile (repeatable, most important first)")
	_ = libraryAddMovieCmd.MarkFlagRequired("year")

	libraryAddFileCmd.Flags().String("quality", "", "Quality level (default: derived)")
	libraryAddFileCmd.Flags().String("release", "", "Original release name")
	libraryAddFileCmd.Flags().Int64("size", -1, "Size in bytes (default: size on disk)")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func runLibraryAddMovie(cmd *cobra.Command, args []string) error {
	year, _ := cmd.Flags().GetInt("year")
	profiles, _ := cmd.Flags().GetStringSlice("profile")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		profiles = cfg.Quality.Default
	}
	if _, err := cfg.Profiles(profiles); err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if existing, err := store.FindMovie(args[0], year); err == nil {
		return fmt.Errorf("%w: movie %d is already %s (%d)", library.ErrDuplicate, existing.ID, existing.Title, existing.Year)
	} else if !errors.Is(err, library.ErrNotFound) {
		return err
	}

	m := &library.Movie{Title: args[0], Year: year, Profiles: profiles}
	if err := store.AddMovie(m); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), m)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added movie %d: %s (%d) [%s]\n", m.ID, m.Title, m.Year, strings.Join(m.Profiles, ", "))
	return nil
}

func runLibraryMovies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	movies, err := store.ListMovies()
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), movies)
	}
	printMovies(cmd.OutOrStdout(), movies)
	return nil
}

func printMovies(w io.Writer, movies []*library.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies in library")
		return
	}
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10), m.Title, strconv.Itoa(m.Year), strings.Join(m.Profiles, ", "),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "TITLE", "YEAR", "PROFILES"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))
}

func runLibrarySetProfiles(cmd *cobra.Command, args []string) error {
	movieID, err := parseID(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := cfg.Profiles(args[1:]); err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.SetProfiles(movieID, args[1:]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Movie %d profiles: %s\n", movieID, strings.Join(args[1:], ", "))
	return nil
}

func runLibraryAddFile(cmd *cobra.Command, args []string) error {
	q, _ := cmd.Flags().GetString("quality")
	releaseName, _ := cmd.Flags().GetString("release")
	size, _ := cmd.Flags().GetInt64("size")

	movieID, err := parseID(args[0])
	if err != nil {
		return err
	}
	path, err := filepath.Abs(args[1])
	if err != nil {
		return err
	}
	if size < 0 {
		size = 0
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if q == "" {
		q = deriveQuality(path, releaseName)
	} else {
		movie, err := store.GetMovie(movieID)
		if err != nil {
			return err
		}
		profiles, err := cfg.Profiles(movie.Profiles)
		if err != nil {
			return err
		}
		if !acceptsQuality(profiles, q) {
			return fmt.Errorf("unknown quality %q: not a well-known level and not listed by profiles %s",
				q, strings.Join(movie.Profiles, ", "))
		}
	}

	f := &library.File{MovieID: movieID, Path: path, Quality: q, ReleaseName: releaseName, SizeBytes: size}
	if err := store.AddFile(f); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), f)
	}
	if q == quality.Unknown {
		q = "unknown quality"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added file %d to movie %d: %s (%s)\n", f.ID, movieID, path, q)
	return nil
}

// acceptsQuality reports whether q is a well-known level or one the
// movie's profiles rank.
func acceptsQuality(profiles []quality.Profile, q string) bool {
	if quality.IsKnown(q) {
		return true
	}
	for _, p := range profiles {
		if p.Index(q) >= 0 {
			return true
		}
	}
	return false
}

// deriveQuality parses the release name, falling back to the file name.
func deriveQuality(path, releaseName string) string {
	if releaseName != "" {
		if q := quality.FromRelease(release.Parse(releaseName)); q != quality.Unknown {
			return q
		}
	}
	return quality.FromRelease(release.Parse(path))
}

func runLibraryFiles(cmd *cobra.Command, args []string) error {
	movieID, err := parseID(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if _, err := store.GetMovie(movieID); err != nil {
		return err
	}
	files, err := store.ListFiles(movieID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), files)
	}
	printFiles(cmd.OutOrStdout(), files)
	return nil
}

func printFiles(w io.Writer, files []*library.File) {
	if len(files) == 0 {
		fmt.Fprintln(w, "No files")
		return
	}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		q := f.Quality
		if q == quality.Unknown {
			q = "-"
		}
		rows = append(rows, []string{
			strconv.FormatInt(f.ID, 10), q, formatSize(f.SizeBytes), f.Path,
		})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "QUALITY", "SIZE", "PATH"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))
}

func formatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

func runLibraryRemoveFile(cmd *cobra.Command, args []string) error {
	fileID, err := parseID(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	f, err := store.GetFile(fileID)
	if err != nil {
		return err
	}
	if err := store.DeleteFile(fileID); err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), f)
	}
	q := f.Quality
	if q == quality.Unknown {
		q = "unknown quality"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed file %d from movie %d: %s (%s)\n", f.ID, f.MovieID, f.Path, q)
	return nil
}
