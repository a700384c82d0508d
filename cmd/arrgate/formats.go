package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrgate/internal/config"
	"github.com/vmunix/arrgate/pkg/customformat"
	"github.com/vmunix/arrgate/pkg/quality"
	"github.com/vmunix/arrgate/pkg/release"
)

var formatsCmd = &cobra.Command{
	Use:   "formats [flags] <release-name>...",
	Short: "Show custom formats and profile scores for release names",
	Long: `Parse release names and show the quality, matched custom formats and the
score each configured profile gives them.

Examples:
  arrgate formats "Heat.1995.2160p.UHD.BluRay.x265.HDR.TrueHD.Atmos-GRP"
  arrgate formats --title "Heat" "Heat.1995.1080p.WEB-DL.DDP5.1-GRP"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormatsCmd,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
	formatsCmd.Flags().String("title", "", "Movie title (default: parsed from the name)")
}

// formatsResult is the JSON form of one analyzed release.
type formatsResult struct {
	Name    string         `json:"name"`
	Title   string         `json:"title"`
	Year    int            `json:"year,omitempty"`
	Quality string         `json:"quality"`
	Formats []string       `json:"formats"`
	Scores  map[string]int `json:"scores"`
}

func runFormatsCmd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := analyzeReleases(cfg, args, title)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), results)
	}
	printFormatsResults(cmd.OutOrStdout(), results, cfg.ProfileNames())
	return nil
}

// analyzeReleases matches each name against the configured formats and
// scores the result with every profile.
func analyzeReleases(cfg *config.Config, names []string, title string) ([]formatsResult, error) {
	formats, err := cfg.CustomFormats()
	if err != nil {
		return nil, err
	}
	matcher := customformat.NewRuleMatcher(formats)

	profiles, err := cfg.Profiles(cfg.ProfileNames())
	if err != nil {
		return nil, err
	}

	results := make([]formatsResult, 0, len(names))
	for _, name := range names {
		info := release.Parse(name)
		movie := customformat.Movie{Title: info.Title, Year: info.Year}
		if title != "" {
			movie.Title = title
		}

		matched := matcher.Match(info, movie)
		r := formatsResult{
			Name:    name,
			Title:   info.Title,
			Year:    info.Year,
			Quality: quality.FromRelease(info),
			Formats: matched.Names(),
			Scores:  make(map[string]int, len(profiles)),
		}
		for _, p := range profiles {
			r.Scores[p.Name] = p.Score(matched)
		}
		results = append(results, r)
	}
	return results, nil
}

func printFormatsResults(w io.Writer, results []formatsResult, profiles []string) {
	headers := []string{"RELEASE", "QUALITY", "FORMATS"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft}
	for _, p := range profiles {
		headers = append(headers, strings.ToUpper(p))
		aligns = append(aligns, alignRight)
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		q := r.Quality
		if q == quality.Unknown {
			q = "unknown"
		}
		row := []string{r.Name, q, strings.Join(r.Formats, ", ")}
		for _, p := range profiles {
			row = append(row, strconv.Itoa(r.Scores[p]))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(w, renderTable(headers, rows, aligns))
}
