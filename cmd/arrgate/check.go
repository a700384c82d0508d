package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrgate/internal/importer"
	"github.com/vmunix/arrgate/internal/upgrade"
	"github.com/vmunix/arrgate/pkg/customformat"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Decide whether files should be imported for a movie",
	Long: `Run the import decision chain for one or more files or release folders.

A folder resolves to its largest video file and its name is used as release
metadata.

Examples:
  arrgate check --movie 1 /downloads/Heat.1995.1080p.BluRay.x264-GRP
  arrgate check --movie 1 --client "Heat 1995 2160p WEB-DL" heat.mkv
  arrgate check --movie 1 --explain --json /downloads/*.mkv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckCmd,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Int64("movie", 0, "Library movie ID (required)")
	checkCmd.Flags().String("folder", "", "Release folder name")
	checkCmd.Flags().String("client", "", "Download client title")
	checkCmd.Flags().Bool("explain", false, "Show every profile/file comparison")
	_ = checkCmd.MarkFlagRequired("movie")
}

// checkResult is the JSON form of one decision.
type checkResult struct {
	EvaluationID     string            `json:"evaluation_id"`
	Path             string            `json:"path"`
	Quality          string            `json:"quality,omitempty"`
	Accepted         bool              `json:"accepted"`
	Reason           string            `json:"reason,omitempty"`
	RejectedBy       string            `json:"rejected_by,omitempty"`
	CandidateFormats []string          `json:"candidate_formats,omitempty"`
	Pairings         []upgrade.Pairing `json:"pairings,omitempty"`
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	movieID, _ := cmd.Flags().GetInt64("movie")
	folder, _ := cmd.Flags().GetString("folder")
	client, _ := cmd.Flags().GetString("client")
	explain, _ := cmd.Flags().GetBool("explain")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	formats, err := cfg.CustomFormats()
	if err != nil {
		return err
	}
	matcher := customformat.NewRuleMatcher(formats)

	builder := importer.NewBuilder(store, cfg)
	lms := make([]*importer.LocalMovie, 0, len(args))
	for _, path := range args {
		lm, err := builder.Build(movieID, path, importer.Source{Folder: folder, Client: client})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		lms = append(lms, lm)
	}

	ctx := cmd.Context()
	results, err := importer.NewPipeline(log, importer.DefaultSpecifications(matcher)...).DecideAll(ctx, lms)
	if err != nil {
		return err
	}

	out := make([]checkResult, len(results))
	for i, r := range results {
		out[i] = checkResult{
			EvaluationID: r.EvaluationID,
			Path:         r.Path,
			Quality:      lms[i].Candidate.Quality,
			Accepted:     r.Decision.Accepted,
			Reason:       r.Decision.Reason,
			RejectedBy:   r.RejectedBy,
		}
		if explain && (r.Decision.Accepted || r.RejectedBy == "upgrade") {
			report, err := importer.NewUpgradeSpecification(matcher).Explain(ctx, lms[i], log)
			if err != nil {
				return err
			}
			out[i].CandidateFormats = report.CandidateFormats.Names()
			out[i].Pairings = report.Pairings
		}
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), out)
	}
	printCheckResults(cmd.OutOrStdout(), out, explain)
	return nil
}

func printCheckResults(w io.Writer, results []checkResult, explain bool) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		quality := r.Quality
		if quality == "" {
			quality = "unknown quality"
		}
		if r.Accepted {
			fmt.Fprintf(w, "ACCEPTED  %s (%s)\n", r.Path, quality)
		} else {
			fmt.Fprintf(w, "REJECTED  %s (%s)\n", r.Path, quality)
			fmt.Fprintf(w, "  %s [%s]\n", r.Reason, r.RejectedBy)
		}

		if !explain {
			continue
		}
		formats := "none"
		if len(r.CandidateFormats) > 0 {
			formats = strings.Join(r.CandidateFormats, ", ")
		}
		fmt.Fprintf(w, "  Formats: %s\n", formats)
		if len(r.Pairings) == 0 {
			fmt.Fprintln(w, "  No existing files to compare against")
			continue
		}
		fmt.Fprintln(w, pairingTable(r.Pairings))
	}
}

func pairingTable(pairings []upgrade.Pairing) string {
	rows := make([][]string, 0, len(pairings))
	for _, p := range pairings {
		existing := "-"
		if p.ScoreCompared {
			existing = strconv.Itoa(p.ExistingScore)
		}
		rows = append(rows, []string{
			p.Profile,
			strconv.FormatInt(p.FileID, 10),
			p.ExistingQuality,
			strconv.Itoa(p.QualityCompare),
			strconv.Itoa(p.PreferredScore),
			existing,
			string(p.Outcome),
		})
	}
	return renderTable(
		[]string{"PROFILE", "FILE", "EXISTING QUALITY", "QUALITY", "SCORE", "EXISTING SCORE", "OUTCOME"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}
