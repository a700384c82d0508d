package main

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrgate/internal/config"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List quality profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfilesCmd,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

type profileJSON struct {
	Name      string         `json:"name"`
	Default   bool           `json:"default"`
	Qualities []string       `json:"qualities"`
	Formats   map[string]int `json:"formats,omitempty"`
}

func runProfilesCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	profiles := listProfiles(cfg)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), profiles)
	}
	printProfiles(cmd.OutOrStdout(), profiles)
	return nil
}

func listProfiles(cfg *config.Config) []profileJSON {
	out := make([]profileJSON, 0, len(cfg.Quality.Profiles))
	for _, name := range cfg.ProfileNames() {
		p := cfg.Quality.Profiles[name]
		out = append(out, profileJSON{
			Name:      name,
			Default:   slices.Contains(cfg.Quality.Default, name),
			Qualities: p.Qualities,
			Formats:   p.Formats,
		})
	}
	return out
}

func printProfiles(w io.Writer, profiles []profileJSON) {
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No quality profiles configured")
		return
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		name := p.Name
		if p.Default {
			name += " *"
		}
		rows = append(rows, []string{name, strings.Join(p.Qualities, " > "), formatScores(p.Formats)})
	}
	fmt.Fprintf(w, "Quality Profiles (%d), qualities best first, * = default:\n", len(profiles))
	fmt.Fprintln(w, renderTable([]string{"NAME", "QUALITIES", "FORMAT SCORES"}, rows, nil))
}

func formatScores(scores map[string]int) string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%+d", name, scores[name])
	}
	return strings.Join(parts, ", ")
}
