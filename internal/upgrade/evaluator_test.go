package upgrade_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/arrgate/internal/upgrade"
	"github.com/vmunix/arrgate/pkg/customformat"
	"github.com/vmunix/arrgate/pkg/customformat/mocks"
	"github.com/vmunix/arrgate/pkg/quality"
	"github.com/vmunix/arrgate/pkg/release"
	"go.uber.org/mock/gomock"
)

type logEntry struct {
	level slog.Level
	msg   string
}

// recorder captures diagnostics for assertions.
type recorder struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recorder) Log(_ context.Context, level slog.Level, msg string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg})
}

func (r *recorder) count(level slog.Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

var movie = customformat.Movie{Title: "Test Movie", Year: 2024}

// tiers orders SD < HD < UHD (best first).
func tiers(scores map[string]int) quality.Profile {
	return quality.Profile{Name: "tiers", Qualities: []string{"UHD", "HD", "SD"}, FormatScores: scores}
}

func info(name string) *release.Info {
	i := release.Parse(name)
	return &i
}

func TestEvaluate_NoExistingFilesAccepts(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)
	matcher.EXPECT().Match(gomock.Any(), movie).Return(customformat.NewSet()).AnyTimes()

	e := upgrade.NewEvaluator(matcher, nil)
	profiles := [][]quality.Profile{nil, {tiers(nil)}, {tiers(map[string]int{"Remux": -100})}}
	for _, ps := range profiles {
		d, err := e.Evaluate(context.Background(), ps, movie,
			upgrade.Candidate{Path: "/dl/a.mkv", Quality: "SD", FileInfo: info("Test.Movie.2024.HDTV-A")}, nil)
		require.NoError(t, err)
		assert.True(t, d.Accepted)
		assert.Empty(t, d.Reason)
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	remux := map[string]int{"Remux": 5}

	tests := []struct {
		name             string
		profile          quality.Profile
		candidateQuality string
		candidateFormats customformat.Set
		existingQuality  string
		existingFormats  customformat.Set
		wantAccepted     bool
	}{
		{"quality strictly higher", tiers(nil), "HD", customformat.NewSet(), "SD", customformat.NewSet(), true},
		{"quality strictly lower", tiers(nil), "HD", customformat.NewSet(), "UHD", customformat.NewSet(), false},
		{"same quality better format score", tiers(remux), "HD", customformat.NewSet("Remux"), "HD", customformat.NewSet(), true},
		{"same quality worse format score", tiers(remux), "HD", customformat.NewSet(), "HD", customformat.NewSet("Remux"), false},
		{"same quality equal format score", tiers(remux), "HD", customformat.NewSet("Remux"), "HD", customformat.NewSet("Remux"), true},
		{"same quality no scores", tiers(nil), "HD", customformat.NewSet(), "HD", customformat.NewSet(), true},
		{"higher quality beats any format score", tiers(map[string]int{"Remux": 1000}), "UHD", customformat.NewSet(), "HD", customformat.NewSet("Remux"), true},
		{"lower quality ignores format score", tiers(map[string]int{"Remux": 1000}), "SD", customformat.NewSet("Remux"), "HD", customformat.NewSet(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			matcher := mocks.NewMockMatcher(ctrl)
			candidateInfo := info("Test.Movie.2024.1080p.BluRay.x264-A")
			matcher.EXPECT().Match(*candidateInfo, movie).Return(tt.candidateFormats).Times(1)

			e := upgrade.NewEvaluator(matcher, nil)
			d, err := e.Evaluate(context.Background(), []quality.Profile{tt.profile}, movie,
				upgrade.Candidate{Path: "/dl/new.mkv", Quality: tt.candidateQuality, FileInfo: candidateInfo},
				[]upgrade.ExistingFile{{ID: 1, Path: "/movies/old.mkv", Quality: tt.existingQuality, Formats: tt.existingFormats}},
			)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccepted, d.Accepted)
			if !tt.wantAccepted {
				assert.Equal(t, upgrade.ReasonNotUpgrade, d.Reason)
			}
		})
	}
}

func TestEvaluate_ScoreBoundary(t *testing.T) {
	// Existing file scores 10. Candidate at 9 must lose, at 10 and 11 must win.
	profile := tiers(map[string]int{"Existing": 10, "Nine": 9, "Ten": 10, "Eleven": 11})

	for format, want := range map[string]bool{"Nine": false, "Ten": true, "Eleven": true} {
		t.Run(format, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			matcher := mocks.NewMockMatcher(ctrl)
			matcher.EXPECT().Match(gomock.Any(), movie).Return(customformat.NewSet(format))

			e := upgrade.NewEvaluator(matcher, nil)
			d, err := e.Evaluate(context.Background(), []quality.Profile{profile}, movie,
				upgrade.Candidate{Quality: "HD", ClientInfo: info("Test.Movie.2024-A")},
				[]upgrade.ExistingFile{{ID: 1, Quality: "HD", Formats: customformat.NewSet("Existing")}},
			)
			require.NoError(t, err)
			assert.Equal(t, want, d.Accepted)
		})
	}
}

func TestEvaluate_CandidateFormatsAreUnion(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	file := info("Test.Movie.2024.1080p.BluRay.REMUX-A.mkv")
	folder := info("Test.Movie.2024.1080p.BluRay.REMUX.HDR-A")
	matcher.EXPECT().Match(*file, movie).Return(customformat.NewSet("Remux"))
	matcher.EXPECT().Match(*folder, movie).Return(customformat.NewSet("Remux", "HDR"))

	// Remux matched twice must count once: 5 + 10 = 15, not 20.
	profile := tiers(map[string]int{"Remux": 5, "HDR": 10, "Existing": 16})

	e := upgrade.NewEvaluator(matcher, nil)
	report, err := e.Explain(context.Background(), []quality.Profile{profile}, movie,
		upgrade.Candidate{Quality: "HD", FileInfo: file, FolderInfo: folder},
		[]upgrade.ExistingFile{{ID: 7, Quality: "HD", Formats: customformat.NewSet("Existing")}},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"HDR", "Remux"}, report.CandidateFormats.Names())
	require.Len(t, report.Pairings, 1)
	assert.Equal(t, 15, report.Pairings[0].PreferredScore)
	assert.Equal(t, 16, report.Pairings[0].ExistingScore)
	assert.Equal(t, upgrade.OutcomeFormatScoreLower, report.Pairings[0].Outcome)
	assert.False(t, report.Decision.Accepted)
}

func TestEvaluate_NoCandidateMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl) // no calls expected

	// Empty candidate formats score 0; a negative existing score still loses.
	profile := tiers(map[string]int{"Bad": -5})
	e := upgrade.NewEvaluator(matcher, nil)
	d, err := e.Evaluate(context.Background(), []quality.Profile{profile}, movie,
		upgrade.Candidate{Quality: "HD"},
		[]upgrade.ExistingFile{{ID: 1, Quality: "HD", Formats: customformat.NewSet("Bad")}},
	)
	require.NoError(t, err)
	assert.True(t, d.Accepted)
}

func TestEvaluate_AnyProfileSuffices(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	strict := quality.Profile{Name: "strict", Qualities: []string{"UHD", "HD"}}
	lenient := quality.Profile{Name: "lenient", Qualities: []string{"HD", "UHD"}}

	e := upgrade.NewEvaluator(matcher, nil)
	existing := []upgrade.ExistingFile{{ID: 1, Quality: "UHD"}}

	d, err := e.Evaluate(context.Background(), []quality.Profile{strict}, movie, upgrade.Candidate{Quality: "HD"}, existing)
	require.NoError(t, err)
	assert.False(t, d.Accepted)

	d, err = e.Evaluate(context.Background(), []quality.Profile{strict, lenient}, movie, upgrade.Candidate{Quality: "HD"}, existing)
	require.NoError(t, err)
	assert.True(t, d.Accepted)
}

func TestEvaluate_AnyFileSuffices(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	e := upgrade.NewEvaluator(matcher, nil)
	d, err := e.Evaluate(context.Background(), []quality.Profile{tiers(nil)}, movie,
		upgrade.Candidate{Quality: "HD"},
		[]upgrade.ExistingFile{{ID: 1, Quality: "UHD"}, {ID: 2, Quality: "SD"}},
	)
	require.NoError(t, err)
	assert.True(t, d.Accepted)
}

func TestEvaluate_UnknownQualityIsFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)
	e := upgrade.NewEvaluator(matcher, nil)

	_, err := e.Evaluate(context.Background(), []quality.Profile{tiers(nil)}, movie,
		upgrade.Candidate{Quality: "HD"},
		[]upgrade.ExistingFile{{ID: 3, Quality: "Remux-2160p"}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, quality.ErrUnknownQuality)
	assert.Contains(t, err.Error(), `profile "tiers"`)

	_, err = e.Evaluate(context.Background(), []quality.Profile{tiers(nil)}, movie,
		upgrade.Candidate{Quality: "CAM"},
		[]upgrade.ExistingFile{{ID: 3, Quality: "HD"}},
	)
	assert.ErrorIs(t, err, quality.ErrUnknownQuality)
}

func TestEvaluate_FaultInLaterProfileStillSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)
	e := upgrade.NewEvaluator(matcher, nil)

	broken := quality.Profile{Name: "broken", Qualities: []string{"UHD"}}
	_, err := e.Evaluate(context.Background(), []quality.Profile{tiers(nil), broken}, movie,
		upgrade.Candidate{Quality: "HD"},
		[]upgrade.ExistingFile{{ID: 1, Quality: "SD"}},
	)
	assert.ErrorIs(t, err, quality.ErrUnknownQuality)
}

func TestEvaluate_MissingQualitySkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)
	diag := &recorder{}
	e := upgrade.NewEvaluator(matcher, diag)

	// Only file lacks quality: nothing to compare, but files exist, so rejected.
	report, err := e.Explain(context.Background(), []quality.Profile{tiers(nil)}, movie,
		upgrade.Candidate{Quality: "HD"},
		[]upgrade.ExistingFile{{ID: 1, Path: "/movies/unknown.mkv"}},
	)
	require.NoError(t, err)
	assert.False(t, report.Decision.Accepted)
	assert.Equal(t, upgrade.ReasonNotUpgrade, report.Decision.Reason)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, int64(1), report.Skipped[0].ID)
	assert.Empty(t, report.Pairings)
	assert.Equal(t, 1, diag.count(upgrade.LevelTrace))

	// A skipped file does not hide an upgrade over another file.
	d, err := e.Evaluate(context.Background(), []quality.Profile{tiers(nil)}, movie,
		upgrade.Candidate{Quality: "HD"},
		[]upgrade.ExistingFile{{ID: 1}, {ID: 2, Quality: "SD"}},
	)
	require.NoError(t, err)
	assert.True(t, d.Accepted)
}

func TestEvaluate_ExistingFormatsMatchedOncePerFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	existingInfo := info("Test.Movie.2024.1080p.BluRay.REMUX-OLD")
	matcher.EXPECT().Match(*existingInfo, movie).Return(customformat.NewSet("Remux")).Times(1)

	profiles := []quality.Profile{
		{Name: "a", Qualities: []string{"HD"}, FormatScores: map[string]int{"Remux": 5}},
		{Name: "b", Qualities: []string{"HD"}, FormatScores: map[string]int{"Remux": -5}},
		{Name: "c", Qualities: []string{"HD"}},
	}

	e := upgrade.NewEvaluator(matcher, nil)
	report, err := e.Explain(context.Background(), profiles, movie,
		upgrade.Candidate{Quality: "HD"},
		[]upgrade.ExistingFile{{ID: 1, Quality: "HD", Release: existingInfo}},
	)
	require.NoError(t, err)
	require.Len(t, report.Pairings, 3)
	assert.Equal(t, upgrade.OutcomeFormatScoreLower, report.Pairings[0].Outcome)
	assert.Equal(t, upgrade.OutcomeFormatScoreHigher, report.Pairings[1].Outcome)
	assert.Equal(t, upgrade.OutcomeFormatScoreHigher, report.Pairings[2].Outcome)
	assert.True(t, report.Decision.Accepted)
}

func TestEvaluate_LowerQualityNeverMatchesExistingFormats(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl) // Match must not be called for the existing file

	e := upgrade.NewEvaluator(matcher, nil)
	report, err := e.Explain(context.Background(), []quality.Profile{tiers(nil)}, movie,
		upgrade.Candidate{Quality: "SD"},
		[]upgrade.ExistingFile{{ID: 1, Quality: "HD", Release: info("Test.Movie.2024.720p.WEB-DL-OLD")}},
	)
	require.NoError(t, err)
	require.Len(t, report.Pairings, 1)
	assert.Equal(t, upgrade.OutcomeQualityLower, report.Pairings[0].Outcome)
	assert.False(t, report.Pairings[0].ScoreCompared)
	assert.Equal(t, -1, report.Pairings[0].QualityCompare)
}

func TestEvaluate_DiagnosticsDoNotChangeDecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	run := func(diag upgrade.Diagnostics) upgrade.Decision {
		d, err := upgrade.NewEvaluator(matcher, diag).Evaluate(context.Background(), []quality.Profile{tiers(nil)}, movie,
			upgrade.Candidate{Quality: "HD"},
			[]upgrade.ExistingFile{{ID: 1, Quality: "UHD"}, {ID: 2}},
		)
		require.NoError(t, err)
		return d
	}

	diag := &recorder{}
	assert.Equal(t, run(nil), run(diag))
	assert.Equal(t, 1, diag.count(upgrade.LevelTrace))
	assert.Positive(t, diag.count(slog.LevelDebug))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "accepted", upgrade.Accept().String())
	assert.Equal(t, "rejected: nope", upgrade.Reject("nope").String())
}

func TestOutcome_Upgrade(t *testing.T) {
	assert.True(t, upgrade.OutcomeQualityHigher.Upgrade())
	assert.True(t, upgrade.OutcomeFormatScoreHigher.Upgrade())
	assert.False(t, upgrade.OutcomeQualityLower.Upgrade())
	assert.False(t, upgrade.OutcomeFormatScoreLower.Upgrade())
}
