// Package upgrade decides whether a candidate file is an upgrade over the
// files a library already holds for a movie.
package upgrade

import (
	"github.com/vmunix/arrgate/pkg/customformat"
	"github.com/vmunix/arrgate/pkg/release"
)

// ReasonNotUpgrade is the rejection reason when no profile prefers the candidate.
const ReasonNotUpgrade = "File is not a quality or custom format upgrade for any profile for movie."

// Candidate is the file under evaluation. Each metadata source is optional.
type Candidate struct {
	Path       string
	Quality    string
	FileInfo   *release.Info // parsed from the file name
	FolderInfo *release.Info // parsed from the containing folder
	ClientInfo *release.Info // parsed from the download client's title
}

// ExistingFile is a file already on record for the movie.
type ExistingFile struct {
	ID      int64
	Path    string
	Quality string           // empty when unknown; the file is skipped
	Formats customformat.Set // precomputed formats; nil to match from Release
	Release *release.Info
}

// Decision is the outcome of an evaluation.
type Decision struct {
	Accepted bool
	Reason   string // set when rejected
}

// Accept returns an accepting decision.
func Accept() Decision {
	return Decision{Accepted: true}
}

// Reject returns a rejecting decision with reason.
func Reject(reason string) Decision {
	return Decision{Reason: reason}
}

func (d Decision) String() string {
	if d.Accepted {
		return "accepted"
	}
	return "rejected: " + d.Reason
}

// Outcome describes how one profile/file comparison was resolved.
type Outcome string

const (
	OutcomeQualityHigher     Outcome = "quality higher"
	OutcomeQualityLower      Outcome = "quality lower"
	OutcomeFormatScoreHigher Outcome = "format score equal or higher"
	OutcomeFormatScoreLower  Outcome = "format score lower"
)

// Upgrade reports whether the outcome counts as an upgrade.
func (o Outcome) Upgrade() bool {
	return o == OutcomeQualityHigher || o == OutcomeFormatScoreHigher
}

// Pairing is one profile/file comparison.
type Pairing struct {
	Profile         string  `json:"profile"`
	FileID          int64   `json:"file_id"`
	FilePath        string  `json:"file_path"`
	ExistingQuality string  `json:"existing_quality"`
	QualityCompare  int     `json:"quality_compare"`
	PreferredScore  int     `json:"preferred_score"`
	ExistingScore   int     `json:"existing_score"` // only computed when quality does not already decide
	ScoreCompared   bool    `json:"score_compared"` // ExistingScore is meaningful
	Outcome         Outcome `json:"outcome"`
}

// Report is an evaluation with every comparison that led to it.
type Report struct {
	Decision         Decision
	CandidateFormats customformat.Set
	Pairings         []Pairing
	Skipped          []ExistingFile // files without a known quality
}
