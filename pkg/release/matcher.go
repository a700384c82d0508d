package release

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the outcome of a fuzzy title comparison.
type MatchResult struct {
	Title      string
	Score      float64 // Jaro-Winkler similarity, 0.0-1.0
	Confidence MatchConfidence
}

// MatchTitle finds the candidate closest to parsed using Jaro-Winkler
// similarity on cleaned titles. Sequel numbers must agree: a shared number
// earns a small bonus, a mismatch or a missing number is penalized.
func MatchTitle(parsed string, candidates []string) MatchResult {
	best := MatchResult{Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	cleanParsed := CleanTitle(parsed)
	parsedNumbers := numberRegex.FindAllString(cleanParsed, -1)

	for _, candidate := range candidates {
		cleanCandidate := CleanTitle(candidate)
		score := float64(edlib.JaroWinklerSimilarity(cleanParsed, cleanCandidate))
		score = adjustForNumbers(score, parsedNumbers, numberRegex.FindAllString(cleanCandidate, -1))
		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Title = ""
	}
	return best
}

// SameTitle reports whether a parsed title refers to the given title with at
// least medium confidence.
func SameTitle(parsed, title string) bool {
	if parsed == "" || title == "" {
		return false
	}
	return MatchTitle(parsed, []string{title}).Confidence >= ConfidenceMedium
}

func adjustForNumbers(score float64, parsedNums, candidateNums []string) float64 {
	if len(parsedNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range parsedNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
