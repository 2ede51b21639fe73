package ranking

import (
	"sort"
	"strings"
	"time"

	"test-checker-backend/internal/answerkey"
)

// TieBreak selects how entries with equal correct counts are ordered for
// display. The rank numbers themselves never depend on it.
type TieBreak int

const (
	// TieBreakTimestamp puts earlier submissions first within a tie group.
	// Used for the live leaderboard.
	TieBreakTimestamp TieBreak = iota
	// TieBreakPercent puts higher correct/total ratios first within a tie
	// group, then earlier submissions. Used for certificate ordering.
	TieBreakPercent
)

// ScoredResult is one graded submission joined with the submitter's profile.
type ScoredResult struct {
	UserID      int64
	FirstName   string
	LastName    string
	PhoneNumber string
	Correct     int
	Total       int
	AnswersRaw  string
	SubmittedAt time.Time
}

// FullName joins first and last name, trimming the surrounding whitespace.
func (r ScoredResult) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// Percent is the score as a percentage rounded to one decimal place.
func (r ScoredResult) Percent() float64 {
	return answerkey.Percent(r.Correct, r.Total)
}

func (r ScoredResult) ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Entry is a scored result with its computed display rank.
type Entry struct {
	ScoredResult
	Rank int
}

// DropUnnamed removes results whose display name is empty or
// whitespace-only. Run it before Rank so dropped entries do not leave gaps in
// the rank numbering.
func DropUnnamed(results []ScoredResult) []ScoredResult {
	kept := make([]ScoredResult, 0, len(results))
	for _, r := range results {
		if r.FullName() != "" {
			kept = append(kept, r)
		}
	}
	return kept
}

// Rank orders results by correct count descending and assigns dense 1-based
// ranks: tied entries share a rank and the next distinct score gets the
// previous rank plus one, regardless of how many entries were tied.
func Rank(results []ScoredResult, tb TieBreak) []Entry {
	sorted := make([]ScoredResult, len(results))
	copy(sorted, results)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Correct != b.Correct {
			return a.Correct > b.Correct
		}
		if tb == TieBreakPercent && a.ratio() != b.ratio() {
			return a.ratio() > b.ratio()
		}
		return a.SubmittedAt.Before(b.SubmittedAt)
	})

	entries := make([]Entry, 0, len(sorted))
	rank := 0
	lastCorrect := -1
	for _, r := range sorted {
		if r.Correct != lastCorrect {
			rank++
			lastCorrect = r.Correct
		}
		entries = append(entries, Entry{ScoredResult: r, Rank: rank})
	}
	return entries
}
