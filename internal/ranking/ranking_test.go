package ranking

import (
	"testing"
	"time"
)

func result(name string, correct, total int, submittedAt time.Time) ScoredResult {
	return ScoredResult{FirstName: name, Correct: correct, Total: total, SubmittedAt: submittedAt}
}

func TestRankDense(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var results []ScoredResult
	for i, score := range []int{10, 10, 8, 8, 8, 5} {
		results = append(results, result("u", score, 10, base.Add(time.Duration(i)*time.Minute)))
	}

	entries := Rank(results, TieBreakTimestamp)

	wantRanks := []int{1, 1, 2, 2, 2, 3}
	if len(entries) != len(wantRanks) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantRanks))
	}
	for i, e := range entries {
		if e.Rank != wantRanks[i] {
			t.Fatalf("entry %d rank = %d, want %d (full: %+v)", i, e.Rank, wantRanks[i], entries)
		}
	}
}

func TestRankTimestampTieBreak(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []ScoredResult{
		result("late", 5, 10, base.Add(time.Hour)),
		result("early", 5, 10, base),
	}

	entries := Rank(results, TieBreakTimestamp)

	if entries[0].FirstName != "early" || entries[1].FirstName != "late" {
		t.Fatalf("display order = [%s %s], want earlier submission first", entries[0].FirstName, entries[1].FirstName)
	}
	if entries[0].Rank != 1 || entries[1].Rank != 1 {
		t.Fatalf("tied entries must share rank 1, got %d and %d", entries[0].Rank, entries[1].Rank)
	}
}

func TestRankPercentTieBreak(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	// Same correct count, different totals: 9/10 beats 9/20 for display order.
	results := []ScoredResult{
		result("lowratio", 9, 20, base),
		result("highratio", 9, 10, base.Add(time.Hour)),
	}

	entries := Rank(results, TieBreakPercent)

	if entries[0].FirstName != "highratio" {
		t.Fatalf("display order starts with %s, want highratio", entries[0].FirstName)
	}
	if entries[0].Rank != entries[1].Rank {
		t.Fatalf("ratio tie-break must not change ranks: got %d and %d", entries[0].Rank, entries[1].Rank)
	}
}

func TestDropUnnamedBeforeRanking(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []ScoredResult{
		result("Ali", 9, 10, base),
		result("  ", 10, 10, base.Add(time.Minute)),
		result("Vali", 9, 10, base.Add(2*time.Minute)),
	}

	entries := Rank(DropUnnamed(results), TieBreakTimestamp)

	if len(entries) != 2 {
		t.Fatalf("got %d entries after filtering, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Rank != 1 {
			t.Fatalf("dropped top entry must not leave a rank gap: got rank %d for %s", e.Rank, e.FirstName)
		}
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ali", "Valiyev", "Ali Valiyev"},
		{"Ali", "", "Ali"},
		{"", "Valiyev", "Valiyev"},
		{"  ", "  ", ""},
	}
	for _, tc := range tests {
		r := ScoredResult{FirstName: tc.first, LastName: tc.last}
		if got := r.FullName(); got != tc.want {
			t.Fatalf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []ScoredResult{
		result("a", 1, 10, base),
		result("b", 9, 10, base),
	}
	Rank(results, TieBreakTimestamp)
	if results[0].FirstName != "a" {
		t.Fatal("Rank reordered the caller's slice")
	}
}
