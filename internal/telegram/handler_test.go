package telegram

import (
	"strings"
	"testing"

	"test-checker-backend/internal/answerkey"
	"test-checker-backend/internal/ranking"
)

func TestParseTestCode(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12345", 12345, true},
		{"99999", 99999, true},
		{"1234", 0, false},
		{"123456", 0, false},
		{"12a45", 0, false},
		{"01234", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := parseTestCode(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseTestCode(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFormatUserReport(t *testing.T) {
	key, err := answerkey.Parse("1a2b3c")
	if err != nil {
		t.Fatal(err)
	}
	submitted, err := answerkey.ParseSubmission("1a2c")
	if err != nil {
		t.Fatal(err)
	}

	entry := ranking.Entry{
		ScoredResult: ranking.ScoredResult{
			FirstName: "Ali",
			LastName:  "Valiyev",
			Correct:   1,
			Total:     3,
		},
		Rank: 2,
	}

	got := formatUserReport("Algebra", key, submitted, entry)

	for _, want := range []string{
		"Algebra",
		"1/3",
		"1. a ✅",
		"2. c ❌ (to'g'ri javob: b)",
		"3. — ❌ (to'g'ri javob: c)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestStepCertIndex(t *testing.T) {
	tests := []struct {
		dir     string
		current int
		total   int
		want    int
	}{
		{"next", 0, 4, 1},
		{"next", 3, 4, 0},
		{"prev", 0, 4, 3},
		{"prev", 2, 4, 1},
		// Stale or tampered positions must reset, never index out of range.
		{"prev", -5, 4, 3},
		{"next", -5, 4, 1},
		{"next", 99, 4, 1},
		{"prev", 0, 0, 0},
	}
	for _, tc := range tests {
		got := stepCertIndex(tc.dir, tc.current, tc.total)
		if got != tc.want {
			t.Errorf("stepCertIndex(%q, %d, %d) = %d, want %d", tc.dir, tc.current, tc.total, got, tc.want)
		}
		if tc.total > 0 && (got < 0 || got >= tc.total) {
			t.Errorf("stepCertIndex(%q, %d, %d) = %d, out of range", tc.dir, tc.current, tc.total, got)
		}
	}
}

func TestCertPaginationKeyboardCallbacks(t *testing.T) {
	kb := CertPaginationKeyboard(1, 4, 2)

	row := kb.InlineKeyboard[0]
	if row[0].CallbackData != "cert_nav:prev:1" {
		t.Errorf("prev callback = %q", row[0].CallbackData)
	}
	if row[1].CallbackData != "cert_select:2" {
		t.Errorf("select callback = %q", row[1].CallbackData)
	}
	if row[2].CallbackData != "cert_nav:next:1" {
		t.Errorf("next callback = %q", row[2].CallbackData)
	}
	if kb.InlineKeyboard[1][0].CallbackData != "cert_select:0" {
		t.Errorf("skip callback = %q", kb.InlineKeyboard[1][0].CallbackData)
	}
}

func TestLiveStatusKeyboardCallback(t *testing.T) {
	kb := LiveStatusKeyboard(54321)
	if got := kb.InlineKeyboard[0][0].CallbackData; got != "live_status:54321" {
		t.Errorf("live status callback = %q", got)
	}
}
