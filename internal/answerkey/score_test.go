package answerkey

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		key         Key
		submitted   Key
		wantCorrect int
		wantTotal   int
	}{
		{
			name:        "skipped and wrong answers count as incorrect",
			key:         Key{1: 'a', 2: 'b', 3: 'c', 4: 'd'},
			submitted:   Key{1: 'a', 2: 'c', 4: 'd'},
			wantCorrect: 2,
			wantTotal:   4,
		},
		{
			name:        "all correct",
			key:         Key{1: 'a', 2: 'b'},
			submitted:   Key{1: 'a', 2: 'b'},
			wantCorrect: 2,
			wantTotal:   2,
		},
		{
			name:        "extra submitted questions ignored",
			key:         Key{1: 'a'},
			submitted:   Key{1: 'a', 2: 'b', 99: 'z'},
			wantCorrect: 1,
			wantTotal:   1,
		},
		{
			name:        "empty key",
			key:         Key{},
			submitted:   Key{1: 'a'},
			wantCorrect: 0,
			wantTotal:   0,
		},
		{
			name:        "empty submission",
			key:         Key{1: 'a', 2: 'b'},
			submitted:   Key{},
			wantCorrect: 0,
			wantTotal:   2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			correct, total := Score(tc.key, tc.submitted)
			if correct != tc.wantCorrect || total != tc.wantTotal {
				t.Fatalf("Score = (%d, %d), want (%d, %d)", correct, total, tc.wantCorrect, tc.wantTotal)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 3, 100},
		{0, 5, 0},
		{0, 0, 0},
		{7, 8, 87.5},
	}

	for _, tc := range tests {
		if got := Percent(tc.correct, tc.total); got != tc.want {
			t.Fatalf("Percent(%d, %d) = %v, want %v", tc.correct, tc.total, got, tc.want)
		}
	}
}
