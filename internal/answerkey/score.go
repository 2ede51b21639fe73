package answerkey

import "math"

// Score compares a submitted key against the reference key. Questions missing
// from submitted count as wrong; questions present only in submitted are
// ignored. Pure over both maps.
func Score(key, submitted Key) (correct, total int) {
	total = len(key)
	for num, want := range key {
		if got, ok := submitted[num]; ok && got == want {
			correct++
		}
	}
	return correct, total
}

// Percent returns correct/total as a percentage rounded to one decimal place.
// A zero total yields 0, never a division error.
func Percent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}
