package answerkey

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMalformedKey = errors.New("answer key must be <number><letter> groups, e.g. 1a2b3c")
	ErrKeyTooShort  = errors.New("answer key must be at least 4 characters")
)

var (
	fullPattern  = regexp.MustCompile(`^([0-9]+[a-z])+$`)
	groupPattern = regexp.MustCompile(`([0-9]+)([a-z])`)
)

// A reference key covers at least two questions; a submission may answer
// just one.
const (
	minKeyLen        = 4
	minSubmissionLen = 2
)

// Key maps a question number to the chosen answer letter (a-z).
type Key map[int]byte

// Normalize lowercases raw, strips whitespace and validates it against the
// key grammar. The returned string is the canonical storage form: stored keys
// round-trip through Normalize/Parse, never through Serialize.
func Normalize(raw string) (string, error) {
	return normalize(raw, minKeyLen)
}

func normalize(raw string, minLen int) (string, error) {
	s := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	if !fullPattern.MatchString(s) {
		return "", ErrMalformedKey
	}
	if len(s) < minLen {
		return "", ErrKeyTooShort
	}
	return s, nil
}

// Parse decodes a compact answer string ("1a2b3c") into a Key. When the same
// question number appears more than once the last occurrence wins.
func Parse(raw string) (Key, error) {
	s, err := normalize(raw, minKeyLen)
	if err != nil {
		return nil, err
	}
	return decode(s)
}

// ParseSubmission decodes a student's answer string. Same grammar as Parse
// but a single answered question is enough.
func ParseSubmission(raw string) (Key, error) {
	s, err := normalize(raw, minSubmissionLen)
	if err != nil {
		return nil, err
	}
	return decode(s)
}

func decode(s string) (Key, error) {
	key := make(Key)
	for _, m := range groupPattern.FindAllStringSubmatch(s, -1) {
		num, err := strconv.Atoi(m[1])
		if err != nil || num < 1 {
			return nil, ErrMalformedKey
		}
		key[num] = m[2][0]
	}
	return key, nil
}

// Questions returns the question numbers in ascending order.
func (k Key) Questions() []int {
	nums := make([]int, 0, len(k))
	for n := range k {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Serialize renders the key as space-separated "<number><letter>" groups in
// question order. Display form only; see Normalize for the storage form.
func Serialize(k Key) string {
	groups := make([]string, 0, len(k))
	for _, n := range k.Questions() {
		groups = append(groups, strconv.Itoa(n)+string(k[n]))
	}
	return strings.Join(groups, " ")
}
