package answerkey

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Key
		wantErr error
	}{
		{name: "simple", raw: "1a2b3c4d", want: Key{1: 'a', 2: 'b', 3: 'c', 4: 'd'}},
		{name: "uppercase input normalized", raw: "1A2B", want: Key{1: 'a', 2: 'b'}},
		{name: "multi-digit question numbers", raw: "9a10b11c", want: Key{9: 'a', 10: 'b', 11: 'c'}},
		{name: "duplicate question last wins", raw: "1a2b1c", want: Key{1: 'c', 2: 'b'}},
		{name: "spaces between groups tolerated", raw: "1a 2b 3c", want: Key{1: 'a', 2: 'b', 3: 'c'}},
		{name: "trailing digits", raw: "1a2b3", wantErr: ErrMalformedKey},
		{name: "letters only", raw: "abcd", wantErr: ErrMalformedKey},
		{name: "empty", raw: "", wantErr: ErrMalformedKey},
		{name: "letter before digit", raw: "a1b2", wantErr: ErrMalformedKey},
		{name: "separator garbage", raw: "1a,2b", wantErr: ErrMalformedKey},
		{name: "question number zero", raw: "0a1b", wantErr: ErrMalformedKey},
		{name: "too short", raw: "1a", wantErr: ErrKeyTooShort},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tc.raw, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.raw, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseSubmission(t *testing.T) {
	got, err := ParseSubmission("1a")
	if err != nil {
		t.Fatalf("ParseSubmission(%q): %v", "1a", err)
	}
	if !reflect.DeepEqual(got, Key{1: 'a'}) {
		t.Fatalf("ParseSubmission = %v, want %v", got, Key{1: 'a'})
	}
	if _, err := ParseSubmission("a"); !errors.Is(err, ErrMalformedKey) {
		t.Fatalf("ParseSubmission(%q) error = %v, want %v", "a", err, ErrMalformedKey)
	}
}

func TestSerializeOrder(t *testing.T) {
	key := Key{10: 'b', 2: 'c', 1: 'a'}
	if got, want := Serialize(key), "1a 2c 10b"; got != want {
		t.Fatalf("Serialize = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, raw := range []string{"1a2b3c4d", "5d4c3b2a1a", "1a1b", "12x34y"} {
		first, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		second, err := Parse(Serialize(first))
		if err != nil {
			t.Fatalf("re-Parse of Serialize(%q): %v", raw, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("round trip of %q: %v != %v", raw, first, second)
		}
	}
}

func TestNormalizeStorageForm(t *testing.T) {
	got, err := Normalize(" 1A2b ")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "1a2b" {
		t.Fatalf("Normalize = %q, want %q", got, "1a2b")
	}
}
