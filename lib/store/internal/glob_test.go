package internal

import "testing"

func TestTranslatePattern(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		match   bool
	}{
		// ? matches exactly one character
		{"fo?", "foo", true},
		{"fo?", "fob", true},
		{"fo?", "fo", false},
		{"fo?", "fooo", false},

		// * matches one or more characters
		{"*", "foo", true},
		{"*", "x", true},
		{"*", "", false},
		{"f*", "foo", true},
		{"f*", "f", false},

		// anchored at both ends
		{"foo", "foo", true},
		{"foo", "xfoo", false},
		{"foo", "foox", false},

		// escapes strip wildcard meaning
		{`fo\?`, "fo?", true},
		{`fo\?`, "foo", false},
		{`a\*b`, "a*b", true},
		{`a\*b`, "axb", false},

		// regexp metacharacters in keys are literal
		{"a.b", "a.b", true},
		{"a.b", "axb", false},
		{"a+b", "a+b", true},
	}

	for _, tt := range tests {
		re, err := TranslatePattern(tt.pattern)
		if err != nil {
			t.Fatalf("TranslatePattern(%q) failed: %v", tt.pattern, err)
		}
		if got := re.MatchString(tt.key); got != tt.match {
			t.Errorf("pattern %q against %q: got %v, want %v", tt.pattern, tt.key, got, tt.match)
		}
	}
}

func TestTranslatePatternTrailingBackslash(t *testing.T) {
	re, err := TranslatePattern(`ab\`)
	if err != nil {
		t.Fatalf("TranslatePattern failed: %v", err)
	}
	if !re.MatchString(`ab\`) {
		t.Error(`trailing backslash should match itself literally`)
	}
}
