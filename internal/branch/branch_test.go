package branch

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortenTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", ""},
		{"keeps first three words", "Fix The Bug In Parser Now", "fix-the-bug"},
		{"strips punctuation before splitting", "Fix-The, Bug!!", "fixthe-bug"},
		{"fewer than three words", "Improve Logging", "improve-logging"},
		{"single word", "Refactor", "refactor"},
		{"digits are dropped", "Bump v2 to 3", "bump-v-to"},
		{"only symbols", "123 !!! ???", ""},
		{"repeated spaces collapse", "  add   dark    mode  ", "add-dark-mode"},
		{"non-ascii letters are dropped", "Café über straße", "caf-ber-strae"},
		{"tabs are not separators", "fix\tbug now", "fixbug-now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortenTitle(tt.title))
		})
	}
}

func TestShortenTitle_OnlyLowercaseAndHyphens(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z-]*$`)
	titles := []string{
		"",
		"Hello, World!",
		"ALL CAPS TITLE WITH MANY WORDS",
		"mixed 123 content -- with __ symbols",
		"日本語 title 🚀 rocket",
		"   ",
		"a b c d e f g",
	}

	for _, title := range titles {
		got := ShortenTitle(title)
		assert.Regexp(t, valid, got, "title %q", title)
		if got != "" {
			assert.LessOrEqual(t, len(strings.Split(got, "-")), WordCount, "title %q", title)
		}
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "issue/42-add-dark-mode", Name(42, "Add Dark Mode Support"))
	assert.Equal(t, "issue/7-", Name(7, ""))
	assert.Equal(t, "issue/42-", Name(42, "!!!"))
	assert.Equal(t, "issue/5-improve-logging", Name(5, "Improve Logging"))
}

func TestRefName(t *testing.T) {
	assert.Equal(t, "refs/heads/issue/5-improve-logging", RefName("issue/5-improve-logging"))
}
