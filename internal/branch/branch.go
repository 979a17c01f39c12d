// Package branch derives ref-safe branch names from issue metadata.
package branch

import (
	"fmt"
	"strings"
)

const (
	// Prefix is the leading path segment of every generated branch.
	Prefix = "issue"

	// WordCount is the number of title words kept in a branch name.
	WordCount = 3

	// RefPrefix is the namespace branches live under on the remote.
	RefPrefix = "refs/heads/"
)

// Name returns issue/<number>-<short-title>. An empty shortened title is
// kept as-is, so the result may end in a trailing "-".
func Name(number int, title string) string {
	return fmt.Sprintf("%s/%d-%s", Prefix, number, ShortenTitle(title))
}

// ShortenTitle lowercases the title, drops everything that is not an ASCII
// letter or a space, and joins the first WordCount words with hyphens.
func ShortenTitle(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			sb.WriteRune(r)
		}
	}

	words := strings.Fields(sb.String())
	if len(words) > WordCount {
		words = words[:WordCount]
	}
	return strings.Join(words, "-")
}

// RefName returns the fully qualified ref for a branch.
func RefName(branch string) string {
	return RefPrefix + branch
}
