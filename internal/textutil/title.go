package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	trailingYear = regexp.MustCompile(`\s*[\(\[]?(19|20)\d{2}[\)\]]?$`)
	releaseTags  = regexp.MustCompile(`(?i)\s+(2160p|1080p|720p|480p|bluray|blu ray|web dl|webrip|hdtv|dvdrip|x264|x265|hevc|remux)\b.*$`)
)

// CleanTitle turns a release style directory name such as "the.matrix.1999"
// into a lookup title ("The Matrix"). Separators collapse to single spaces,
// quality tags and a trailing year are dropped and the result is title cased.
// Returns name unchanged (trimmed) when nothing usable remains.
func CleanTitle(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	prevSpace := false
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' || r == '&' || r == '(' || r == ')' || r == '[' || r == ']':
			b.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(b.String())
	title = releaseTags.ReplaceAllString(title, "")
	if stripped := strings.TrimSpace(trailingYear.ReplaceAllString(title, "")); stripped != "" {
		title = stripped
	}
	title = strings.Trim(title, "()[] ")
	if title == "" {
		return trimmed
	}
	return cases.Title(language.Und).String(title)
}
