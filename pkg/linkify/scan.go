// Package linkify finds hyperlinks in message text.
//
// Scanning runs over the full, untruncated text so a URL is never matched in
// pieces. A match is kept only if it lies entirely inside the display text
// and is reproduced there at the same offsets. Emoji are masked out before
// matching so they neither shift offsets nor glue onto a URL.
package linkify

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
)

// DefaultSchemes is the scheme allow-list used when none is configured.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultSchemes = []string{"http", "https"}

// trailing characters are not part of a URL when they end a match.
const trailing = `.,;:!?'"*`

// Scanner detects links for a fixed set of URL schemes.
type Scanner struct {
	schemes []string
	pattern *regexp.Regexp
}

// NewScanner returns a scanner for the given schemes. With no schemes it uses
// DefaultSchemes.
func NewScanner(schemes ...string) *Scanner {
	if len(schemes) == 0 {
		schemes = DefaultSchemes
	}

	normalized := make([]string, 0, len(schemes))
	for _, s := range schemes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !slices.Contains(normalized, s) {
			normalized = append(normalized, s)
		}
	}

	quoted := make([]string, len(normalized))
	for i, s := range normalized {
		quoted[i] = regexp.QuoteMeta(s)
	}
	pattern := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)://[^\s<>"]+`)

	return &Scanner{schemes: normalized, pattern: pattern}
}

// Schemes returns the allowed schemes in lower case.
func (s *Scanner) Schemes() []string {
	return slices.Clone(s.schemes)
}

// Allowed reports whether rawURL uses an allowed scheme.
func (s *Scanner) Allowed(rawURL string) bool {
	scheme, _, ok := strings.Cut(rawURL, "://")
	if !ok {
		return false
	}
	return slices.Contains(s.schemes, strings.ToLower(scheme))
}

// Scan returns link ranges found in fullText that fit within the first
// displayTextLength code points.
func (s *Scanner) Scan(fullText string, displayTextLength int) []bodyrange.Range {
	runes := []rune(fullText)
	displayTextLength = min(max(displayTextLength, 0), len(runes))
	return s.scan(runes, runes[:displayTextLength], fullText)
}

// ScanDisplay is like Scan but takes the display text itself, which may end
// differently from fullText (for instance with an ellipsis).
func (s *Scanner) ScanDisplay(fullText, displayText string) []bodyrange.Range {
	return s.scan([]rune(fullText), []rune(displayText), fullText)
}

func (s *Scanner) scan(full, display []rune, fullText string) []bodyrange.Range {
	if len(display) == 0 {
		return nil
	}

	m := mask(fullText)
	var links []bodyrange.Range

	byteCursor, runeCursor := 0, 0
	for _, loc := range s.pattern.FindAllStringIndex(m.text, -1) {
		runeCursor += utf8.RuneCountInString(m.text[byteCursor:loc[0]])
		byteCursor = loc[0]

		match := trimMatch(m.text[loc[0]:loc[1]])
		start := runeCursor
		end := start + utf8.RuneCountInString(match)

		if r, ok := s.accept(full, display, m, start, end); ok {
			links = append(links, r)
		}
	}

	return links
}

func (s *Scanner) accept(full, display []rune, m masked, start, end int) (bodyrange.Range, bool) {
	if start < 0 || start >= len(display) || end > len(display) || end <= start {
		return bodyrange.Range{}, false
	}
	if m.isUnsafe(start, end) {
		return bodyrange.Range{}, false
	}

	url := string(full[start:end])
	if string(display[start:end]) != url || !s.Allowed(url) {
		return bodyrange.Range{}, false
	}
	if _, rest, _ := strings.Cut(url, "://"); rest == "" {
		return bodyrange.Range{}, false
	}

	return bodyrange.Range{
		Start:  start,
		Length: end - start,
		Value:  bodyrange.Link{URL: url},
	}, true
}

// trimMatch strips trailing punctuation and closing brackets that have no
// opening partner inside the match.
func trimMatch(match string) string {
	for match != "" {
		last := match[len(match)-1]
		switch {
		case strings.IndexByte(trailing, last) >= 0:
			match = match[:len(match)-1]
		case last == ')' && strings.Count(match, "(") < strings.Count(match, ")"):
			match = match[:len(match)-1]
		case last == ']' && strings.Count(match, "[") < strings.Count(match, "]"):
			match = match[:len(match)-1]
		default:
			return match
		}
	}
	return match
}

//nolint:gochecknoglobals // Shared default scanner; Scanner is immutable.
var defaultScanner = NewScanner()

// Scan runs the default scanner.
func Scan(fullText string, displayTextLength int) []bodyrange.Range {
	return defaultScanner.Scan(fullText, displayTextLength)
}
