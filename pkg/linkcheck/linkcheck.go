// Package linkcheck flags URLs whose visible text could mislead a reader
// about where the link goes.
package linkcheck

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// maxLabelLength is the DNS limit for a single host label.
const maxLabelLength = 63

// Checker applies the deceptive-link heuristic. The zero value is ready to use.
type Checker struct{}

// IsSneaky reports whether rawURL should not be rendered as a link.
//
// A URL is sneaky when it cannot be parsed, has no host, carries user info
// (https://bank.com@evil.example), contains invisible format characters, has
// a host that fails IDNA lookup rules or changes under NFKC, or has a host
// label that mixes scripts or is spelled entirely with non-Latin letters that
// look Latin.
func (Checker) IsSneaky(rawURL string) bool {
	return IsSneaky(rawURL)
}

// IsSneaky is the package-level form of Checker.IsSneaky.
func IsSneaky(rawURL string) bool {
	if hasFormatChars(rawURL) {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.User != nil {
		return true
	}

	host := u.Hostname()
	if host == "" || strings.Contains(host, "..") {
		return true
	}

	host = strings.ToLower(host)
	if norm.NFKC.String(host) != host {
		return true
	}

	unicodeHost, err := idna.Lookup.ToUnicode(host)
	if err != nil || norm.NFKC.String(unicodeHost) != unicodeHost {
		return true
	}

	for _, label := range strings.Split(unicodeHost, ".") {
		if len(label) > maxLabelLength || mixesScripts(label) || allLookalikes(label) {
			return true
		}
	}

	return false
}

func hasFormatChars(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cf, r) {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // Read-only lookup table.
var scripts = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"latin", unicode.Latin},
	{"cyrillic", unicode.Cyrillic},
	{"greek", unicode.Greek},
	{"armenian", unicode.Armenian},
	{"hebrew", unicode.Hebrew},
	{"arabic", unicode.Arabic},
	{"han", unicode.Han},
	{"hiragana", unicode.Hiragana},
	{"katakana", unicode.Katakana},
	{"hangul", unicode.Hangul},
	{"thai", unicode.Thai},
	{"devanagari", unicode.Devanagari},
}

// cjk scripts that legitimately share a label.
//
//nolint:gochecknoglobals // Read-only lookup table.
var cjk = map[string]bool{"han": true, "hiragana": true, "katakana": true, "hangul": true}

// mixesScripts reports whether the letters of label come from more than one
// script. Japanese and Korean combinations with Han are allowed, as is ASCII
// Latin mixed with CJK.
func mixesScripts(label string) bool {
	seen := map[string]bool{}
	for _, r := range label {
		if !unicode.IsLetter(r) {
			continue
		}
		name := "other"
		for _, s := range scripts {
			if unicode.Is(s.table, r) {
				name = s.name
				break
			}
		}
		if name == "latin" && r < unicode.MaxASCII {
			name = "ascii"
		}
		seen[name] = true
	}

	if len(seen) <= 1 {
		return false
	}
	if seen["latin"] && seen["ascii"] && len(seen) == 2 {
		return false
	}
	for name := range seen {
		if !cjk[name] && name != "ascii" {
			return true
		}
	}
	return false
}

// lookalikes are Cyrillic and Greek letters rendered like Latin ones.
const lookalikes = "аеорсухіјѕԁӏһԛԝɑοναικρτυ"

func allLookalikes(label string) bool {
	letters := 0
	for _, r := range label {
		if !unicode.IsLetter(r) {
			continue
		}
		if !strings.ContainsRune(lookalikes, r) {
			return false
		}
		letters++
	}
	return letters > 0
}
