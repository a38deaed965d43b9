package langdetect

import "strings"

// hint recognizes a language from a highly indicative pattern.
type hint struct {
	lang  string
	match func(code, trimmed string) bool
}

// hints are checked in order; more specific patterns come first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var hints = []hint{
	{"go", func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{"python", func(code, _ string) bool {
		return (strings.Contains(code, "def ") && strings.Contains(code, "):")) ||
			strings.Contains(code, "__name__") ||
			(strings.Contains(code, "import ") && strings.Contains(code, "from ") && !strings.Contains(code, "import ("))
	}},
	{"html", func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html")
	}},
	{"json", func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`) && strings.Contains(trimmed, ":")
	}},
	{"sql", func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(code, _ string) bool {
		return strings.Contains(code, "fn main()") ||
			strings.Contains(code, "println!") ||
			strings.Contains(code, "let mut ")
	}},
	{"javascript", func(code, _ string) bool {
		return strings.Contains(code, "console.log") ||
			strings.Contains(code, "=>") ||
			strings.Contains(code, "const ")
	}},
}

func detectByHint(code string) string {
	trimmed := strings.TrimSpace(code)
	for _, h := range hints {
		if h.match(code, trimmed) {
			return h.lang
		}
	}
	return ""
}
