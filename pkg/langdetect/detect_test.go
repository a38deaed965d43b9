package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/spanrender/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go code", "package main\n\nfunc main() {}\n", "go"},
		{"python code", "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", "python"},
		{"javascript code", "const x = () => 42;\nconsole.log(x());", "javascript"},
		{"json object", `{"key": "value", "number": 123}`, "json"},
		{"rust code", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"sql query", "select * from users where id = 1;", "sql"},
		{"html document", "<!DOCTYPE html>\n<html><body></body></html>", "html"},
		{"empty", "", langdetect.Plaintext},
		{"whitespace", " \n\t", langdetect.Plaintext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.Detect(tt.content))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Looks like Python but declares bash.
	assert.Equal(t, "bash", langdetect.Detect("#!/bin/bash\ndef foo():\n    pass"))
}

func TestDetector_NeverEmpty(t *testing.T) {
	t.Parallel()

	d := langdetect.New("Go", "Python")
	assert.NotEmpty(t, d.Detect("print(1)"))
	assert.NotEmpty(t, d.Detect("some words that are not code"))
}

func TestIsKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsKnown("python"))
	assert.True(t, langdetect.IsKnown("go"))
	assert.True(t, langdetect.IsKnown("bash"))
	assert.False(t, langdetect.IsKnown("nonsense"))
}
