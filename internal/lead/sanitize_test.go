package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsScriptTags(t *testing.T) {
	assert.Equal(t, "hello", Sanitize(`hello<script>alert(1)</script>`))
	assert.Equal(t, "before after", Sanitize("before <script type=\"text/javascript\">x</script>after"))
}

func TestSanitize_StripsUnclosedScriptTag(t *testing.T) {
	assert.Equal(t, "hello", Sanitize(`hello<script>`))
	assert.Equal(t, "hello", Sanitize(`hello</script>`))
	assert.Equal(t, "hello", Sanitize(`hello< script src="x">`))
}

func TestSanitize_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Rahul Shah", Sanitize("  Rahul Shah  "))
	assert.Equal(t, "", Sanitize("   "))
}

func TestSanitize_LeavesPlainTextAlone(t *testing.T) {
	assert.Equal(t, "Looking for a 2BHK in Andheri", Sanitize("Looking for a 2BHK in Andheri"))
	assert.Equal(t, "budget < 1cr and area > 900", Sanitize("budget < 1cr and area > 900"))
}

func TestContainsSuspiciousMarkup(t *testing.T) {
	assert.True(t, ContainsSuspiciousMarkup(`<script>alert(1)</script>`))
	assert.True(t, ContainsSuspiciousMarkup(`<SCRIPT>`))
	assert.True(t, ContainsSuspiciousMarkup(`click javascript:alert(1)`))
	assert.True(t, ContainsSuspiciousMarkup(`<img onerror=alert(1)>`))
	assert.True(t, ContainsSuspiciousMarkup(`<div onclick = "x">`))

	assert.False(t, ContainsSuspiciousMarkup("plain text"))
	assert.False(t, ContainsSuspiciousMarkup("carry on = keep going")) // "on" alone is not a handler
	assert.False(t, ContainsSuspiciousMarkup("a < b"))
}
